// Package convert implements the offline text-to-raw query file converter
// (spec.md §4.8).
package convert

import "strings"

// OutputPath derives the raw output path from a text input path: any
// trailing ".txt" suffix is replaced with ".raw"; otherwise ".raw" is
// appended.
func OutputPath(input string) string {
	if strings.HasSuffix(input, ".txt") {
		return strings.TrimSuffix(input, ".txt") + ".raw"
	}
	return input + ".raw"
}
