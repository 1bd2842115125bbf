// Command dnscvt converts a dnsperf-style text query corpus into dnsgen's
// compact length-prefixed raw format.
package main

import (
	"fmt"
	"os"

	"github.com/joshuafuller/dnsgen/internal/convert"
	"github.com/joshuafuller/dnsgen/internal/query"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: dnscvt <txtfile>")
		os.Exit(1)
	}

	if err := run(os.Args[1]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(input string) error {
	qf := query.NewFile()
	if err := qf.ReadTxt(input); err != nil {
		return err
	}
	return qf.WriteRaw(convert.OutputPath(input))
}
