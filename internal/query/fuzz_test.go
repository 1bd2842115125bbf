package query

import (
	"os"
	"testing"
)

func FuzzTypeTableResolve(f *testing.F) {
	f.Add("A")
	f.Add("type65535")
	f.Add("TYPE999999999999")
	f.Add("")

	tt := NewTypeTable()
	f.Fuzz(func(t *testing.T, s string) {
		v, err := tt.Resolve(s)
		if err == nil && v > 65535 {
			t.Fatalf("Resolve(%q) = %d, exceeds uint16 range", s, v)
		}
	})
}

func FuzzReadTxt(f *testing.F) {
	f.Add("example.com A\n")
	f.Add("a.b.c TYPE41\n")
	f.Add("")

	f.Fuzz(func(t *testing.T, contents string) {
		dir := t.TempDir()
		path := dir + "/fuzz.txt"
		if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
			t.Fatal(err)
		}

		qf := NewFile()
		_ = qf.ReadTxt(path) // only crashes/panics are failures

		for i := 0; i < qf.Len(); i++ {
			if qf.At(i).Size() < 12 {
				t.Fatalf("record %d shorter than a DNS header", i)
			}
		}
	})
}
