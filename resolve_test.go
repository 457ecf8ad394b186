package clashreport

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveImage(t *testing.T) {
	dir := t.TempDir()
	xmlPath := filepath.Join(dir, "report.xml")

	touch := func(parts ...string) string {
		p := filepath.Join(append([]string{dir}, parts...)...)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte("img"), 0o644); err != nil {
			t.Fatal(err)
		}
		return p
	}

	relative := touch("images", "rel.png")
	basename := touch("base.png")
	assets := touch("report_files", "conv.png")
	absolute := touch("abs.png")

	cases := []struct {
		href string
		want string
		ok   bool
	}{
		{`images\rel.png`, relative, true},             // relative to the XML dir
		{`C:\dropped\elsewhere\base.png`, basename, true}, // basename next to the XML
		{`snapshots/conv.png`, assets, true},           // conventional assets folder
		{absolute, absolute, true},                     // already absolute
		{`missing.png`, "", false},
		{``, "", false},
		{`   `, "", false},
	}

	for _, c := range cases {
		got, ok := ResolveImage(c.href, xmlPath)
		if ok != c.ok || got != c.want {
			t.Errorf("ResolveImage(%q) = %q, %v; expected %q, %v", c.href, got, ok, c.want, c.ok)
		}
	}
}
