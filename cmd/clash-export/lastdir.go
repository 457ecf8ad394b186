package main

import (
	"os"
	"path/filepath"
	"strings"
)

// lastDirFile overrides where the last used directory is remembered;
// empty means the user config dir.
var lastDirFile string

func lastDirPath() string {
	if lastDirFile != "" {
		return lastDirFile
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "clash-export", "last_path.txt")
}

// loadLastDir returns the remembered save directory, or "" when nothing
// usable is remembered. A missing or stale file is not an error.
func loadLastDir() string {
	p := lastDirPath()
	if p == "" {
		return ""
	}
	bs, err := os.ReadFile(p)
	if err != nil {
		return ""
	}
	dir := strings.TrimSpace(string(bs))
	if dir == "" {
		return ""
	}
	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		return ""
	}
	return dir
}

// saveLastDir remembers dir for the next run. Best effort; a failure here
// never fails an export.
func saveLastDir(dir string) {
	p := lastDirPath()
	if p == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return
	}
	_ = os.WriteFile(p, []byte(dir+"\n"), 0o644)
}
