package clashreport

import (
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ResolveImage locates the snapshot a record's href points at. Exported
// hrefs are unreliable: sometimes absolute Windows paths, sometimes
// relative to the XML, sometimes just a bare filename that actually lives
// in the export's assets folder. Candidates are tried in a fixed order and
// the first existing regular file wins.
func ResolveImage(href, xmlPath string) (string, bool) {
	href = strings.TrimSpace(strings.ReplaceAll(href, `\`, "/"))
	if href == "" {
		return "", false
	}

	xmlDir := filepath.Dir(xmlPath)
	stem := strings.TrimSuffix(filepath.Base(xmlPath), filepath.Ext(xmlPath))

	var candidates []string
	if filepath.IsAbs(filepath.FromSlash(href)) {
		candidates = append(candidates, filepath.FromSlash(href))
	}
	candidates = append(candidates,
		filepath.Join(xmlDir, filepath.FromSlash(href)),
		filepath.Join(xmlDir, path.Base(href)),
		filepath.Join(xmlDir, stem+"_files", path.Base(href)),
	)

	for _, cand := range candidates {
		if fi, err := os.Stat(cand); err == nil && fi.Mode().IsRegular() {
			return cand, true
		}
	}
	return "", false
}
