package zip

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
)

// Entry is one file inside a bundle.
type Entry struct {
	Name string
	MIME string
	Data []byte
}

// BuildBundle packs the entries into a ZIP archive in memory. Style packs
// and tone banks are a few megabytes each, so buffering the whole archive is
// fine.
func BuildBundle(entries []Entry) ([]byte, error) {
	if len(entries) == 0 {
		return nil, errors.New("zip: no entries")
	}
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	for _, entry := range entries {
		w, err := zw.Create(entry.Name)
		if err != nil {
			return nil, fmt.Errorf("zip: create %s: %w", entry.Name, err)
		}
		if _, err := w.Write(entry.Data); err != nil {
			return nil, fmt.Errorf("zip: write %s: %w", entry.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("zip: close: %w", err)
	}
	return buf.Bytes(), nil
}
