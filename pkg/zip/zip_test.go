package zip

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"
)

func TestBuildBundleRoundTrip(t *testing.T) {
	entries := []Entry{
		{Name: "Bhangra.sty", MIME: "application/octet-stream", Data: []byte("style-bytes")},
		{Name: "Sitar.tvn", MIME: "application/octet-stream", Data: []byte("tone-bytes")},
	}
	archive, err := BuildBundle(entries)
	if err != nil {
		t.Fatalf("BuildBundle: %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	if len(zr.File) != 2 {
		t.Fatalf("want 2 files, got %d", len(zr.File))
	}
	for i, f := range zr.File {
		if f.Name != entries[i].Name {
			t.Errorf("file %d: want %q, got %q", i, entries[i].Name, f.Name)
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		data, _ := io.ReadAll(rc)
		rc.Close()
		if !bytes.Equal(data, entries[i].Data) {
			t.Errorf("file %s: content mismatch", f.Name)
		}
	}
}

func TestBuildBundleEmpty(t *testing.T) {
	if _, err := BuildBundle(nil); err == nil {
		t.Fatal("want error for empty bundle")
	}
}
