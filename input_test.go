package degmap

import (
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDetectDataType(t *testing.T) {
	var gzipped bytes.Buffer
	gz := gzip.NewWriter(&gzipped)
	gz.Write([]byte("Gene_id\tNSP2ox1\n"))
	gz.Close()

	dt, err := DetectDataType(bytes.NewReader(gzipped.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if dt != DataTypeGzip {
		t.Errorf("expected gzip, got %v", dt)
	}

	dt, err = DetectDataType(strings.NewReader("Gene_id\tNSP2ox1\n"))
	if err != nil {
		t.Fatal(err)
	}
	if dt != DataTypeNoCompression {
		t.Errorf("expected no compression, got %v", dt)
	}

	// Shorter than the longest signature
	dt, err = DetectDataType(strings.NewReader("ab"))
	if err != nil {
		t.Fatal(err)
	}
	if dt != DataTypeNoCompression {
		t.Errorf("expected no compression for a tiny file, got %v", dt)
	}
}

func TestOpenTableDecompresses(t *testing.T) {
	const content = "Gene_id\tNSP2ox1\ng1\t-8\n"

	dir := t.TempDir()

	plain := filepath.Join(dir, "plain.tsv")
	if err := os.WriteFile(plain, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	var gzipped bytes.Buffer
	gz := gzip.NewWriter(&gzipped)
	gz.Write([]byte(content))
	gz.Close()
	compressed := filepath.Join(dir, "compressed.tsv.gz")
	if err := os.WriteFile(compressed, gzipped.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{plain, compressed} {
		r, err := OpenTable(path)
		if err != nil {
			t.Fatal(err)
		}
		got, err := io.ReadAll(r)
		r.Close()
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != content {
			t.Errorf("%s: got %q", path, got)
		}
	}
}

func TestSniffTable(t *testing.T) {
	dir := t.TempDir()

	tsv := filepath.Join(dir, "table.tsv")
	if err := os.WriteFile(tsv, []byte("a\tb\tc\n1\t2\t3\n4\t5\t6\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	delim, err := SniffTable(tsv)
	if err != nil {
		t.Fatal(err)
	}
	if delim != '\t' {
		t.Errorf("expected tab, got %q", delim)
	}

	csv := filepath.Join(dir, "table.csv")
	if err := os.WriteFile(csv, []byte("a,b,c\n1,2,3\n4,5,6\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	delim, err = SniffTable(csv)
	if err != nil {
		t.Fatal(err)
	}
	if delim != ',' {
		t.Errorf("expected comma, got %q", delim)
	}
}
