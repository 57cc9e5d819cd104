package degmap

import (
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"compress/zlib"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

type DataType byte

const (
	DataTypeInvalid DataType = iota
	DataTypeNoCompression
	DataTypeGzip
	DataTypeZip
	DataTypeXZ
	DataTypeZ
	DataTypeBZip2
)

var byteCodeSigs = map[DataType][]byte{
	DataTypeGzip:  {0x1f, 0x8b, 0x08},
	DataTypeZip:   {0x50, 0x4b, 0x03, 0x04},
	DataTypeXZ:    {0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00},
	DataTypeZ:     {0x1f, 0x9d},
	DataTypeBZip2: {0x42, 0x5a, 0x68},
}

// DetectDataType attempts to detect the compression of a stream by checking
// against a set of known signatures. Byte code signatures from
// https://stackoverflow.com/a/19127748/199475
func DetectDataType(r io.Reader) (DataType, error) {
	buff := make([]byte, 6)
	if n, err := io.ReadFull(r, buff); err == io.EOF || err == io.ErrUnexpectedEOF {
		// Tables shorter than the longest signature cannot be compressed
		buff = buff[:n]
	} else if err != nil {
		return DataTypeInvalid, err
	}

Outer:
	for dt, sig := range byteCodeSigs {
		if len(buff) < len(sig) {
			continue
		}
		for position := range sig {
			if buff[position] != sig[position] {
				continue Outer
			}
		}
		return dt, nil
	}

	return DataTypeNoCompression, nil
}

// OpenTable opens a delimited table for reading, expanding ~ in the path and
// transparently decompressing gzip, zip, xz, zlib, or bzip2 inputs. Closing
// the returned ReadCloser closes the underlying file.
func OpenTable(path string) (io.ReadCloser, error) {
	f, err := os.Open(ExpandHome(path))
	if err != nil {
		return nil, pfx.Err(err)
	}

	dt, err := DetectDataType(f)
	if err != nil {
		f.Close()
		return nil, pfx.Err(err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, pfx.Err(err)
	}

	switch dt {
	case DataTypeGzip:
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, pfx.Err(err)
		}
		return &tableReader{Reader: gz, file: f}, nil
	case DataTypeZip:
		return &tableReader{Reader: zipstream.NewReader(f), file: f}, nil
	case DataTypeBZip2:
		return &tableReader{Reader: bzip2.NewReader(f), file: f}, nil
	case DataTypeXZ:
		reader, err := xz.NewReader(f, 0)
		if err != nil {
			f.Close()
			return nil, pfx.Err(err)
		}
		return &tableReader{Reader: reader, file: f}, nil
	case DataTypeZ:
		zr, err := zlib.NewReader(f)
		if err != nil {
			f.Close()
			return nil, pfx.Err(err)
		}
		return &tableReader{Reader: zr, file: f}, nil
	}

	// No compression detected; read the file as-is.
	return f, nil
}

// SniffTable reads the head of a table file and returns its delimiter, so the
// file can then be opened and parsed with OpenTable + tabfile.Read.
func SniffTable(path string) (rune, error) {
	r, err := OpenTable(path)
	if err != nil {
		return 0, err
	}
	defer r.Close()

	head := make([]byte, 64*1024)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return 0, pfx.Err(err)
	}

	return DetermineDelimiter(bytes.NewReader(head[:n])), nil
}

// tableReader pairs a decompressing reader with the file it wraps so that
// Close releases the file handle.
type tableReader struct {
	io.Reader
	file *os.File
}

func (t *tableReader) Close() error {
	return t.file.Close()
}

// ExpandHome expands ~ to its proper path, where appropriate.
func ExpandHome(path string) string {
	usr, err := user.Current()
	if err != nil {
		return path
	}

	if path == "~" {
		return usr.HomeDir
	}

	if strings.HasPrefix(path, "~/") {
		return filepath.Join(usr.HomeDir, path[2:])
	}

	return path
}
