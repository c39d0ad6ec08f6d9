package sdmx

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zip"
)

var zipMagic = []byte("PK\x03\x04")

// unzipBody replaces a zip-archived body with its first entry's contents.
// Some endpoints ship large datasets as single-entry zip archives.
func unzipBody(body []byte) ([]byte, error) {
	if !bytes.HasPrefix(body, zipMagic) {
		return body, nil
	}
	reader, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		// Magic bytes without a readable archive: hand the body back untouched.
		return body, nil
	}
	if len(reader.File) == 0 {
		return body, nil
	}

	entry, err := reader.File[0].Open()
	if err != nil {
		return nil, fmt.Errorf("open zipped body entry: %w", err)
	}
	defer entry.Close()

	out, err := io.ReadAll(entry)
	if err != nil {
		return nil, fmt.Errorf("read zipped body entry: %w", err)
	}
	return out, nil
}
