package sdmx

import (
	"fmt"
	"os"
	"path/filepath"
)

// FromFile builds a Response from a local SDMX file without any network call.
// Zip archives are unpacked the same way as downloaded bodies. The response
// carries the file path as its URL and a zero status code.
func FromFile(path string) (*Response, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read SDMX file: %w", err)
	}
	body, err := unzipBody(raw)
	if err != nil {
		return nil, err
	}
	return &Response{URL: path, Body: body}, nil
}

// writeBodyFile tees the raw downloaded body (pre-unzip) to the given path.
func writeBodyFile(path string, body []byte) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return fmt.Errorf("write SDMX file: %w", err)
	}
	return nil
}
