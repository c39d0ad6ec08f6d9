package sdmx

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultRegistryEntries(t *testing.T) {
	reg := DefaultRegistry()

	insee, ok := reg.ByID("INSEE")
	if !ok {
		t.Fatalf("expected INSEE in the default registry")
	}
	if insee.URL != "" {
		t.Fatalf("INSEE should be Widukind-backed (empty URL), got %s", insee.URL)
	}
	headers := insee.DefaultHeaders(ResourceData)
	if headers["Accept"] != genericDataAccept {
		t.Fatalf("unexpected data Accept header: %v", headers)
	}
	if insee.DefaultHeaders(ResourceDataflow) != nil {
		t.Fatalf("dataflow should have no default headers")
	}

	estat, ok := reg.ByID("ESTAT")
	if !ok {
		t.Fatalf("expected ESTAT in the default registry")
	}
	if estat.URL == "" {
		t.Fatalf("ESTAT should keep its own endpoint")
	}
}

func TestRegistryLookupIsCaseInsensitive(t *testing.T) {
	reg := DefaultRegistry()
	if _, ok := reg.ByID("insee"); !ok {
		t.Fatalf("expected case-insensitive lookup")
	}
	if _, ok := reg.ByID("NOSUCH"); ok {
		t.Fatalf("unexpected hit for unknown agency")
	}
}

func TestLoadRegistryYAML(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "agencies.yaml")
	content := `
agencies:
  - id: INSEE
    name: National Institute of Statistics and Economic Studies
    headers:
      data:
        Accept: application/vnd.sdmx.genericdata+xml;version=2.1
  - id: ESTAT
    name: Eurostat
    url: https://ec.europa.eu/eurostat/SDMX/diss-web/rest
`
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatalf("write agencies file: %v", err)
	}

	reg, err := LoadRegistry(file)
	if err != nil {
		t.Fatalf("LoadRegistry returned error: %v", err)
	}

	insee, ok := reg.ByID("INSEE")
	if !ok {
		t.Fatalf("expected INSEE to be loaded")
	}
	if got := insee.DefaultHeaders(ResourceData)["Accept"]; got != genericDataAccept {
		t.Fatalf("unexpected Accept header: %s", got)
	}

	estat, ok := reg.ByID("ESTAT")
	if !ok {
		t.Fatalf("expected ESTAT to be loaded")
	}
	if estat.URL != "https://ec.europa.eu/eurostat/SDMX/diss-web/rest" {
		t.Fatalf("unexpected ESTAT URL: %s", estat.URL)
	}
}

func TestLoadRegistryDuplicateID(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "agencies.yaml")
	content := `
agencies:
  - id: DUP
    name: One
  - id: dup
    name: Two
`
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatalf("write agencies file: %v", err)
	}

	if _, err := LoadRegistry(file); err == nil {
		t.Fatalf("expected duplicate agency error, got nil")
	}
}

func TestLoadRegistryRejectsBadURL(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "agencies.yaml")
	content := `
agencies:
  - id: BAD
    name: Bad endpoint
    url: not-a-url
`
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatalf("write agencies file: %v", err)
	}

	if _, err := LoadRegistry(file); err == nil {
		t.Fatalf("expected invalid URL error, got nil")
	}
}
