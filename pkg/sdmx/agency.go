package sdmx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// genericDataAccept is the Accept header the Widukind API expects for data queries.
const genericDataAccept = "application/vnd.sdmx.genericdata+xml;version=2.1"

// Agency describes an SDMX data provider known to the client.
// An empty URL binds the agency to the resolved Widukind base URL; a non-empty
// URL pins it to its own public endpoint.
type Agency struct {
	ID      string                             `json:"id" yaml:"id"`
	Name    string                             `json:"name" yaml:"name"`
	URL     string                             `json:"url" yaml:"url"`
	Headers map[ResourceType]map[string]string `json:"headers" yaml:"headers"`
}

// DefaultHeaders returns the agency's default headers for the resource type, if any.
func (a Agency) DefaultHeaders(resource ResourceType) map[string]string {
	if a.Headers == nil {
		return nil
	}
	return a.Headers[resource]
}

// Registry holds the set of known agencies.
type Registry struct {
	byID map[string]Agency
}

// NewRegistry builds a registry from the given agencies, later entries
// overriding earlier ones with the same ID.
func NewRegistry(agencies ...Agency) *Registry {
	reg := &Registry{byID: make(map[string]Agency, len(agencies))}
	for _, a := range agencies {
		a.ID = strings.TrimSpace(a.ID)
		if a.ID == "" {
			continue
		}
		reg.byID[strings.ToUpper(a.ID)] = a
	}
	return reg
}

// ByID returns the agency entry for the given id, if known.
func (r *Registry) ByID(id string) (Agency, bool) {
	if r == nil || r.byID == nil {
		return Agency{}, false
	}
	a, ok := r.byID[strings.ToUpper(strings.TrimSpace(id))]
	return a, ok
}

// Agencies returns a copy of the registered agencies.
func (r *Registry) Agencies() []Agency {
	if r == nil {
		return nil
	}
	out := make([]Agency, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, a)
	}
	return out
}

// DefaultRegistry returns the built-in agency table. The Widukind-backed
// agencies carry an empty URL and get the resolved base URL at client
// construction; ESTAT and SGR keep their own public endpoints.
func DefaultRegistry() *Registry {
	widukindHeaders := map[ResourceType]map[string]string{
		ResourceData: {"Accept": genericDataAccept},
	}

	widukind := func(id, name string) Agency {
		return Agency{ID: id, Name: name, Headers: widukindHeaders}
	}

	return NewRegistry(
		Agency{ID: "ESTAT", Name: "Eurostat", URL: "http://ec.europa.eu/eurostat/SDMX/diss-web/rest"},
		Agency{ID: "SGR", Name: "SDMX Global Registry", URL: "https://registry.sdmx.org/ws/rest"},
		widukind("ECB", "European Central Bank"),
		widukind("INSEE", "National Institute of Statistics and Economic Studies"),
		widukind("EUROSTAT", "Eurostat"),
		widukind("ESRI", "Economic and Social Research Institute, Cabinet Office"),
		widukind("FED", "Federal Reserve"),
		widukind("OECD", "Organisation for Economic Co-operation and Development"),
		widukind("IMF", "International Monetary Fund"),
		widukind("BIS", "Bank for International Settlements"),
	)
}

type registryFile struct {
	Agencies []Agency `json:"agencies" yaml:"agencies"`
}

// LoadRegistry loads an agency registry from a YAML or JSON file.
func LoadRegistry(path string) (*Registry, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("agencies file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open agencies file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read agencies file: %w", err)
	}

	reg, err := parseRegistryFile(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	if len(reg.Agencies) == 0 {
		return nil, errors.New("agencies file contains no agency entries")
	}

	seen := make(map[string]struct{}, len(reg.Agencies))
	for i, a := range reg.Agencies {
		id := strings.ToUpper(strings.TrimSpace(a.ID))
		if id == "" {
			return nil, fmt.Errorf("agency[%d]: id is required", i)
		}
		if a.URL != "" {
			if err := validateBaseURL(a.URL); err != nil {
				return nil, fmt.Errorf("agency %q: %w", a.ID, err)
			}
		}
		if _, exists := seen[id]; exists {
			return nil, fmt.Errorf("duplicate agency id %q", a.ID)
		}
		seen[id] = struct{}{}
	}

	return NewRegistry(reg.Agencies...), nil
}

func parseRegistryFile(data []byte, ext string) (registryFile, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))

	decoders := []struct {
		name string
		ext  string
		fn   func([]byte, any) error
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		var reg registryFile
		if err := d.fn(data, &reg); err == nil {
			return reg, nil
		}
	}

	return registryFile{}, errors.New("agencies file format not recognized (expected YAML or JSON)")
}
