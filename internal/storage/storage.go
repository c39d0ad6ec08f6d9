package storage

import (
	"fmt"
	"strings"
	"time"
)

// Package storage provides the local response-cache abstraction.

// Store caches opaque response payloads by caller-chosen key.
type Store interface {
	Close() error
	GetResponse(key string) ([]byte, bool, error)
	PutResponse(key string, payload []byte) error
}

// Options controls retention characteristics for concrete store implementations.
type Options struct {
	ResponseTTL     time.Duration
	CleanupInterval time.Duration
}

const (
	defaultResponseTTL     = 24 * time.Hour
	defaultCleanupInterval = 6 * time.Hour
)

// NewStore creates the configured cache backend.
func NewStore(typ, path string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopStore{}, nil
	case "memory":
		return newMemoryStore(opts), nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt cache requires a path")
		}
		return openBolt(path, opts)
	default:
		return nil, fmt.Errorf("unsupported cache type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.ResponseTTL <= 0 {
		opts.ResponseTTL = defaultResponseTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

type noopStore struct{}

func (noopStore) Close() error                             { return nil }
func (noopStore) GetResponse(string) ([]byte, bool, error) { return nil, false, nil }
func (noopStore) PutResponse(string, []byte) error         { return nil }
