// Package database provides the key-value backends the order store persists to.
package database

import (
	"context"
	"fmt"
)

// KV is a string key-value store. Get reports found=false for a missing key.
type KV interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Options selects and configures a backend for Open.
type Options struct {
	Backend         string
	SQLitePath      string
	MongoURI        string
	MongoDatabase   string
	MongoCollection string
}

// Open returns the backend named by opts.Backend: "sqlite" (default), "mongo" or "memory".
func Open(opts Options) (KV, error) {
	switch opts.Backend {
	case "", "sqlite":
		db, err := NewSQLite(opts.SQLitePath)
		if err != nil {
			return nil, err
		}
		return db, nil
	case "mongo":
		db, err := NewMongoDB(opts.MongoURI, opts.MongoDatabase, opts.MongoCollection)
		if err != nil {
			return nil, err
		}
		return db, nil
	case "memory":
		return NewMemory(), nil
	}
	return nil, fmt.Errorf("unknown store backend %q", opts.Backend)
}
