// Package store keeps the order set in a key-value backend under one fixed key.
//
// Load and Save never return errors to the caller: a failed read comes back as
// an empty set and a failed write is only logged, leaving the in-memory order
// set as the source of truth for the rest of the session.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"dinnerconcierge/internal/database"
	"dinnerconcierge/internal/models"
)

// DefaultKey is the storage key the orders live under.
const DefaultKey = "family_dinner_orders_2025_v1"

// PersistenceError describes a failed read or write of the stored order set.
type PersistenceError struct {
	Op  string
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

type Store struct {
	kv     database.KV
	key    string
	logger logrus.FieldLogger
}

func New(kv database.KV, key string, logger logrus.FieldLogger) *Store {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Store{kv: kv, key: key, logger: logger}
}

func (s *Store) Key() string { return s.key }

// Load returns the stored orders, or an empty set when nothing usable is stored.
func (s *Store) Load(ctx context.Context) models.OrderSet {
	orders, err := s.Read(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to load orders")
		return models.OrderSet{}
	}
	return orders
}

// Read is Load with the error reported instead of logged.
func (s *Store) Read(ctx context.Context) (models.OrderSet, error) {
	raw, found, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return models.OrderSet{}, &PersistenceError{Op: "read", Key: s.key, Err: err}
	}
	if !found || raw == "" {
		return models.OrderSet{}, nil
	}

	orders := models.OrderSet{}
	if err := json.Unmarshal([]byte(raw), &orders); err != nil {
		return models.OrderSet{}, &PersistenceError{Op: "parse", Key: s.key, Err: errors.Wrap(err, "stored orders")}
	}
	if orders == nil {
		orders = models.OrderSet{}
	}
	return orders, nil
}

// Save overwrites the stored value with orders. Failures are logged.
func (s *Store) Save(ctx context.Context, orders models.OrderSet) {
	if err := s.Write(ctx, orders); err != nil {
		s.logger.WithError(err).Error("Failed to save orders")
		return
	}
	s.logger.WithField("orders", len(orders)).Debug("Saved orders")
}

// Write is Save with the error reported instead of logged.
func (s *Store) Write(ctx context.Context, orders models.OrderSet) error {
	if orders == nil {
		orders = models.OrderSet{}
	}
	raw, err := json.Marshal(orders)
	if err != nil {
		return &PersistenceError{Op: "encode", Key: s.key, Err: err}
	}
	if err := s.kv.Set(ctx, s.key, string(raw)); err != nil {
		return &PersistenceError{Op: "write", Key: s.key, Err: err}
	}
	return nil
}
