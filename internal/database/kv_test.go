package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseKV(t *testing.T, kv KV) {
	ctx := context.Background()

	_, found, err := kv.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, kv.Set(ctx, "orders", `{"a":1}`))
	v, found, err := kv.Get(ctx, "orders")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"a":1}`, v)

	require.NoError(t, kv.Set(ctx, "orders", `{}`))
	v, _, err = kv.Get(ctx, "orders")
	require.NoError(t, err)
	assert.Equal(t, `{}`, v)
}

func TestMemory(t *testing.T) {
	exerciseKV(t, NewMemory())
}

func TestSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dinner.db")
	kv, err := NewSQLite(path)
	require.NoError(t, err)
	defer kv.Close()

	exerciseKV(t, kv)
}

func TestSQLiteSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dinner.db")
	kv, err := NewSQLite(path)
	require.NoError(t, err)
	require.NoError(t, kv.Set(context.Background(), "k", "v"))
	require.NoError(t, kv.Close())

	kv, err = NewSQLite(path)
	require.NoError(t, err)
	defer kv.Close()
	v, found, err := kv.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v", v)
}

func TestMongo(t *testing.T) {
	uri := os.Getenv("DINNER_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("DINNER_TEST_MONGO_URI not set, skipping integration test")
	}
	kv, err := NewMongoDB(uri, "dinner_test", "kv_test")
	require.NoError(t, err)
	defer kv.Close()
	defer kv.collection.Drop(context.Background())

	exerciseKV(t, kv)
}

func TestOpen(t *testing.T) {
	kv, err := Open(Options{Backend: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, kv)

	kv, err = Open(Options{SQLitePath: filepath.Join(t.TempDir(), "x.db")})
	require.NoError(t, err)
	assert.IsType(t, &SQLite{}, kv)
	kv.Close()

	_, err = Open(Options{Backend: "redis"})
	assert.Error(t, err)

	_, err = Open(Options{Backend: "mongo"})
	assert.Error(t, err)
}
