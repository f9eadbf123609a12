package db

import (
	"context"
	"os"
	"testing"

	"noticeboard/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestOpen_GormKV(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	conn, err := Open(dsn, zap.NewNop())
	require.NoError(t, err)

	ctx := context.Background()
	kv := storage.NewGormKV(conn)
	key := "db-test-key"
	t.Cleanup(func() { _ = kv.Remove(ctx, key) })

	require.NoError(t, kv.Set(ctx, key, []byte(`[1,2]`)))
	require.NoError(t, kv.Set(ctx, key, []byte(`[3]`)))
	got, err := kv.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, `[3]`, string(got))

	require.NoError(t, kv.Remove(ctx, key))
	_, err = kv.Get(ctx, key)
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)
}
