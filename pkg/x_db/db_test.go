package x_db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open(Config{
		Type:     DbSqlite,
		DSN:      filepath.Join(t.TempDir(), "test.db"),
		LogLevel: "silent",
	}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })
	return db
}

func TestParseType(t *testing.T) {
	typ, err := ParseType("Postgres")
	require.NoError(t, err)
	assert.Equal(t, DbPostgres, typ)

	typ, err = ParseType("")
	require.NoError(t, err)
	assert.Equal(t, DbSqlite, typ)

	_, err = ParseType("oracle")
	assert.Error(t, err)
}

func TestSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	require.NoError(t, SaveSnapshot(ctx, db, []Entry{
		{Key: []byte("b"), Value: []byte("2")},
		{Key: []byte("a"), Value: []byte("1")},
		{Key: []byte{0x00, 0xFF}, Value: []byte("bin")},
	}))

	var keys []string
	require.NoError(t, Each(ctx, db, 2, func(e Entry) error {
		keys = append(keys, string(e.Key))
		return nil
	}))
	assert.Equal(t, []string{"\x00\xff", "a", "b"}, keys)

	// a second snapshot replaces the first
	require.NoError(t, SaveSnapshot(ctx, db, []Entry{{Key: []byte("c"), Value: []byte("3")}}))
	n, err := Count(ctx, db)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	require.NoError(t, SaveSnapshot(ctx, db, nil))
	n, err = Count(ctx, db)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)
}

func TestUpsertAndRemove(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	require.NoError(t, Upsert(ctx, db, Entry{Key: []byte("k"), Value: []byte("v1")}))
	require.NoError(t, Upsert(ctx, db, Entry{Key: []byte("k"), Value: []byte("v2")}, Entry{Key: []byte("j"), Value: []byte("x")}))

	got := map[string]string{}
	require.NoError(t, Each(ctx, db, 0, func(e Entry) error {
		got[string(e.Key)] = string(e.Value)
		return nil
	}))
	assert.Equal(t, map[string]string{"k": "v2", "j": "x"}, got)

	require.NoError(t, Remove(ctx, db, []byte("k")))
	n, err := Count(ctx, db)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestEach_StopsOnError(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	require.NoError(t, Upsert(ctx, db,
		Entry{Key: []byte("1")}, Entry{Key: []byte("2")}, Entry{Key: []byte("3")}))

	stop := errors.New("stop")
	calls := 0
	err := Each(ctx, db, 1, func(Entry) error {
		calls++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}

func TestOpen_RejectsUnknownDriver(t *testing.T) {
	_, err := Open(Config{Type: "oracle"}, zerolog.Nop())
	assert.Error(t, err)
}
