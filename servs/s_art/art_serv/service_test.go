package art_serv

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rskv-p/artkv/pkg/x_db"
	"github.com/rskv-p/artkv/servs/s_art/art_cfg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	cfg := art_cfg.Default()
	cfg.DBDSN = filepath.Join(t.TempDir(), "art.db")
	cfg.Logger.Level = "silent"
	svc, err := New(cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })
	return svc
}

func TestService_AdminCreatedOnce(t *testing.T) {
	svc := newTestService(t)
	u, err := FindUserByUsername(svc.DB(), "admin")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, u.Role)
	assert.True(t, u.CheckPassword("admin"))
	assert.False(t, u.CheckPassword("nope"))

	created, err := EnsureAdmin(svc.DB(), "admin", "other")
	require.NoError(t, err)
	assert.False(t, created)
}

func TestService_SaveRestore(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	st := svc.Store()
	for _, k := range []string{"a", "ab", "b"} {
		_, _, err := st.Put([]byte(k), []byte("v-"+k))
		require.NoError(t, err)
	}

	n, err := svc.Save(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, _ = st.Delete([]byte("a"))
	_, _, _ = st.Put([]byte("zzz"), nil)

	n, err = svc.Restore(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	v, ok := st.Get([]byte("a"))
	require.True(t, ok)
	assert.Equal(t, []byte("v-a"), v)
	_, ok = st.Get([]byte("zzz"))
	assert.False(t, ok)
}

func TestService_Import(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	_, _, _ = svc.Store().Put([]byte("keep"), []byte("1"))

	src, err := x_db.Open(x_db.Config{DSN: filepath.Join(t.TempDir(), "src.db"), LogLevel: "silent"}, zerolog.Nop())
	require.NoError(t, err)
	defer x_db.Close(src)
	require.NoError(t, x_db.Upsert(ctx, src,
		x_db.Entry{Key: []byte("x"), Value: []byte("1")},
		x_db.Entry{Key: []byte("y"), Value: []byte("2")}))

	n, err := svc.Import(ctx, src)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 3, svc.Store().Len())
}

func TestCreateUser_Validation(t *testing.T) {
	svc := newTestService(t)
	assert.ErrorIs(t, CreateUser(svc.DB(), "", "pw", RoleUser), ErrCredentials)
	require.NoError(t, CreateUser(svc.DB(), "bob", "pw", RoleUser))
	assert.Error(t, CreateUser(svc.DB(), "bob", "pw", RoleUser))
}

func TestService_PersistMirrorsMutations(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	stop := svc.Persist(ctx)

	_, _, err := svc.Store().Put([]byte("a"), []byte("1"))
	require.NoError(t, err)
	_, _, err = svc.Store().Put([]byte("b"), []byte("2"))
	require.NoError(t, err)
	_, _, err = svc.Store().Put([]byte("a"), []byte("3"))
	require.NoError(t, err)
	_, ok := svc.Store().Delete([]byte("b"))
	require.True(t, ok)
	stop()

	n, err := x_db.Count(ctx, svc.DB())
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	var rows []x_db.Entry
	require.NoError(t, x_db.Each(ctx, svc.DB(), 0, func(e x_db.Entry) error {
		rows = append(rows, e)
		return nil
	}))
	require.Len(t, rows, 1)
	assert.Equal(t, []byte("a"), rows[0].Key)
	assert.Equal(t, []byte("3"), rows[0].Value)

	// stopped mirrors ignore later writes
	_, _, err = svc.Store().Put([]byte("c"), []byte("4"))
	require.NoError(t, err)
	n, err = x_db.Count(ctx, svc.DB())
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}
