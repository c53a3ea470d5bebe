package jsonfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/certiverify/api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestStore_ReadMissingFile(t *testing.T) {
	store := newTestStore(t)

	var users []domain.User
	store.Read("users", &users)

	assert.Empty(t, users)
}

func TestStore_ReadInvalidJSON(t *testing.T) {
	store := newTestStore(t)

	err := os.WriteFile(filepath.Join(store.dir, "users.json"), []byte("{not json"), 0o644)
	require.NoError(t, err)

	var users []domain.User
	store.Read("users", &users)

	assert.Empty(t, users)
}

func TestStore_WriteReadRoundTrip(t *testing.T) {
	store := newTestStore(t)

	in := []domain.User{
		{ID: "1", Name: "Ann", Email: "a@x.com", Role: domain.RoleIssuer},
		{ID: "2", Name: "Bob", Email: "b@x.com", Role: domain.RoleAdmin},
	}
	require.NoError(t, store.Write("users", in))

	var out []domain.User
	store.Read("users", &out)

	assert.Equal(t, in, out)
}

func TestStore_WriteReplacesWholeFile(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Write("certificates", []domain.Certificate{{ID: "old"}}))
	require.NoError(t, store.Write("certificates", []domain.Certificate{{ID: "new"}}))

	var certs []domain.Certificate
	store.Read("certificates", &certs)

	require.Len(t, certs, 1)
	assert.Equal(t, "new", certs[0].ID)
}

func TestNewStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	_, err := NewStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
