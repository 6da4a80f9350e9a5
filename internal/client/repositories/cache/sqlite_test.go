package cache

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:cachetest?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS cache (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);`)
	require.NoError(t, err)
	_, err = db.Exec(`DELETE FROM cache`)
	require.NoError(t, err)
	return db
}

func TestSQLiteRepository_SetGet(t *testing.T) {
	ctx := context.Background()
	r := NewSQLiteRepository(setupDB(t))

	require.NoError(t, r.Set(ctx, "notes", []byte(`[]`)))

	got, err := r.Get(ctx, "notes")
	require.NoError(t, err)
	require.Equal(t, []byte(`[]`), got)

	// overwrite
	require.NoError(t, r.Set(ctx, "notes", []byte(`[{"id":"1"}]`)))
	got, err = r.Get(ctx, "notes")
	require.NoError(t, err)
	require.Equal(t, []byte(`[{"id":"1"}]`), got)
}

func TestSQLiteRepository_GetMissing(t *testing.T) {
	ctx := context.Background()
	r := NewSQLiteRepository(setupDB(t))

	got, err := r.Get(ctx, "absent")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestSQLiteRepository_Delete(t *testing.T) {
	ctx := context.Background()
	r := NewSQLiteRepository(setupDB(t))

	require.NoError(t, r.Set(ctx, "selectedNote", []byte(`{}`)))
	require.NoError(t, r.Delete(ctx, "selectedNote"))

	got, err := r.Get(ctx, "selectedNote")
	require.NoError(t, err)
	require.Nil(t, got)

	// deleting an absent key is fine
	require.NoError(t, r.Delete(ctx, "selectedNote"))
}

func TestSQLiteRepository_Save(t *testing.T) {
	ctx := context.Background()
	r := NewSQLiteRepository(setupDB(t))

	require.NoError(t, r.Set(ctx, "selectedNote", []byte(`{"id":"1"}`)))

	err := r.Save(ctx,
		map[string][]byte{"notes": []byte(`[{"id":"1"}]`)},
		[]string{"selectedNote"},
	)
	require.NoError(t, err)

	notes, err := r.Get(ctx, "notes")
	require.NoError(t, err)
	require.Equal(t, []byte(`[{"id":"1"}]`), notes)

	sel, err := r.Get(ctx, "selectedNote")
	require.NoError(t, err)
	require.Nil(t, sel)
}

func TestSQLiteRepository_Clear(t *testing.T) {
	ctx := context.Background()
	r := NewSQLiteRepository(setupDB(t))

	require.NoError(t, r.Set(ctx, "a", []byte("1")))
	require.NoError(t, r.Set(ctx, "b", []byte("2")))
	require.NoError(t, r.Clear(ctx))

	got, err := r.Get(ctx, "a")
	require.NoError(t, err)
	require.Nil(t, got)
}
