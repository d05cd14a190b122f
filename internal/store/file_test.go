package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mockapi/internal/mockgen"
)

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	testStoreContract(t, s)
}

func TestFileStore_DocumentLayout(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.Save(ctx, "user/42", "users", []mockgen.Field{{Name: "age", Type: "number"}}))

	data, err := os.ReadFile(filepath.Join(dir, "user%2F42.json"))
	require.NoError(t, err)

	var doc map[string]struct {
		Fields []mockgen.Field `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, []mockgen.Field{{Name: "age", Type: "number"}}, doc["users"].Fields)

	// no temp files left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.Save(ctx, "alice", "users", []mockgen.Field{{Name: "n", Type: "number"}}))

	second, err := NewFileStore(dir)
	require.NoError(t, err)
	got, err := second.Load(ctx, "alice", "users")
	require.NoError(t, err)
	assert.Equal(t, []mockgen.Field{{Name: "n", Type: "number"}}, got)
}

func TestFileStore_CorruptDocument(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "alice.json"), []byte("{not json"), 0o644))

	s, err := NewFileStore(dir)
	require.NoError(t, err)
	_, err = s.Load(context.Background(), "alice", "users")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
