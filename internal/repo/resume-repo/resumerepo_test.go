package resumerepo

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"
)

func newRepo(t *testing.T) (*Repository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state", "billsplit.db")
	repo, err := New(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo, path
}

func TestRepository_SaveLoadClear(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	_, ok, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Save(ctx, "b1"))
	require.NoError(t, repo.Save(ctx, "b2"))
	ref, ok, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "b2", ref.ID)

	require.NoError(t, repo.Clear(ctx))
	_, ok, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Error(t, repo.Save(ctx, ""))
}

func TestRepository_ClearIf(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "b2"))
	require.NoError(t, repo.ClearIf(ctx, "b1"))
	ref, ok, err := repo.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "b2", ref.ID)

	require.NoError(t, repo.ClearIf(ctx, "b2"))
	_, ok, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, repo.ClearIf(ctx, "b2"))
}

func TestRepository_SurvivesRestart(t *testing.T) {
	repo, path := newRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, "b7"))
	require.NoError(t, repo.Close())

	reopened, err := New(path)
	require.NoError(t, err)
	defer reopened.Close()

	ref, ok, err := reopened.Load(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "b7", ref.ID)
}

func TestRepository_CorruptRecord(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketResume).Put(keyOpenBill, []byte("{not json"))
	}))

	_, ok, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	var raw []byte
	require.NoError(t, repo.db.View(func(tx *bolt.Tx) error {
		raw = tx.Bucket(bucketResume).Get(keyOpenBill)
		return nil
	}))
	assert.Nil(t, raw)
}
