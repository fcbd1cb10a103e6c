package database

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/localrot/internal/model"
)

func TestOpenFilesCreatesEmptyCollections(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "database")

	db, err := OpenFiles(dir)
	require.NoError(t, err)
	defer db.Close()

	for _, name := range []string{UsersFile, ReservationsFile, PaymentsFile} {
		raw, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.JSONEq(t, "[]", string(raw), name)
	}
}

func TestOpenFilesKeepsExistingData(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, UsersFile),
		[]byte(`[{"id":"USR_000000000001","username":"alice","password":"x","createdAt":1}]`), 0o644))

	db, err := OpenFiles(dir)
	require.NoError(t, err)

	users, err := db.Users.Read()
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "alice", users[0].Username)
}

func TestUpdateRewritesWholeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "payments.json")
	c, err := NewCollection[model.Payment](path)
	require.NoError(t, err)

	err = c.Update(func(items []model.Payment) ([]model.Payment, error) {
		return append(items, model.Payment{ID: "PAY_1", Status: model.PaymentCreated}), nil
	})
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\n  {\n    \"id\": \"PAY_1\"")
}

func TestUpdateErrorLeavesFileUntouched(t *testing.T) {
	c, err := NewCollection[model.Payment](filepath.Join(t.TempDir(), "payments.json"))
	require.NoError(t, err)

	boom := errors.New("boom")
	err = c.Update(func(items []model.Payment) ([]model.Payment, error) {
		return append(items, model.Payment{ID: "PAY_1"}), boom
	})
	assert.ErrorIs(t, err, boom)

	items, err := c.Read()
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestConcurrentUpdatesAreNotLost(t *testing.T) {
	c, err := NewCollection[model.User](filepath.Join(t.TempDir(), "users.json"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = c.Update(func(items []model.User) ([]model.User, error) {
				return append(items, model.User{}), nil
			})
		}()
	}
	wg.Wait()

	items, err := c.Read()
	require.NoError(t, err)
	assert.Len(t, items, 20)
}

func TestEmptyFileReadsAsEmptyCollection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	c, err := NewCollection[model.User](path)
	require.NoError(t, err)

	items, err := c.Read()
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestClosedDatabaseRejectsAccess(t *testing.T) {
	db, err := OpenFiles(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = db.Reservations.Read()
	assert.ErrorIs(t, err, ErrClosed)
	err = db.Payments.Update(func(p []model.Payment) ([]model.Payment, error) { return p, nil })
	assert.ErrorIs(t, err, ErrClosed)
}
