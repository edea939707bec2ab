package jsonfile

import (
	"encoding/json"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dbbench/backend"
	"dbbench/dataset"
)

func testOrders() []dataset.Order {
	return []dataset.Order{
		{OrderID: 1, UserID: 1, Amount: 350.00, Status: dataset.StatusPaid, CreatedAt: dataset.OrderCreatedAt},
		{OrderID: 2, UserID: 2, Amount: 120.50, Status: dataset.StatusPending, CreatedAt: dataset.OrderCreatedAt},
		{OrderID: 3, UserID: 1, Amount: 480.99, Status: dataset.StatusCancelled, CreatedAt: dataset.OrderCreatedAt},
		{OrderID: 4, UserID: 3, Amount: 301.00, Status: dataset.StatusPaid, CreatedAt: dataset.OrderCreatedAt},
	}
}

func newTestBackend(t *testing.T) (*Backend, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	b := New(fs, "tiny_benchmark.json")
	require.NoError(t, b.Setup())
	return b, fs
}

func readFileTables(t *testing.T, fs afero.Fs) tables {
	t.Helper()
	body, err := afero.ReadFile(fs, "tiny_benchmark.json")
	require.NoError(t, err)

	var data tables
	require.NoError(t, json.Unmarshal(body, &data))
	return data
}

func TestSetupReplacesExistingFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "tiny_benchmark.json", []byte("stale"), 0o644))

	b := New(fs, "tiny_benchmark.json")
	require.NoError(t, b.Setup())

	data := readFileTables(t, fs)
	assert.Empty(t, data.Users)
	assert.Empty(t, data.Orders)
}

func TestCreatePersists(t *testing.T) {
	b, fs := newTestBackend(t)
	users, orders := dataset.Generate(42, 3, 5)

	require.NoError(t, b.Create(users, orders))

	data := readFileTables(t, fs)
	assert.Equal(t, users, data.Users)
	assert.Equal(t, orders, data.Orders)
}

func TestReadPoint(t *testing.T) {
	b, _ := newTestBackend(t)
	users, orders := dataset.Generate(42, 3, 5)
	require.NoError(t, b.Create(users, orders))

	u, err := b.ReadPoint(2)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, users[1], *u)

	missing, err := b.ReadPoint(42)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestReadRange(t *testing.T) {
	b, _ := newTestBackend(t)
	require.NoError(t, b.Create(nil, testOrders()))

	matched, err := b.ReadRange(backend.Predicate{MinAmount: 300, Status: dataset.StatusPaid})
	require.NoError(t, err)

	require.Len(t, matched, 2)
	assert.Equal(t, 1, matched[0].OrderID)
	assert.Equal(t, 4, matched[1].OrderID)
}

func TestUpdatePersists(t *testing.T) {
	b, fs := newTestBackend(t)
	require.NoError(t, b.Create(nil, testOrders()))

	err := b.Update(backend.Predicate{Status: dataset.StatusPending}, backend.Patch{Status: dataset.StatusPaid})
	require.NoError(t, err)

	data := readFileTables(t, fs)
	for _, o := range data.Orders {
		assert.NotEqual(t, dataset.StatusPending, o.Status)
	}
	assert.Equal(t, dataset.StatusPaid, data.Orders[1].Status)
}

func TestDeletePersists(t *testing.T) {
	b, fs := newTestBackend(t)
	require.NoError(t, b.Create(nil, testOrders()))

	require.NoError(t, b.Delete(backend.Predicate{Status: dataset.StatusCancelled}))

	data := readFileTables(t, fs)
	require.Len(t, data.Orders, 3)
	for _, o := range data.Orders {
		assert.NotEqual(t, dataset.StatusCancelled, o.Status)
	}
}
