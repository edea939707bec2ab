package dataset

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dbbench/util"
)

func TestGenerateDeterministic(t *testing.T) {
	users1, orders1 := Generate(42, 500, 2000)
	users2, orders2 := Generate(42, 500, 2000)

	require.Equal(t, users1, users2)
	require.Equal(t, orders1, orders2)
}

func TestGenerateSeedChangesOrders(t *testing.T) {
	_, orders1 := Generate(42, 500, 2000)
	_, orders2 := Generate(43, 500, 2000)

	require.NotEqual(t, orders1, orders2)
}

func TestGenerateUsers(t *testing.T) {
	users, _ := Generate(42, 50, 10)
	require.Len(t, users, 50)

	for i, u := range users {
		assert.Equal(t, i+1, u.UserID)
		assert.Equal(t, fmt.Sprintf("User %d", i+1), u.Name)
		assert.Equal(t, fmt.Sprintf("user%d@example.com", i+1), u.Email)
		assert.Equal(t, UserCreatedAt, u.CreatedAt)
	}
}

func TestGenerateOrders(t *testing.T) {
	const userCount = 50
	orders := second(Generate(42, userCount, 200))
	require.Len(t, orders, 200)

	for i, o := range orders {
		assert.Equal(t, i+1, o.OrderID, "order ids are dense")

		assert.GreaterOrEqual(t, o.UserID, 1)
		assert.LessOrEqual(t, o.UserID, userCount)

		assert.GreaterOrEqual(t, o.Amount, 1.0)
		assert.LessOrEqual(t, o.Amount, 500.0)
		assert.Equal(t, util.Round2(o.Amount), o.Amount, "amounts have 2 fractional digits")

		assert.Contains(t, Statuses, o.Status)
		assert.Equal(t, OrderCreatedAt, o.CreatedAt)
	}
}

func TestGeneratePanicsOnBadCounts(t *testing.T) {
	require.Panics(t, func() { Generate(42, 0, 10) })
	require.Panics(t, func() { Generate(42, 10, -1) })
}

func second[T1, T2 any](_ T1, v T2) T2 { return v }
