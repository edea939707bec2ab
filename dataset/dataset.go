// Package dataset produces the synthetic shopping workload (users and
// orders) shared by every backend under benchmark. The same seed always
// yields the same sequences, so cross-backend timings compare like with
// like.
package dataset

import (
	"fmt"
	"math/rand"

	"dbbench/util"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusPaid      Status = "PAID"
	StatusCancelled Status = "CANCELLED"
)

// Statuses lists the order statuses in draw order.
var Statuses = []Status{StatusPending, StatusPaid, StatusCancelled}

// Timestamps are fixed so reruns are byte-identical.
const (
	UserCreatedAt  = "2023-01-01 10:00:00"
	OrderCreatedAt = "2023-01-02 11:00:00"
)

type User struct {
	UserID    int    `json:"user_id" bson:"user_id"`
	Name      string `json:"name" bson:"name"`
	Email     string `json:"email" bson:"email"`
	CreatedAt string `json:"created_at" bson:"created_at"`
}

type Order struct {
	OrderID   int     `json:"order_id" bson:"order_id"`
	UserID    int     `json:"user_id" bson:"user_id"`
	Amount    float64 `json:"amount" bson:"amount"`
	Status    Status  `json:"status" bson:"status"`
	CreatedAt string  `json:"created_at" bson:"created_at"`
}

// Generate builds userCount users and orderCount orders from a single
// seeded stream. The draw order is part of the contract: users first
// (no draws), then per order user_id, amount, status. An order's user_id
// is uniform over [1, userCount]; orders may share users and some users
// may have no orders.
func Generate(seed int64, userCount, orderCount int) ([]User, []Order) {
	if userCount <= 0 || orderCount <= 0 {
		panic(fmt.Sprintf("dataset: non-positive counts (%d users, %d orders)", userCount, orderCount))
	}

	rng := rand.New(rand.NewSource(seed))

	users := make([]User, 0, userCount)
	for i := 1; i <= userCount; i++ {
		users = append(users, User{
			UserID:    i,
			Name:      fmt.Sprintf("User %d", i),
			Email:     fmt.Sprintf("user%d@example.com", i),
			CreatedAt: UserCreatedAt,
		})
	}

	orders := make([]Order, 0, orderCount)
	for i := 1; i <= orderCount; i++ {
		orders = append(orders, Order{
			OrderID:   i,
			UserID:    rng.Intn(userCount) + 1,
			Amount:    util.Round2(1 + rng.Float64()*499),
			Status:    Statuses[rng.Intn(len(Statuses))],
			CreatedAt: OrderCreatedAt,
		})
	}

	return users, orders
}
