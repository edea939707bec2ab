// Package sqlite implements the embedded relational backend on a
// throwaway database file, removed and recreated on every Setup.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"dbbench/backend"
	"dbbench/dataset"
)

var schema = []string{
	`create table users (
		user_id integer primary key,
		name text,
		email text,
		created_at text
	)`,
	`create table orders (
		order_id integer primary key,
		user_id integer,
		amount real,
		status text,
		created_at text,
		foreign key (user_id) references users (user_id)
	)`,
}

type Backend struct {
	path string
	db   *sql.DB
}

func New(path string) *Backend {
	return &Backend{path: path}
}

func (b *Backend) Name() string { return "SQLite" }

func (b *Backend) Setup() error {
	if err := os.Remove(b.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %v", backend.ErrConnection, err)
	}

	db, err := sql.Open("sqlite3", b.path)
	if err != nil {
		return fmt.Errorf("%w: %v", backend.ErrConnection, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("%w: %v", backend.ErrConnection, err)
	}
	b.db = db

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("%w: %v", backend.ErrSchema, err)
		}
	}
	return nil
}

func (b *Backend) Create(users []dataset.User, orders []dataset.Order) error {
	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: %v", backend.ErrWrite, err)
	}

	if err := insertAll(tx, users, orders); err != nil {
		tx.Rollback()
		return fmt.Errorf("%w: %v", backend.ErrWrite, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", backend.ErrWrite, err)
	}
	return nil
}

func insertAll(tx *sql.Tx, users []dataset.User, orders []dataset.Order) error {
	userStmt, err := tx.Prepare("insert into users (user_id, name, email, created_at) values (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer userStmt.Close()

	for _, u := range users {
		if _, err := userStmt.Exec(u.UserID, u.Name, u.Email, u.CreatedAt); err != nil {
			return err
		}
	}

	orderStmt, err := tx.Prepare("insert into orders (order_id, user_id, amount, status, created_at) values (?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer orderStmt.Close()

	for _, o := range orders {
		if _, err := orderStmt.Exec(o.OrderID, o.UserID, o.Amount, string(o.Status), o.CreatedAt); err != nil {
			return err
		}
	}
	return nil
}

func (b *Backend) ReadPoint(userID int) (*dataset.User, error) {
	row := b.db.QueryRow("select user_id, name, email, created_at from users where user_id = ?", userID)

	var u dataset.User
	err := row.Scan(&u.UserID, &u.Name, &u.Email, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", backend.ErrRead, err)
	}
	return &u, nil
}

func (b *Backend) ReadRange(p backend.Predicate) ([]dataset.Order, error) {
	where, args := backend.WhereOrders(p, backend.Question)
	rows, err := b.db.Query("select order_id, user_id, amount, status, created_at from orders"+where, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", backend.ErrRead, err)
	}
	defer rows.Close()

	var out []dataset.Order
	for rows.Next() {
		var o dataset.Order
		if err := rows.Scan(&o.OrderID, &o.UserID, &o.Amount, &o.Status, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %v", backend.ErrRead, err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", backend.ErrRead, err)
	}
	return out, nil
}

func (b *Backend) Update(p backend.Predicate, patch backend.Patch) error {
	where, args := backend.WhereOrders(p, backend.Question)
	args = append([]any{string(patch.Status)}, args...)

	if _, err := b.db.Exec("update orders set status = ?"+where, args...); err != nil {
		return fmt.Errorf("%w: %v", backend.ErrWrite, err)
	}
	return nil
}

func (b *Backend) Delete(p backend.Predicate) error {
	where, args := backend.WhereOrders(p, backend.Question)
	if _, err := b.db.Exec("delete from orders"+where, args...); err != nil {
		return fmt.Errorf("%w: %v", backend.ErrWrite, err)
	}
	return nil
}

func (b *Backend) Teardown() error {
	if b.db == nil {
		return nil
	}
	err := b.db.Close()
	b.db = nil
	return err
}
