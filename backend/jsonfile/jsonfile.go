// Package jsonfile implements the file-backed backend: both tables
// held in memory and serialized to a single JSON document after every
// mutating operation. Reads are linear scans, which is the point of
// benchmarking it.
package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/afero"

	"dbbench/backend"
	"dbbench/dataset"
)

type tables struct {
	Users  []dataset.User  `json:"users"`
	Orders []dataset.Order `json:"orders"`
}

type Backend struct {
	fs   afero.Fs
	path string
	data tables
}

// New returns a backend storing its JSON document at path on fsys.
// Tests pass an afero memory filesystem.
func New(fsys afero.Fs, path string) *Backend {
	return &Backend{fs: fsys, path: path}
}

func (b *Backend) Name() string { return "JSONFile" }

func (b *Backend) Setup() error {
	if err := b.fs.Remove(b.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %v", backend.ErrConnection, err)
	}

	b.data = tables{}
	if err := b.flush(); err != nil {
		return fmt.Errorf("%w: %v", backend.ErrConnection, err)
	}
	return nil
}

func (b *Backend) Create(users []dataset.User, orders []dataset.Order) error {
	b.data.Users = append([]dataset.User(nil), users...)
	b.data.Orders = append([]dataset.Order(nil), orders...)

	if err := b.flush(); err != nil {
		return fmt.Errorf("%w: %v", backend.ErrWrite, err)
	}
	return nil
}

func (b *Backend) ReadPoint(userID int) (*dataset.User, error) {
	for i := range b.data.Users {
		if b.data.Users[i].UserID == userID {
			u := b.data.Users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (b *Backend) ReadRange(p backend.Predicate) ([]dataset.Order, error) {
	var out []dataset.Order
	for _, o := range b.data.Orders {
		if p.Matches(o) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (b *Backend) Update(p backend.Predicate, patch backend.Patch) error {
	for i := range b.data.Orders {
		if p.Matches(b.data.Orders[i]) {
			b.data.Orders[i].Status = patch.Status
		}
	}

	if err := b.flush(); err != nil {
		return fmt.Errorf("%w: %v", backend.ErrWrite, err)
	}
	return nil
}

func (b *Backend) Delete(p backend.Predicate) error {
	kept := b.data.Orders[:0]
	for _, o := range b.data.Orders {
		if !p.Matches(o) {
			kept = append(kept, o)
		}
	}
	b.data.Orders = kept

	if err := b.flush(); err != nil {
		return fmt.Errorf("%w: %v", backend.ErrWrite, err)
	}
	return nil
}

// Teardown drops the in-memory tables; the file has no open handle
// between operations.
func (b *Backend) Teardown() error {
	b.data = tables{}
	return nil
}

func (b *Backend) flush() error {
	body, err := json.Marshal(b.data)
	if err != nil {
		return err
	}
	return afero.WriteFile(b.fs, b.path, body, 0o644)
}
