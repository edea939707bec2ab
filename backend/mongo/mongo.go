// Package mongo implements the document-store backend. Users and
// orders live in two collections of one scratch database, dropped on
// every Setup.
package mongo

import (
	"context"
	"errors"
	"fmt"

	zlog "github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"dbbench/backend"
	"dbbench/dataset"
)

type Backend struct {
	uri      string
	database string
	client   *mongo.Client
	users    *mongo.Collection
	orders   *mongo.Collection
}

func New(uri, database string) *Backend {
	return &Backend{uri: uri, database: database}
}

func (b *Backend) Name() string { return "MongoDB" }

func (b *Backend) Setup() error {
	ctx := context.Background()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(b.uri))
	if err != nil {
		return fmt.Errorf("%w: %v", backend.ErrConnection, err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		client.Disconnect(ctx)
		return fmt.Errorf("%w: %v", backend.ErrConnection, err)
	}
	b.client = client

	db := client.Database(b.database)
	b.users = db.Collection("users")
	b.orders = db.Collection("orders")

	for _, coll := range []*mongo.Collection{b.users, b.orders} {
		if err := coll.Drop(ctx); err != nil {
			return fmt.Errorf("%w: %v", backend.ErrSchema, err)
		}
	}

	zlog.Debug().Str("backend", b.Name()).Str("database", b.database).Msg("Collections ready")
	return nil
}

// Create ingests each collection with one InsertMany.
func (b *Backend) Create(users []dataset.User, orders []dataset.Order) error {
	ctx := context.Background()

	userDocs := make([]any, len(users))
	for i, u := range users {
		userDocs[i] = u
	}
	if _, err := b.users.InsertMany(ctx, userDocs); err != nil {
		return fmt.Errorf("%w: %v", backend.ErrWrite, err)
	}

	orderDocs := make([]any, len(orders))
	for i, o := range orders {
		orderDocs[i] = o
	}
	if _, err := b.orders.InsertMany(ctx, orderDocs); err != nil {
		return fmt.Errorf("%w: %v", backend.ErrWrite, err)
	}
	return nil
}

func (b *Backend) ReadPoint(userID int) (*dataset.User, error) {
	var u dataset.User
	err := b.users.FindOne(context.Background(), bson.M{"user_id": userID}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", backend.ErrRead, err)
	}
	return &u, nil
}

func (b *Backend) ReadRange(p backend.Predicate) ([]dataset.Order, error) {
	ctx := context.Background()

	cursor, err := b.orders.Find(ctx, filter(p))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", backend.ErrRead, err)
	}

	var out []dataset.Order
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", backend.ErrRead, err)
	}
	return out, nil
}

func (b *Backend) Update(p backend.Predicate, patch backend.Patch) error {
	update := bson.M{"$set": bson.M{"status": string(patch.Status)}}
	if _, err := b.orders.UpdateMany(context.Background(), filter(p), update); err != nil {
		return fmt.Errorf("%w: %v", backend.ErrWrite, err)
	}
	return nil
}

func (b *Backend) Delete(p backend.Predicate) error {
	if _, err := b.orders.DeleteMany(context.Background(), filter(p)); err != nil {
		return fmt.Errorf("%w: %v", backend.ErrWrite, err)
	}
	return nil
}

func (b *Backend) Teardown() error {
	if b.client == nil {
		return nil
	}
	err := b.client.Disconnect(context.Background())
	b.client = nil
	return err
}

func filter(p backend.Predicate) bson.M {
	f := bson.M{}
	if p.UserID != 0 {
		f["user_id"] = p.UserID
	}
	if p.MinAmount != 0 {
		f["amount"] = bson.M{"$gt": p.MinAmount}
	}
	if p.Status != "" {
		f["status"] = string(p.Status)
	}
	return f
}
