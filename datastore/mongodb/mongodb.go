/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mongodb stores each key as one document in a MongoDB collection.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// DefaultCollection is used when no collection name is configured.
const DefaultCollection = "slots"

type slotDocument struct {
	Key       string    `bson:"_id"`
	Payload   []byte    `bson:"payload"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// DataStore implements datastore.KeyValueStore on a MongoDB collection.
type DataStore struct {
	client *mongo.Client
	coll   *mongo.Collection
	logger *zap.Logger
}

// Option configures a DataStore
type Option func(*DataStore)

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(d *DataStore) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// New connects to uri, verifies the connection and returns a store over dbName.collName.
func New(ctx context.Context, uri, dbName, collName string, opts ...Option) (*DataStore, error) {
	if collName == "" {
		collName = DefaultCollection
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	d := &DataStore{
		client: client,
		coll:   client.Database(dbName).Collection(collName),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}

	d.logger.Info("MongoDB datastore initialized",
		zap.String("database", dbName),
		zap.String("collection", collName),
	)
	return d, nil
}

// Load returns the payload of the document for key.
func (d *DataStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	var doc slotDocument
	err := d.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to load slot %q: %w", key, err)
	}
	return doc.Payload, true, nil
}

// Save upserts the document for key.
func (d *DataStore) Save(ctx context.Context, key string, data []byte) error {
	doc := slotDocument{
		Key:       key,
		Payload:   data,
		UpdatedAt: time.Now().UTC(),
	}
	if doc.Payload == nil {
		doc.Payload = []byte{}
	}

	_, err := d.coll.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save slot %q: %w", key, err)
	}

	d.logger.Debug("slot saved", zap.String("key", key), zap.Int("bytes", len(data)))
	return nil
}

// Remove deletes the document for key.
func (d *DataStore) Remove(ctx context.Context, key string) error {
	if _, err := d.coll.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("failed to remove slot %q: %w", key, err)
	}
	d.logger.Debug("slot removed", zap.String("key", key))
	return nil
}

// Close closes the MongoDB connection.
func (d *DataStore) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}
