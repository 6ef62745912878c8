/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/suparena/bookshelf/config"
	"github.com/suparena/bookshelf/datastore"
	"github.com/suparena/bookshelf/datastore/ddb"
	"github.com/suparena/bookshelf/datastore/file"
	"github.com/suparena/bookshelf/datastore/mongodb"
	"github.com/suparena/bookshelf/logger"
	"go.uber.org/zap"
)

// openStore builds the backend selected by cfg. The returned func releases it.
func openStore(ctx context.Context, cfg config.StorageConfig, log *zap.Logger) (datastore.KeyValueStore, func(), error) {
	storeLogger := logger.Named(log, "datastore."+cfg.Backend)

	switch cfg.Backend {
	case config.BackendFile:
		s, err := file.New(cfg.File.Dir, file.WithLogger(storeLogger))
		if err != nil {
			return nil, nil, err
		}
		storeLogger.Info("file datastore ready", zap.String("dir", s.Dir()))
		return s, func() {}, nil

	case config.BackendDynamoDB:
		s, err := ddb.NewDynamodbDataStore(ctx, ddb.ClientConfig{
			AccessKey: cfg.DynamoDB.AccessKey,
			SecretKey: cfg.DynamoDB.SecretKey,
			Region:    cfg.DynamoDB.Region,
			Endpoint:  cfg.DynamoDB.Endpoint,
		}, cfg.DynamoDB.Table, ddb.WithLogger(storeLogger))
		if err != nil {
			return nil, nil, err
		}
		return s, func() {}, nil

	case config.BackendMongoDB:
		s, err := mongodb.New(ctx, cfg.MongoDB.URI, cfg.MongoDB.Database, cfg.MongoDB.Collection, mongodb.WithLogger(storeLogger))
		if err != nil {
			return nil, nil, err
		}
		return s, func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.Close(closeCtx); err != nil {
				log.Error("failed to close mongodb connection", zap.Error(err))
			}
		}, nil
	}
	return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
}
