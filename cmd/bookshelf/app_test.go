/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suparena/bookshelf"
	"github.com/suparena/bookshelf/catalog"
	"github.com/suparena/bookshelf/config"
	"github.com/suparena/bookshelf/datastore/mock"
	"github.com/suparena/bookshelf/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newTestApp(t *testing.T) (*app, *bytes.Buffer) {
	t.Helper()
	lib, err := catalog.Open(context.Background(), bookshelf.NewRegistry(mock.New()), nil)
	require.NoError(t, err)
	out := &bytes.Buffer{}
	return newApp(lib, out), out
}

func runCmd(t *testing.T, a *app, out *bytes.Buffer, args ...string) error {
	t.Helper()
	out.Reset()
	return a.dispatch(context.Background(), args)
}

func TestBooksCommands(t *testing.T) {
	a, out := newTestApp(t)

	require.NoError(t, runCmd(t, a, out, "books", "add", `{"title":"Laskar Pelangi","author":"Andrea Hirata","stock_current":4}`))
	var b catalog.Book
	require.NoError(t, json.Unmarshal(out.Bytes(), &b))
	assert.Equal(t, int64(1), b.ID)
	assert.Equal(t, 4, b.StockCurrent)

	require.NoError(t, runCmd(t, a, out, "books", "add", `{"title":"Bumi","stock_current":0}`))

	require.NoError(t, runCmd(t, a, out, "books", "list"))
	var list []catalog.Book
	require.NoError(t, json.Unmarshal(out.Bytes(), &list))
	require.Len(t, list, 2)

	require.NoError(t, runCmd(t, a, out, "books", "list", "-stock", "out"))
	list = nil
	require.NoError(t, json.Unmarshal(out.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Bumi", list[0].Title)

	require.NoError(t, runCmd(t, a, out, "books", "list", "-sort", "title", "-q", "i"))
	list = nil
	require.NoError(t, json.Unmarshal(out.Bytes(), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "Bumi", list[0].Title)

	require.NoError(t, runCmd(t, a, out, "books", "update", "1", `{"rating":5}`))
	require.NoError(t, runCmd(t, a, out, "books", "get", "1"))
	b = catalog.Book{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &b))
	assert.Equal(t, 5, b.Rating)

	require.NoError(t, runCmd(t, a, out, "books", "delete", "2"))
	err := runCmd(t, a, out, "books", "get", "2")
	assert.True(t, errors.IsNotFound(err))

	require.NoError(t, runCmd(t, a, out, "books", "clear"))
}

func TestStockAndStatsCommands(t *testing.T) {
	a, out := newTestApp(t)

	require.NoError(t, runCmd(t, a, out, "books", "add", `{"title":"Pulang","stock_current":2,"price":50000}`))
	require.NoError(t, runCmd(t, a, out, "stock", "1", "add", "3", "new", "shipment"))
	var b catalog.Book
	require.NoError(t, json.Unmarshal(out.Bytes(), &b))
	assert.Equal(t, 5, b.StockCurrent)

	require.NoError(t, runCmd(t, a, out, "requirements", "add", `{"title":"Amba","priority":"tinggi"}`))
	require.NoError(t, runCmd(t, a, out, "stats"))
	var s catalog.Stats
	require.NoError(t, json.Unmarshal(out.Bytes(), &s))
	assert.Equal(t, 1, s.TotalBooks)
	assert.Equal(t, 250000.0, s.TotalValue)
	assert.Equal(t, 1, s.PendingRequirements)
}

func TestRequirementsCommands(t *testing.T) {
	a, out := newTestApp(t)

	require.NoError(t, runCmd(t, a, out, "requirements", "add", `{"title":"Amba"}`))
	require.NoError(t, runCmd(t, a, out, "requirements", "add", `{"title":"Aruna"}`))
	require.NoError(t, runCmd(t, a, out, "requirements", "update", "2", `{"status":"received"}`))

	require.NoError(t, runCmd(t, a, out, "requirements", "list", "-status", "pending"))
	var list []catalog.Requirement
	require.NoError(t, json.Unmarshal(out.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Amba", list[0].Title)

	require.NoError(t, runCmd(t, a, out, "requirements", "get", "2"))
	require.NoError(t, runCmd(t, a, out, "requirements", "delete", "2"))
	require.NoError(t, runCmd(t, a, out, "requirements", "clear"))
}

func TestCommandErrors(t *testing.T) {
	a, out := newTestApp(t)

	tests := []struct {
		name string
		args []string
	}{
		{"no command", nil},
		{"unknown command", []string{"shelves"}},
		{"unknown subcommand", []string{"books", "burn"}},
		{"unknown json field", []string{"books", "add", `{"title":"X","colour":"red"}`}},
		{"invalid book", []string{"books", "add", `{"author":"nobody"}`}},
		{"bad id", []string{"books", "get", "abc"}},
		{"missing id", []string{"books", "get"}},
		{"bad stock level", []string{"books", "list", "-stock", "plenty"}},
		{"bad sort key", []string{"books", "list", "-sort", "-"}},
		{"bad adjustment", []string{"stock", "1", "double", "2"}},
		{"short stock", []string{"stock", "1"}},
		{"update missing", []string{"requirements", "update", "9", `{"status":"ordered"}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, runCmd(t, a, out, tt.args...))
		})
	}
}

func TestStockUsage(t *testing.T) {
	a, out := newTestApp(t)

	err := runCmd(t, a, out, "stock", "1", "add")
	require.Error(t, err)
	assert.Equal(t, "usage: stock <id> <add|subtract|set> <n> [reason]", err.Error())
}

func TestOpenStoreFile(t *testing.T) {
	cfg := config.Default().Storage
	cfg.File.Dir = t.TempDir()

	core, logs := observer.New(zap.InfoLevel)
	kv, closeStore, err := openStore(context.Background(), cfg, zap.New(core))
	require.NoError(t, err)
	defer closeStore()

	ready := logs.FilterMessage("file datastore ready").All()
	require.Len(t, ready, 1)
	assert.Equal(t, cfg.File.Dir, ready[0].ContextMap()["dir"])
	assert.Equal(t, "datastore.file", ready[0].LoggerName)

	require.NoError(t, kv.Save(context.Background(), "books", []byte("[]")))
	data, found, err := kv.Load(context.Background(), "books")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "[]", string(data))

	cfg.Backend = "redis"
	_, _, err = openStore(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)
}
