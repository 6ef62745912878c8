/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/suparena/bookshelf/catalog"
	"github.com/suparena/bookshelf/errors"
	"github.com/suparena/bookshelf/storagemodels"
)

// app runs one command against a library and prints JSON results to out.
type app struct {
	lib *catalog.Library
	out io.Writer
}

func newApp(lib *catalog.Library, out io.Writer) *app {
	return &app{lib: lib, out: out}
}

func (a *app) dispatch(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return stderrors.New("missing command")
	}

	switch args[0] {
	case "books":
		return a.books(ctx, args[1:])
	case "requirements":
		return a.requirements(ctx, args[1:])
	case "stock":
		return a.stock(ctx, args[1:])
	case "stats":
		s, err := a.lib.Stats(ctx)
		if err != nil {
			return err
		}
		return a.print(s)
	}
	return fmt.Errorf("unknown command %q", args[0])
}

func (a *app) books(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return stderrors.New("books: missing subcommand")
	}

	switch args[0] {
	case "add":
		if len(args) != 2 {
			return stderrors.New("usage: books add '<json>'")
		}
		var b catalog.Book
		if err := decodeStrict(args[1], &b); err != nil {
			return err
		}
		added, err := a.lib.AddBook(ctx, b)
		if err != nil {
			return err
		}
		return a.print(added)

	case "list":
		fs := flag.NewFlagSet("books list", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		sortKey := fs.String("sort", "", "sort key, prefix with - for descending")
		query := fs.String("q", "", "search title, author, isbn and location")
		genre := fs.String("genre", "", "only this genre")
		status := fs.String("status", "", "only this reading status")
		stock := fs.String("stock", "", "only this stock level")
		if err := fs.Parse(args[1:]); err != nil {
			return fmt.Errorf("books list: %w", err)
		}
		if *stock != "" && !catalog.StockLevel(*stock).Valid() {
			return errors.NewValidationError("stock", fmt.Sprintf("unknown stock level %q", *stock))
		}

		books, err := a.lib.ListBooks(ctx, *sortKey)
		if err != nil {
			return err
		}
		return a.print(catalog.FilterBooks(books, catalog.BookFilter{
			Query:  *query,
			Genre:  catalog.Category(*genre),
			Status: catalog.ReadingStatus(*status),
			Stock:  catalog.StockLevel(*stock),
		}))

	case "get":
		id, err := idArg(args, 2, "books get <id>")
		if err != nil {
			return err
		}
		b, ok, err := a.lib.GetBook(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return errors.NewNotFoundError("Book", id)
		}
		return a.print(b)

	case "update":
		id, err := idArg(args, 3, "books update <id> '<json>'")
		if err != nil {
			return err
		}
		partial, err := decodeFields(args[2])
		if err != nil {
			return err
		}
		b, err := a.lib.UpdateBook(ctx, id, partial)
		if err != nil {
			return err
		}
		return a.print(b)

	case "delete":
		id, err := idArg(args, 2, "books delete <id>")
		if err != nil {
			return err
		}
		b, err := a.lib.DeleteBook(ctx, id)
		if err != nil {
			return err
		}
		return a.print(b)

	case "clear":
		return a.lib.ClearBooks(ctx)
	}
	return fmt.Errorf("books: unknown subcommand %q", args[0])
}

func (a *app) requirements(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return stderrors.New("requirements: missing subcommand")
	}

	switch args[0] {
	case "add":
		if len(args) != 2 {
			return stderrors.New("usage: requirements add '<json>'")
		}
		var r catalog.Requirement
		if err := decodeStrict(args[1], &r); err != nil {
			return err
		}
		added, err := a.lib.AddRequirement(ctx, r)
		if err != nil {
			return err
		}
		return a.print(added)

	case "list":
		fs := flag.NewFlagSet("requirements list", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		sortKey := fs.String("sort", "", "sort key, prefix with - for descending")
		status := fs.String("status", "", "only this status")
		if err := fs.Parse(args[1:]); err != nil {
			return fmt.Errorf("requirements list: %w", err)
		}

		list, err := a.lib.ListRequirements(ctx, *sortKey)
		if err != nil {
			return err
		}
		if *status != "" {
			kept := list[:0]
			for _, r := range list {
				if string(r.Status) == *status {
					kept = append(kept, r)
				}
			}
			list = kept
		}
		return a.print(list)

	case "get":
		id, err := idArg(args, 2, "requirements get <id>")
		if err != nil {
			return err
		}
		r, ok, err := a.lib.GetRequirement(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return errors.NewNotFoundError("BookRequirement", id)
		}
		return a.print(r)

	case "update":
		id, err := idArg(args, 3, "requirements update <id> '<json>'")
		if err != nil {
			return err
		}
		partial, err := decodeFields(args[2])
		if err != nil {
			return err
		}
		r, err := a.lib.UpdateRequirement(ctx, id, partial)
		if err != nil {
			return err
		}
		return a.print(r)

	case "delete":
		id, err := idArg(args, 2, "requirements delete <id>")
		if err != nil {
			return err
		}
		r, err := a.lib.DeleteRequirement(ctx, id)
		if err != nil {
			return err
		}
		return a.print(r)

	case "clear":
		return a.lib.ClearRequirements(ctx)
	}
	return fmt.Errorf("requirements: unknown subcommand %q", args[0])
}

func (a *app) stock(ctx context.Context, args []string) error {
	const usage = "usage: stock <id> <add|subtract|set> <n> [reason]"
	if len(args) < 3 {
		return stderrors.New(usage)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return errors.NewValidationError("id", fmt.Sprintf("%q is not a number", args[0]))
	}
	n, err := strconv.Atoi(args[2])
	if err != nil {
		return errors.NewValidationError("quantity", fmt.Sprintf("%q is not a number", args[2]))
	}

	b, err := a.lib.AdjustStock(ctx, id, catalog.Adjustment{
		Kind:     catalog.AdjustmentKind(args[1]),
		Quantity: n,
		Reason:   strings.Join(args[3:], " "),
	})
	if err != nil {
		return err
	}
	return a.print(b)
}

func (a *app) print(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// idArg parses args[1] as a record id after checking that args has want elements.
func idArg(args []string, want int, usage string) (int64, error) {
	if len(args) != want {
		return 0, fmt.Errorf("usage: %s", usage)
	}
	id, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return 0, errors.NewValidationError("id", fmt.Sprintf("%q is not a number", args[1]))
	}
	return id, nil
}

// decodeStrict decodes a JSON object into v, rejecting unknown fields.
func decodeStrict(s string, v any) error {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.NewValidationError("json", err.Error())
	}
	return nil
}

func decodeFields(s string) (storagemodels.Fields, error) {
	var f storagemodels.Fields
	dec := json.NewDecoder(strings.NewReader(s))
	if err := dec.Decode(&f); err != nil {
		return nil, errors.NewValidationError("json", err.Error())
	}
	return f, nil
}
