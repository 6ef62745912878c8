/*
Package errors provides semantic error types for bookshelf.

Update and Delete report a missing record with a NotFoundError; that is the only
domain error a collection returns once it is open. Opening a collection over
malformed persisted data fails with a CorruptStateError, which callers should
treat as fatal.

Common Errors:

	var (
	    ErrNotFound      = errors.New("record not found")
	    ErrAlreadyExists = errors.New("already exists")
	    ErrInvalidInput  = errors.New("invalid input")
	    ErrCorruptState  = errors.New("corrupt persisted state")
	)

Usage:

	book, err := books.Update(ctx, 42, storagemodels.Fields{"title": "Dune"})
	if err != nil {
	    if errors.IsNotFound(err) {
	        // report to the user, state is unchanged
	    }
	    return err
	}

All error types work with the standard errors.Is() and survive wrapping with %w.
*/
package errors
