/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package catalog is the personal library built on top of bookshelf
// collections: typed Book and Requirement views, form validation, stock
// adjustments, search filters and dashboard statistics.
//
// The collections themselves never look at domain fields. Everything that
// knows what a title or a stock level is lives here.
package catalog
