// Package model holds the article record, the write intent used to create
// or patch one, and the Optional wrapper that keeps absent and null apart.
// It has no dependencies on storage or transport.
package model

import "fmt"

// Article is one row of the articles table.
//
// The `json:"..."` tags control the API payload; the `db:"..."` tags document
// which column each field is scanned from.
//
// WHY ARE THE TIMESTAMPS STRINGS?
// SQLite has no native timestamp type. The rows are written with
// datetime('now'), which produces TEXT like "2026-10-17 09:30:00". We keep
// that text as-is instead of parsing it into time.Time: the format sorts
// lexically, so comparing two values as strings compares them in time.
//
// ID and Created never change after insert. Updated is refreshed by every
// write, including the insert itself, so Created == Updated on a fresh row.
type Article struct {
	ID      int64  `json:"id"      db:"id"`
	Text    string `json:"text"    db:"text"`
	Title   string `json:"title"   db:"title"`
	Created string `json:"created" db:"created"`
	Updated string `json:"updated" db:"updated"`
}

// Route returns the canonical path of the article, e.g. "/articles/42".
// Routers and link generators use it; the HTTP handler sets it as the
// Location header after a create.
func (a Article) Route() string {
	return fmt.Sprintf("/articles/%d", a.ID)
}

// PartialArticle is a write intent: the fields a create or update wants to set.
//
// Each field is an Optional so we can tell three cases apart:
//
//	{}                  → Title absent: leave it unchanged
//	{"title": null}     → Title explicitly null
//	{"title": "hello"}  → Title present with a value
//
// A *string could only express two of those (nil vs non-nil), which would
// conflate "no change requested" with "set to null".
//
// `omitzero` (Go 1.24+) drops absent fields when the payload is encoded again,
// using Optional.IsZero.
type PartialArticle struct {
	Text  Optional[string] `json:"text,omitzero"`
	Title Optional[string] `json:"title,omitzero"`
}

// IsEmpty reports whether no field was supplied at all.
func (p PartialArticle) IsEmpty() bool {
	return p.Text.IsAbsent() && p.Title.IsAbsent()
}
