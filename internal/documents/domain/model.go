package domain

import (
	"time"
)

// Collection names.
const (
	CollectionProjects = "projects"
	CollectionMessages = "messages"
)

// Server-assigned field names.
const (
	FieldID        = "_id"
	FieldCreatedAt = "createdAt"
)

// TimestampLayout matches JavaScript's Date.toISOString.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// SortDirection follows MongoDB's 1 / -1 convention.
type SortDirection int

const (
	Ascending  SortDirection = 1
	Descending SortDirection = -1
)

// Document is a schemaless record. Only _id and createdAt are owned by the server.
type Document map[string]any

// ID returns the stored identifier as a hex string, or "" if absent.
func (d Document) ID() string {
	switch v := d[FieldID].(type) {
	case string:
		return v
	case interface{ Hex() string }:
		return v.Hex()
	default:
		return ""
	}
}

func (d Document) CreatedAt() string {
	s, _ := d[FieldCreatedAt].(string)
	return s
}

// Stamp overwrites createdAt with t, discarding whatever the client sent.
func (d Document) Stamp(t time.Time) {
	d[FieldCreatedAt] = FormatTimestamp(t)
}

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

type InsertResult struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}
