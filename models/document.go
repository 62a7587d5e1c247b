package models

import "time"

// Document is a stored entity: a store-assigned identifier plus its fields.
type Document struct {
	ID     string                 `json:"id"`
	Fields map[string]interface{} `json:"fields"`
}

// Snapshot is the full materialization of a collection at ReadAt.
type Snapshot struct {
	Collection string     `json:"collection"`
	Documents  []Document `json:"documents"`
	ReadAt     time.Time  `json:"readAt"`
}
