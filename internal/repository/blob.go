// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

package repository

import (
	"context"
	"database/sql"
	"errors"
)

// Blob is an opaque generated artifact (EML-NL XML, a rendered PDF, a
// delivery zip) stored alongside the content hash it was produced with.
type Blob struct {
	ID          int64
	Content     []byte
	ContentType string
	SHA256      string
}

// BlobRepository persists generated artifact blobs, referenced by
// committee_sessions.results_xml_blob_id / results_pdf_blob_id /
// overview_pdf_blob_id.
type BlobRepository struct {
	db *DB
}

// NewBlobRepository wraps db.
func NewBlobRepository(db *DB) *BlobRepository {
	return &BlobRepository{db: db}
}

// Create inserts a new blob and returns its assigned ID.
func (r *BlobRepository) Create(ctx context.Context, tx *sql.Tx, content []byte, contentType, sha256Hex string) (int64, error) {
	row := tx.QueryRowContext(ctx,
		"INSERT INTO blobs (content, content_type, sha256) VALUES (?, ?, ?) RETURNING id",
		content, contentType, sha256Hex)
	var id int64
	if err := row.Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// Get fetches a blob by ID.
func (r *BlobRepository) Get(ctx context.Context, id int64) (Blob, error) {
	row := r.db.conn.QueryRowContext(ctx, "SELECT id, content, content_type, sha256 FROM blobs WHERE id = ?", id)
	var b Blob
	err := row.Scan(&b.ID, &b.Content, &b.ContentType, &b.SHA256)
	if errors.Is(err, sql.ErrNoRows) {
		return Blob{}, ErrNotFound
	}
	if err != nil {
		return Blob{}, err
	}
	return b, nil
}
