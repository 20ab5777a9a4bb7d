// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/centralbureau/tabulator/internal/committeesession"
)

// CommitteeSessionRepository persists committeesession.Session rows.
type CommitteeSessionRepository struct {
	db *DB
}

// NewCommitteeSessionRepository wraps db.
func NewCommitteeSessionRepository(db *DB) *CommitteeSessionRepository {
	return &CommitteeSessionRepository{db: db}
}

const committeeSessionColumns = "id, election_id, number, location, scheduled_start, status, results_xml_blob_id, results_pdf_blob_id, overview_pdf_blob_id"

func scanCommitteeSession(row interface{ Scan(...any) error }) (committeesession.Session, error) {
	var s committeesession.Session
	var scheduledStart sql.NullTime
	var resultsXML, resultsPDF, overviewPDF sql.NullInt64
	if err := row.Scan(
		&s.ID, &s.ElectionID, &s.Number, &s.Location, &scheduledStart, &s.Status,
		&resultsXML, &resultsPDF, &overviewPDF,
	); err != nil {
		return committeesession.Session{}, err
	}
	if scheduledStart.Valid {
		s.ScheduledStart = &scheduledStart.Time
	}
	if resultsXML.Valid {
		s.ResultsXMLBlobID = &resultsXML.Int64
	}
	if resultsPDF.Valid {
		s.ResultsPDFBlobID = &resultsPDF.Int64
	}
	if overviewPDF.Valid {
		s.OverviewPDFBlobID = &overviewPDF.Int64
	}
	return s, nil
}

// Get fetches one committee session by ID.
func (r *CommitteeSessionRepository) Get(ctx context.Context, id int64) (committeesession.Session, error) {
	row := r.db.conn.QueryRowContext(ctx, "SELECT "+committeeSessionColumns+" FROM committee_sessions WHERE id = ?", id)
	s, err := scanCommitteeSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return committeesession.Session{}, ErrNotFound
	}
	return s, err
}

// ListByElection returns every session for an election, ordered by number.
func (r *CommitteeSessionRepository) ListByElection(ctx context.Context, electionID int64) ([]committeesession.Session, error) {
	rows, err := r.db.conn.QueryContext(ctx,
		"SELECT "+committeeSessionColumns+" FROM committee_sessions WHERE election_id = ? ORDER BY number", electionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []committeesession.Session
	for rows.Next() {
		s, err := scanCommitteeSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Create inserts s and returns it with ID populated.
func (r *CommitteeSessionRepository) Create(ctx context.Context, tx *sql.Tx, s committeesession.Session) (committeesession.Session, error) {
	row := tx.QueryRowContext(ctx, `
		INSERT INTO committee_sessions (election_id, number, location, scheduled_start, status, results_xml_blob_id, results_pdf_blob_id, overview_pdf_blob_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`,
		s.ElectionID, s.Number, s.Location, nullableTime(s.ScheduledStart), s.Status,
		nullableInt64(s.ResultsXMLBlobID), nullableInt64(s.ResultsPDFBlobID), nullableInt64(s.OverviewPDFBlobID))
	if err := row.Scan(&s.ID); err != nil {
		return committeesession.Session{}, fmt.Errorf("insert committee session: %w", err)
	}
	return s, nil
}

// Update overwrites every column of an existing committee session,
// typically following a Status transition computed by the caller.
func (r *CommitteeSessionRepository) Update(ctx context.Context, tx *sql.Tx, s committeesession.Session) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE committee_sessions SET location = ?, scheduled_start = ?, status = ?,
			results_xml_blob_id = ?, results_pdf_blob_id = ?, overview_pdf_blob_id = ?
		WHERE id = ?`,
		s.Location, nullableTime(s.ScheduledStart), s.Status,
		nullableInt64(s.ResultsXMLBlobID), nullableInt64(s.ResultsPDFBlobID), nullableInt64(s.OverviewPDFBlobID), s.ID)
	if err != nil {
		return fmt.Errorf("update committee session: %w", err)
	}
	return requireRowsAffected(res)
}

// Delete removes a committee session by ID.
func (r *CommitteeSessionRepository) Delete(ctx context.Context, tx *sql.Tx, id int64) error {
	res, err := tx.ExecContext(ctx, "DELETE FROM committee_sessions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete committee session: %w", err)
	}
	return requireRowsAffected(res)
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
