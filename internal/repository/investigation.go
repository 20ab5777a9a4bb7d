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

	"github.com/centralbureau/tabulator/internal/investigation"
)

// InvestigationRepository persists investigation.Investigation rows,
// one per (polling station, committee session).
type InvestigationRepository struct {
	db *DB
}

// NewInvestigationRepository wraps db.
func NewInvestigationRepository(db *DB) *InvestigationRepository {
	return &InvestigationRepository{db: db}
}

// Get fetches the investigation for a station in a session.
func (r *InvestigationRepository) Get(ctx context.Context, pollingStationID, committeeSessionID int64) (investigation.Investigation, error) {
	var (
		inv              investigation.Investigation
		findings         sql.NullString
		correctedResults sql.NullBool
	)
	row := r.db.conn.QueryRowContext(ctx,
		"SELECT polling_station_id, reason, findings, corrected_results, concluded FROM investigations WHERE polling_station_id = ? AND committee_session_id = ?",
		pollingStationID, committeeSessionID)
	if err := row.Scan(&inv.PollingStationID, &inv.Reason, &findings, &correctedResults, &inv.Concluded); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return investigation.Investigation{}, ErrNotFound
		}
		return investigation.Investigation{}, err
	}
	if findings.Valid {
		inv.Findings = &findings.String
	}
	if correctedResults.Valid {
		inv.CorrectedResults = &correctedResults.Bool
	}
	return inv, nil
}

// ListBySession returns every investigation recorded for a committee
// session.
func (r *InvestigationRepository) ListBySession(ctx context.Context, committeeSessionID int64) ([]investigation.Investigation, error) {
	rows, err := r.db.conn.QueryContext(ctx,
		"SELECT polling_station_id, reason, findings, corrected_results, concluded FROM investigations WHERE committee_session_id = ?",
		committeeSessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []investigation.Investigation
	for rows.Next() {
		var (
			inv              investigation.Investigation
			findings         sql.NullString
			correctedResults sql.NullBool
		)
		if err := rows.Scan(&inv.PollingStationID, &inv.Reason, &findings, &correctedResults, &inv.Concluded); err != nil {
			return nil, err
		}
		if findings.Valid {
			inv.Findings = &findings.String
		}
		if correctedResults.Valid {
			inv.CorrectedResults = &correctedResults.Bool
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

// Put upserts the investigation for a station in a session.
func (r *InvestigationRepository) Put(ctx context.Context, tx *sql.Tx, committeeSessionID int64, inv investigation.Investigation) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO investigations (polling_station_id, committee_session_id, reason, findings, corrected_results, concluded)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (polling_station_id, committee_session_id) DO UPDATE SET
			reason = excluded.reason, findings = excluded.findings,
			corrected_results = excluded.corrected_results, concluded = excluded.concluded`,
		inv.PollingStationID, committeeSessionID, inv.Reason, inv.Findings, inv.CorrectedResults, inv.Concluded)
	if err != nil {
		return fmt.Errorf("upsert investigation: %w", err)
	}
	return nil
}

// Delete removes the investigation for a station in a session, used
// when the last investigation in a session is deleted and the session
// reverts to Created (see committeesession.Status.RevertToCreated).
func (r *InvestigationRepository) Delete(ctx context.Context, tx *sql.Tx, pollingStationID, committeeSessionID int64) error {
	res, err := tx.ExecContext(ctx, "DELETE FROM investigations WHERE polling_station_id = ? AND committee_session_id = ?",
		pollingStationID, committeeSessionID)
	if err != nil {
		return fmt.Errorf("delete investigation: %w", err)
	}
	return requireRowsAffected(res)
}
