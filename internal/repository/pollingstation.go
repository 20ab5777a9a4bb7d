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

	"github.com/centralbureau/tabulator/internal/pollingstation"
)

// PollingStationRepository persists pollingstation.PollingStation rows.
type PollingStationRepository struct {
	db *DB
}

// NewPollingStationRepository wraps db.
func NewPollingStationRepository(db *DB) *PollingStationRepository {
	return &PollingStationRepository{db: db}
}

const pollingStationColumns = "id, election_id, committee_session_id, id_prev_session, number, street, house_number, house_number_addition, postal_code, locality, number_of_voters, type"

func scanPollingStation(row interface{ Scan(...any) error }) (pollingstation.PollingStation, error) {
	var p pollingstation.PollingStation
	var idPrev, numberOfVoters sql.NullInt64
	var houseNumberAddition sql.NullString
	if err := row.Scan(
		&p.ID, &p.ElectionID, &p.CommitteeSessionID, &idPrev, &p.Number,
		&p.Street, &p.HouseNumber, &houseNumberAddition, &p.PostalCode, &p.Locality,
		&numberOfVoters, &p.Type,
	); err != nil {
		return pollingstation.PollingStation{}, err
	}
	if idPrev.Valid {
		p.IDPrevSession = &idPrev.Int64
	}
	if numberOfVoters.Valid {
		n := int(numberOfVoters.Int64)
		p.NumberOfVoters = &n
	}
	p.HouseNumberAddition = houseNumberAddition.String
	return p, nil
}

// Get fetches one polling station by ID.
func (r *PollingStationRepository) Get(ctx context.Context, id int64) (pollingstation.PollingStation, error) {
	row := r.db.conn.QueryRowContext(ctx, "SELECT "+pollingStationColumns+" FROM polling_stations WHERE id = ?", id)
	p, err := scanPollingStation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return pollingstation.PollingStation{}, ErrNotFound
	}
	return p, err
}

// ListBySession returns every polling station scoped to a committee session.
func (r *PollingStationRepository) ListBySession(ctx context.Context, committeeSessionID int64) ([]pollingstation.PollingStation, error) {
	rows, err := r.db.conn.QueryContext(ctx,
		"SELECT "+pollingStationColumns+" FROM polling_stations WHERE committee_session_id = ? ORDER BY number", committeeSessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []pollingstation.PollingStation
	for rows.Next() {
		p, err := scanPollingStation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Create inserts p and returns it with ID populated.
func (r *PollingStationRepository) Create(ctx context.Context, tx *sql.Tx, p pollingstation.PollingStation) (pollingstation.PollingStation, error) {
	row := tx.QueryRowContext(ctx, `
		INSERT INTO polling_stations (election_id, committee_session_id, id_prev_session, number, street, house_number, house_number_addition, postal_code, locality, number_of_voters, type)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`,
		p.ElectionID, p.CommitteeSessionID, nullableInt64(p.IDPrevSession), p.Number,
		p.Street, p.HouseNumber, p.HouseNumberAddition, p.PostalCode, p.Locality,
		nullableInt(p.NumberOfVoters), p.Type)
	if err := row.Scan(&p.ID); err != nil {
		return pollingstation.PollingStation{}, fmt.Errorf("insert polling station: %w", err)
	}
	return p, nil
}

// Update overwrites every column of an existing polling station.
func (r *PollingStationRepository) Update(ctx context.Context, tx *sql.Tx, p pollingstation.PollingStation) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE polling_stations SET number = ?, street = ?, house_number = ?, house_number_addition = ?,
			postal_code = ?, locality = ?, number_of_voters = ?, type = ?
		WHERE id = ?`,
		p.Number, p.Street, p.HouseNumber, p.HouseNumberAddition, p.PostalCode, p.Locality,
		nullableInt(p.NumberOfVoters), p.Type, p.ID)
	if err != nil {
		return fmt.Errorf("update polling station: %w", err)
	}
	return requireRowsAffected(res)
}

// Delete removes a polling station by ID.
func (r *PollingStationRepository) Delete(ctx context.Context, tx *sql.Tx, id int64) error {
	res, err := tx.ExecContext(ctx, "DELETE FROM polling_stations WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete polling station: %w", err)
	}
	return requireRowsAffected(res)
}

func nullableInt64(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}

func nullableInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}
