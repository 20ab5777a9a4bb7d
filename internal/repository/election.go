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

	"github.com/goccy/go-json"

	"github.com/centralbureau/tabulator/internal/election"
)

// ErrNotFound is returned by any repository Get when the requested row
// does not exist.
var ErrNotFound = errors.New("repository: not found")

// ElectionRepository persists election.Election rows.
type ElectionRepository struct {
	db *DB
}

// NewElectionRepository wraps db.
func NewElectionRepository(db *DB) *ElectionRepository {
	return &ElectionRepository{db: db}
}

func scanElection(row interface{ Scan(...any) error }) (election.Election, error) {
	var (
		el              election.Election
		nominationDate  sql.NullTime
		groupsJSON      []byte
	)
	if err := row.Scan(
		&el.ID, &el.Name, &el.Category, &el.CountingMethod, &el.ElectionDate,
		&nominationDate, &el.NumberOfSeats, &el.NumberOfVoters, &groupsJSON,
	); err != nil {
		return election.Election{}, err
	}
	if nominationDate.Valid {
		el.NominationDate = nominationDate.Time
	}
	if len(groupsJSON) > 0 {
		if err := json.Unmarshal(groupsJSON, &el.PoliticalGroups); err != nil {
			return election.Election{}, fmt.Errorf("decode political_groups: %w", err)
		}
	}
	return el, nil
}

const electionColumns = "id, name, category, counting_method, election_date, nomination_date, number_of_seats, number_of_voters, political_groups"

// Get fetches one election by ID.
func (r *ElectionRepository) Get(ctx context.Context, id int64) (election.Election, error) {
	row := r.db.conn.QueryRowContext(ctx, "SELECT "+electionColumns+" FROM elections WHERE id = ?", id)
	el, err := scanElection(row)
	if errors.Is(err, sql.ErrNoRows) {
		return election.Election{}, ErrNotFound
	}
	return el, err
}

// List returns every election, ordered by election date descending.
func (r *ElectionRepository) List(ctx context.Context) ([]election.Election, error) {
	rows, err := r.db.conn.QueryContext(ctx, "SELECT "+electionColumns+" FROM elections ORDER BY election_date DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []election.Election
	for rows.Next() {
		el, err := scanElection(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, el)
	}
	return out, rows.Err()
}

// Create inserts el and returns it with ID populated.
func (r *ElectionRepository) Create(ctx context.Context, tx *sql.Tx, el election.Election) (election.Election, error) {
	groupsJSON, err := json.Marshal(el.PoliticalGroups)
	if err != nil {
		return election.Election{}, fmt.Errorf("encode political_groups: %w", err)
	}

	var nominationDate any
	if !el.NominationDate.IsZero() {
		nominationDate = el.NominationDate
	}

	row := tx.QueryRowContext(ctx, `
		INSERT INTO elections (name, category, counting_method, election_date, nomination_date, number_of_seats, number_of_voters, political_groups)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`,
		el.Name, el.Category, el.CountingMethod, el.ElectionDate, nominationDate,
		el.NumberOfSeats, el.NumberOfVoters, string(groupsJSON))
	if err := row.Scan(&el.ID); err != nil {
		return election.Election{}, fmt.Errorf("insert election: %w", err)
	}
	return el, nil
}

// Update overwrites every column of an existing election.
func (r *ElectionRepository) Update(ctx context.Context, tx *sql.Tx, el election.Election) error {
	groupsJSON, err := json.Marshal(el.PoliticalGroups)
	if err != nil {
		return fmt.Errorf("encode political_groups: %w", err)
	}
	var nominationDate any
	if !el.NominationDate.IsZero() {
		nominationDate = el.NominationDate
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE elections SET name = ?, category = ?, counting_method = ?, election_date = ?,
			nomination_date = ?, number_of_seats = ?, number_of_voters = ?, political_groups = ?
		WHERE id = ?`,
		el.Name, el.Category, el.CountingMethod, el.ElectionDate, nominationDate,
		el.NumberOfSeats, el.NumberOfVoters, string(groupsJSON), el.ID)
	if err != nil {
		return fmt.Errorf("update election: %w", err)
	}
	return requireRowsAffected(res)
}

// Delete removes an election by ID.
func (r *ElectionRepository) Delete(ctx context.Context, tx *sql.Tx, id int64) error {
	res, err := tx.ExecContext(ctx, "DELETE FROM elections WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete election: %w", err)
	}
	return requireRowsAffected(res)
}

func requireRowsAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
