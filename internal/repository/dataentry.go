// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goccyjson "github.com/goccy/go-json"

	"github.com/centralbureau/tabulator/internal/dataentry"
)

// DataEntryRepository persists dataentry.Status rows, one per
// (polling station, committee session).
type DataEntryRepository struct {
	db *DB
}

// NewDataEntryRepository wraps db.
func NewDataEntryRepository(db *DB) *DataEntryRepository {
	return &DataEntryRepository{db: db}
}

const dataEntryColumns = "tag, first_entry_user_id, second_entry_user_id, progress, entry, client_state, finalised_first_entry, first_entry, second_entry, finalised_entry"

// Get fetches the data-entry status for a station in a session. A
// missing row is not an error: it means StateFirstEntryNotStarted, per
// dataentry.NotStarted.
func (r *DataEntryRepository) Get(ctx context.Context, pollingStationID, committeeSessionID int64) (dataentry.Status, error) {
	row := r.db.conn.QueryRowContext(ctx,
		"SELECT "+dataEntryColumns+" FROM data_entries WHERE polling_station_id = ? AND committee_session_id = ?",
		pollingStationID, committeeSessionID)

	var (
		s                                                             dataentry.Status
		firstUser, secondUser                                        sql.NullInt64
		entryJSON, clientState, finalisedFirst, first, second, finalised []byte
	)
	err := row.Scan(&s.Tag, &firstUser, &secondUser, &s.Progress, &entryJSON, &clientState, &finalisedFirst, &first, &second, &finalised)
	if errors.Is(err, sql.ErrNoRows) {
		return dataentry.NotStarted(), nil
	}
	if err != nil {
		return dataentry.Status{}, err
	}

	s.FirstEntryUserID = firstUser.Int64
	s.SecondEntryUserID = secondUser.Int64
	s.ClientState = json.RawMessage(clientState)
	if err := unmarshalResultsInto(entryJSON, &s.Entry); err != nil {
		return dataentry.Status{}, err
	}
	if err := unmarshalResultsInto(finalisedFirst, &s.FinalisedFirstEntry); err != nil {
		return dataentry.Status{}, err
	}
	if err := unmarshalResultsInto(first, &s.FirstEntry); err != nil {
		return dataentry.Status{}, err
	}
	if err := unmarshalResultsInto(second, &s.SecondEntry); err != nil {
		return dataentry.Status{}, err
	}
	if err := unmarshalResultsInto(finalised, &s.FinalisedEntry); err != nil {
		return dataentry.Status{}, err
	}
	return s, nil
}

func unmarshalResultsInto(raw []byte, dst *dataentry.Results) error {
	if len(raw) == 0 {
		return nil
	}
	return goccyjson.Unmarshal(raw, dst)
}

// Put upserts the data-entry status for a station in a session,
// deleting the row entirely when s.Tag is StateFirstEntryNotStarted
// (the represented state for "no row").
func (r *DataEntryRepository) Put(ctx context.Context, tx *sql.Tx, pollingStationID, committeeSessionID int64, s dataentry.Status) error {
	if s.Tag == dataentry.StateFirstEntryNotStarted {
		_, err := tx.ExecContext(ctx, "DELETE FROM data_entries WHERE polling_station_id = ? AND committee_session_id = ?",
			pollingStationID, committeeSessionID)
		return err
	}

	entryJSON, err := goccyjson.Marshal(s.Entry)
	if err != nil {
		return fmt.Errorf("encode entry: %w", err)
	}
	finalisedFirstJSON, err := goccyjson.Marshal(s.FinalisedFirstEntry)
	if err != nil {
		return fmt.Errorf("encode finalised_first_entry: %w", err)
	}
	firstJSON, err := goccyjson.Marshal(s.FirstEntry)
	if err != nil {
		return fmt.Errorf("encode first_entry: %w", err)
	}
	secondJSON, err := goccyjson.Marshal(s.SecondEntry)
	if err != nil {
		return fmt.Errorf("encode second_entry: %w", err)
	}
	finalisedJSON, err := goccyjson.Marshal(s.FinalisedEntry)
	if err != nil {
		return fmt.Errorf("encode finalised_entry: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO data_entries (polling_station_id, committee_session_id, tag, first_entry_user_id, second_entry_user_id,
			progress, entry, client_state, finalised_first_entry, first_entry, second_entry, finalised_entry, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (polling_station_id, committee_session_id) DO UPDATE SET
			tag = excluded.tag, first_entry_user_id = excluded.first_entry_user_id,
			second_entry_user_id = excluded.second_entry_user_id, progress = excluded.progress,
			entry = excluded.entry, client_state = excluded.client_state,
			finalised_first_entry = excluded.finalised_first_entry, first_entry = excluded.first_entry,
			second_entry = excluded.second_entry, finalised_entry = excluded.finalised_entry,
			updated_at = excluded.updated_at`,
		pollingStationID, committeeSessionID, s.Tag, nullableUserID(s.FirstEntryUserID), nullableUserID(s.SecondEntryUserID),
		s.Progress, string(entryJSON), nullableRawMessage(s.ClientState), string(finalisedFirstJSON),
		string(firstJSON), string(secondJSON), string(finalisedJSON), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("upsert data entry: %w", err)
	}
	return nil
}

// ListBySession returns every data-entry status recorded for a
// committee session, keyed by polling station ID.
func (r *DataEntryRepository) ListBySession(ctx context.Context, committeeSessionID int64) (map[int64]dataentry.Status, error) {
	rows, err := r.db.conn.QueryContext(ctx,
		"SELECT polling_station_id, "+dataEntryColumns+" FROM data_entries WHERE committee_session_id = ?", committeeSessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64]dataentry.Status)
	for rows.Next() {
		var (
			stationID                                                    int64
			s                                                             dataentry.Status
			firstUser, secondUser                                        sql.NullInt64
			entryJSON, clientState, finalisedFirst, first, second, finalised []byte
		)
		if err := rows.Scan(&stationID, &s.Tag, &firstUser, &secondUser, &s.Progress, &entryJSON, &clientState,
			&finalisedFirst, &first, &second, &finalised); err != nil {
			return nil, err
		}
		s.FirstEntryUserID = firstUser.Int64
		s.SecondEntryUserID = secondUser.Int64
		s.ClientState = json.RawMessage(clientState)
		if err := unmarshalResultsInto(entryJSON, &s.Entry); err != nil {
			return nil, err
		}
		if err := unmarshalResultsInto(finalisedFirst, &s.FinalisedFirstEntry); err != nil {
			return nil, err
		}
		if err := unmarshalResultsInto(first, &s.FirstEntry); err != nil {
			return nil, err
		}
		if err := unmarshalResultsInto(second, &s.SecondEntry); err != nil {
			return nil, err
		}
		if err := unmarshalResultsInto(finalised, &s.FinalisedEntry); err != nil {
			return nil, err
		}
		out[stationID] = s
	}
	return out, rows.Err()
}

func nullableUserID(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}

func nullableRawMessage(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}
