// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

//go:build integration

package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/centralbureau/tabulator/internal/committeesession"
	"github.com/centralbureau/tabulator/internal/config"
	"github.com/centralbureau/tabulator/internal/dataentry"
	"github.com/centralbureau/tabulator/internal/election"
	"github.com/centralbureau/tabulator/internal/investigation"
	"github.com/centralbureau/tabulator/internal/pollingstation"
	"github.com/centralbureau/tabulator/internal/user"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(&config.DatabaseConfig{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestElectionRepositoryCreateGetUpdateDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewElectionRepository(db)
	ctx := context.Background()

	el := election.Election{
		Name: "Gemeenteraad Voorbeeld", Category: election.CategoryMunicipal,
		CountingMethod: election.CountingMethodCentral, ElectionDate: time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC),
		NumberOfSeats: 9, NumberOfVoters: 1000,
		PoliticalGroups: []election.PoliticalGroup{{Number: 1, Name: "Lijst Een", Candidates: []election.Candidate{{Number: 1}}}},
	}

	var created election.Election
	require.NoError(t, db.WithTx(ctx, func(tx *sql.Tx) error {
		var err error
		created, err = repo.Create(ctx, tx, el)
		return err
	}))
	require.NotZero(t, created.ID)

	fetched, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Gemeenteraad Voorbeeld", fetched.Name)
	require.Len(t, fetched.PoliticalGroups, 1)
	require.Equal(t, "Lijst Een", fetched.PoliticalGroups[0].Name)

	fetched.Name = "Gemeenteraad Bijgewerkt"
	require.NoError(t, db.WithTx(ctx, func(tx *sql.Tx) error {
		return repo.Update(ctx, tx, fetched)
	}))
	reFetched, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Gemeenteraad Bijgewerkt", reFetched.Name)

	require.NoError(t, db.WithTx(ctx, func(tx *sql.Tx) error {
		return repo.Delete(ctx, tx, created.ID)
	}))
	_, err = repo.Get(ctx, created.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPollingStationAndCommitteeSessionRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	electionRepo := NewElectionRepository(db)
	sessionRepo := NewCommitteeSessionRepository(db)
	stationRepo := NewPollingStationRepository(db)

	var el election.Election
	require.NoError(t, db.WithTx(ctx, func(tx *sql.Tx) error {
		var err error
		el, err = electionRepo.Create(ctx, tx, election.Election{
			Name: "E", Category: election.CategoryMunicipal, CountingMethod: election.CountingMethodCentral,
			ElectionDate: time.Now(), NumberOfSeats: 9, NumberOfVoters: 100,
		})
		return err
	}))

	var session committeesession.Session
	require.NoError(t, db.WithTx(ctx, func(tx *sql.Tx) error {
		var err error
		session, err = sessionRepo.Create(ctx, tx, committeesession.Session{
			ElectionID: el.ID, Number: 1, Location: "Town Hall", Status: committeesession.StatusCreated,
		})
		return err
	}))
	require.NotZero(t, session.ID)

	var station pollingstation.PollingStation
	require.NoError(t, db.WithTx(ctx, func(tx *sql.Tx) error {
		var err error
		station, err = stationRepo.Create(ctx, tx, pollingstation.PollingStation{
			ElectionID: el.ID, CommitteeSessionID: session.ID, Number: 1,
			Street: "Main St", HouseNumber: "1", PostalCode: "1234AB", Locality: "Town", Type: pollingstation.TypeFixedLocation,
		})
		return err
	}))
	require.NotZero(t, station.ID)

	stations, err := stationRepo.ListBySession(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, stations, 1)
}

func TestDataEntryRepositoryPutGetRoundTripsTaggedUnion(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewDataEntryRepository(db)

	notStarted, err := repo.Get(ctx, 1, 1)
	require.NoError(t, err)
	require.Equal(t, dataentry.StateFirstEntryNotStarted, notStarted.Tag)

	claimed, err := notStarted.ClaimFirst(42, dataentry.EmptyResults(dataentry.ModelCSOFirstSession, nil))
	require.NoError(t, err)
	require.NoError(t, db.WithTx(ctx, func(tx *sql.Tx) error {
		return repo.Put(ctx, tx, 1, 1, claimed)
	}))

	fetched, err := repo.Get(ctx, 1, 1)
	require.NoError(t, err)
	require.Equal(t, dataentry.StateFirstEntryInProgress, fetched.Tag)
	require.Equal(t, int64(42), fetched.FirstEntryUserID)

	deleted, err := fetched.DeleteFirst(42)
	require.NoError(t, err)
	require.NoError(t, db.WithTx(ctx, func(tx *sql.Tx) error {
		return repo.Put(ctx, tx, 1, 1, deleted)
	}))
	afterDelete, err := repo.Get(ctx, 1, 1)
	require.NoError(t, err)
	require.Equal(t, dataentry.StateFirstEntryNotStarted, afterDelete.Tag)
}

func TestInvestigationRepositoryPutGetDelete(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	electionRepo := NewElectionRepository(db)
	sessionRepo := NewCommitteeSessionRepository(db)
	stationRepo := NewPollingStationRepository(db)
	invRepo := NewInvestigationRepository(db)

	var el election.Election
	require.NoError(t, db.WithTx(ctx, func(tx *sql.Tx) error {
		var err error
		el, err = electionRepo.Create(ctx, tx, election.Election{Name: "E", ElectionDate: time.Now()})
		return err
	}))
	var session committeesession.Session
	require.NoError(t, db.WithTx(ctx, func(tx *sql.Tx) error {
		var err error
		session, err = sessionRepo.Create(ctx, tx, committeesession.Session{ElectionID: el.ID, Number: 2, Status: committeesession.StatusCreated})
		return err
	}))
	var station pollingstation.PollingStation
	require.NoError(t, db.WithTx(ctx, func(tx *sql.Tx) error {
		var err error
		station, err = stationRepo.Create(ctx, tx, pollingstation.PollingStation{ElectionID: el.ID, CommitteeSessionID: session.ID, Number: 1})
		return err
	}))

	correctedResults := true
	inv, err := investigation.New(station.ID, "discrepancy", &correctedResults, false)
	require.NoError(t, err)
	require.NoError(t, db.WithTx(ctx, func(tx *sql.Tx) error {
		return invRepo.Put(ctx, tx, session.ID, inv)
	}))

	fetched, err := invRepo.Get(ctx, station.ID, session.ID)
	require.NoError(t, err)
	require.Equal(t, "discrepancy", fetched.Reason)
	require.NotNil(t, fetched.CorrectedResults)
	require.True(t, *fetched.CorrectedResults)

	require.NoError(t, db.WithTx(ctx, func(tx *sql.Tx) error {
		return invRepo.Delete(ctx, tx, station.ID, session.ID)
	}))
	_, err = invRepo.Get(ctx, station.ID, session.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepositoryCreateGetUpdatePasswordLockoutDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	fullName := "Coordinator One"
	var created user.User
	require.NoError(t, db.WithTx(ctx, func(tx *sql.Tx) error {
		var err error
		created, err = repo.Create(ctx, tx, user.User{
			Username: "CoordOne", FullName: &fullName, Role: user.RoleCoordinator,
			PasswordHash: "$argon2id$placeholder", NeedsPasswordChange: true,
		})
		return err
	}))
	require.NotZero(t, created.ID)

	require.NoError(t, db.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := repo.Create(ctx, tx, user.User{Username: "coordone", Role: user.RoleTypist, PasswordHash: "x"})
		require.ErrorIs(t, err, ErrUsernameTaken)
		return nil
	}))

	byUsername, err := repo.GetByUsername(ctx, "coordone")
	require.NoError(t, err)
	require.Equal(t, created.ID, byUsername.ID)
	require.True(t, byUsername.NeedsPasswordChange)

	require.NoError(t, db.WithTx(ctx, func(tx *sql.Tx) error {
		return repo.UpdatePassword(ctx, tx, created.ID, "$argon2id$new", false)
	}))
	afterChange, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	require.False(t, afterChange.NeedsPasswordChange)
	require.Equal(t, "$argon2id$new", afterChange.PasswordHash)

	lockUntil := time.Now().Add(15 * time.Minute).UTC()
	require.NoError(t, db.WithTx(ctx, func(tx *sql.Tx) error {
		return repo.RecordFailedAttempt(ctx, tx, created.ID, 5, &lockUntil)
	}))
	attempts, lockedUntil, err := repo.LockState(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, 5, attempts)
	require.NotNil(t, lockedUntil)

	require.NoError(t, db.WithTx(ctx, func(tx *sql.Tx) error {
		return repo.ClearLockState(ctx, tx, created.ID)
	}))
	attempts, lockedUntil, err = repo.LockState(ctx, created.ID)
	require.NoError(t, err)
	require.Zero(t, attempts)
	require.Nil(t, lockedUntil)

	require.NoError(t, db.WithTx(ctx, func(tx *sql.Tx) error {
		return repo.Delete(ctx, tx, created.ID)
	}))
	_, err = repo.Get(ctx, created.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSessionRepositoryCreateExtendDeleteExpired(t *testing.T) {
	db := setupTestDB(t)
	userRepo := NewUserRepository(db)
	sessionRepo := NewSessionRepository(db)
	ctx := context.Background()

	var u user.User
	require.NoError(t, db.WithTx(ctx, func(tx *sql.Tx) error {
		var err error
		u, err = userRepo.Create(ctx, tx, user.User{Username: "typist1", Role: user.RoleTypist, PasswordHash: "x"})
		return err
	}))

	sess := Session{
		ID: "sess-1", UserID: u.ID, UserAgent: "test-agent", SourceAddress: "127.0.0.1",
		ExpiresAt: time.Now().Add(30 * time.Minute).UTC(),
	}
	require.NoError(t, db.WithTx(ctx, func(tx *sql.Tx) error {
		return sessionRepo.Create(ctx, tx, sess)
	}))

	fetched, err := sessionRepo.Get(ctx, "sess-1")
	require.NoError(t, err)
	require.Equal(t, u.ID, fetched.UserID)
	require.Equal(t, "test-agent", fetched.UserAgent)

	newExpiry := time.Now().Add(45 * time.Minute).UTC()
	require.NoError(t, db.WithTx(ctx, func(tx *sql.Tx) error {
		return sessionRepo.Extend(ctx, tx, "sess-1", newExpiry)
	}))

	expiredSess := Session{
		ID: "sess-expired", UserID: u.ID, UserAgent: "a", SourceAddress: "127.0.0.1",
		ExpiresAt: time.Now().Add(-time.Minute).UTC(),
	}
	require.NoError(t, db.WithTx(ctx, func(tx *sql.Tx) error {
		return sessionRepo.Create(ctx, tx, expiredSess)
	}))
	var swept int64
	require.NoError(t, db.WithTx(ctx, func(tx *sql.Tx) error {
		var err error
		swept, err = sessionRepo.DeleteExpired(ctx, tx)
		return err
	}))
	require.Equal(t, int64(1), swept)

	require.NoError(t, db.WithTx(ctx, func(tx *sql.Tx) error {
		return sessionRepo.Delete(ctx, tx, "sess-1")
	}))
	_, err = sessionRepo.Get(ctx, "sess-1")
	require.ErrorIs(t, err, ErrNotFound)
}
