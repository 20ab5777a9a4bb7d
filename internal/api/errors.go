// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

package api

import (
	"errors"
	"net/http"

	"github.com/centralbureau/tabulator/internal/auth"
	"github.com/centralbureau/tabulator/internal/committeesession"
	"github.com/centralbureau/tabulator/internal/dataentry"
	"github.com/centralbureau/tabulator/internal/investigation"
	"github.com/centralbureau/tabulator/internal/repository"
	"github.com/centralbureau/tabulator/internal/user"
)

// writeDomainError maps a domain-layer error to its HTTP status and
// {error, fatal, reference} body. It handles every sentinel the
// state machine, the committee-session gate, the investigation
// package, the auth service, and the repository layer can return;
// anything else is a 500.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeNotFound(w)

	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrAccountLocked):
		writeRejection(w, http.StatusUnauthorized, false, "invalid username or password", refInvalidUsernameOrPassword)
	case errors.Is(err, auth.ErrSessionNotFound):
		writeRejection(w, http.StatusUnauthorized, false, "session not found", refSessionKeyNotFound)
	case errors.Is(err, auth.ErrAlreadyInitialised):
		writeRejection(w, http.StatusConflict, false, "the system is already initialised", refAlreadyInitialised)
	case errors.Is(err, auth.ErrWrongCurrentPassword):
		writeRejection(w, http.StatusUnprocessableEntity, false, "current password is incorrect", refPasswordRejected)
	case errors.Is(err, auth.ErrPasswordPolicy),
		errors.Is(err, user.ErrPasswordTooShort),
		errors.Is(err, user.ErrPasswordEqualsUsername),
		errors.Is(err, user.ErrPasswordContainsUsername),
		errors.Is(err, user.ErrPasswordEqualsPrevious):
		writeRejection(w, http.StatusUnprocessableEntity, false, "password does not meet policy", refPasswordRejected)

	case errors.Is(err, repository.ErrUsernameTaken):
		writeRejection(w, http.StatusConflict, false, "username is already taken", refUsernameTaken)

	case errors.Is(err, dataentry.ErrInvalid):
		writeRejection(w, http.StatusConflict, false, "action is not valid from the current state", refInvalid)
	case errors.Is(err, dataentry.ErrFirstEntryAlreadyFinalised):
		writeRejection(w, http.StatusConflict, false, "first entry is already finalised", refFirstEntryAlreadyFinalised)
	case errors.Is(err, dataentry.ErrSecondEntryAlreadyFinalised):
		writeRejection(w, http.StatusConflict, false, "entry is already definitive", refSecondEntryAlreadyFinalised)
	case errors.Is(err, dataentry.ErrSecondEntryAlreadyClaimed):
		writeRejection(w, http.StatusConflict, false, "second entry is already claimed", refSecondEntryAlreadyClaimed)
	case errors.Is(err, dataentry.ErrSecondEntryNeedsDifferentUser):
		writeRejection(w, http.StatusConflict, false, "second entry must be made by a different user", refSecondEntryNeedsDifferentUser)
	case errors.Is(err, dataentry.ErrCannotTransitionUsingDifferentUser):
		writeRejection(w, http.StatusConflict, false, "entry is claimed by a different user", refCannotTransitionUsingDifferentUser)

	case errors.Is(err, committeesession.ErrCommitteeSessionPaused):
		writeRejection(w, http.StatusConflict, false, "committee session is paused", refCommitteeSessionPaused)
	case errors.Is(err, committeesession.ErrInvalidCommitteeSessionStatus):
		writeRejection(w, http.StatusConflict, false, "committee session is not accepting data entry", refInvalidCommitteeSessionStatus)
	case errors.Is(err, committeesession.ErrInvalidStatusTransition):
		writeRejection(w, http.StatusConflict, false, "invalid committee session status transition", refInvalidStatusTransition)
	case errors.Is(err, committeesession.ErrInvalidDetails):
		writeRejection(w, http.StatusUnprocessableEntity, false, "committee session details are incomplete", refInvalidDetails)

	case errors.Is(err, investigation.ErrRequiresDataEntryDeletionConsent):
		writeRejection(w, http.StatusConflict, false, "deleting the existing data entry requires explicit consent", refInvestigationRequiresConsent)
	case errors.Is(err, investigation.ErrNewStationMustCorrectResults):
		writeRejection(w, http.StatusUnprocessableEntity, false, "a newly added station must have corrected_results = true", refInvestigationNewStationMustCorrect)

	default:
		writeInternal(w, err)
	}
}
