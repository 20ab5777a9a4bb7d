// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

package api

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/centralbureau/tabulator/internal/logging"
)

// rejection is the error body shape used by every handler in this
// package, matching internal/airgap's gate rejections so a client sees
// one error shape regardless of which layer rejected the request.
type rejection struct {
	Error     string `json:"error"`
	Fatal     bool   `json:"fatal"`
	Reference string `json:"reference"`
}

// Machine-readable rejection references. Grouped by the error class
// that names them.
const (
	refUnauthenticated                    = "Unauthenticated"
	refForbidden                          = "Forbidden"
	refUsernameTaken                      = "UsernameTaken"
	refOwnAccountCannotBeDeleted          = "OwnAccountCannotBeDeleted"
	refSessionKeyNotFound                 = "SessionKeyNotFound"
	refInvalidUsernameOrPassword          = "InvalidUsernameOrPassword"
	refNotInitialised                     = "NotInitialised"
	refAlreadyInitialised                 = "AlreadyInitialised"
	refPasswordRejected                   = "PasswordRejected"
	refNotFound                           = "NotFound"
	refInvalid                            = "Invalid"
	refFirstEntryAlreadyFinalised         = "FirstEntryAlreadyFinalised"
	refSecondEntryAlreadyFinalised        = "SecondEntryAlreadyFinalised"
	refSecondEntryAlreadyClaimed          = "SecondEntryAlreadyClaimed"
	refSecondEntryNeedsDifferentUser      = "SecondEntryNeedsDifferentUser"
	refCannotTransitionUsingDifferentUser = "CannotTransitionUsingDifferentUser"
	refCommitteeSessionPaused             = "CommitteeSessionPaused"
	refInvalidCommitteeSessionStatus      = "InvalidCommitteeSessionStatus"
	refInvalidDetails                     = "InvalidDetails"
	refInvalidStatusTransition            = "InvalidStatusTransition"
	refInvestigationRequiresConsent       = "InvestigationRequiresDataEntryDeletionConsent"
	refInvestigationNewStationMustCorrect = "InvestigationNewStationMustCorrectResults"
	refMalformedRequest                   = "MalformedRequest"
	refInternal                           = "Internal"
	refArtifactUnavailable                = "ArtifactUnavailable"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Error().Err(err).Msg("failed to encode response body")
	}
}

func writeOK(w http.ResponseWriter, body any) {
	writeJSON(w, http.StatusOK, body)
}

func writeCreated(w http.ResponseWriter, body any) {
	writeJSON(w, http.StatusCreated, body)
}

func writeNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func writeRejection(w http.ResponseWriter, status int, fatal bool, message, reference string) {
	writeJSON(w, status, rejection{Error: message, Fatal: fatal, Reference: reference})
}

func writeUnauthenticated(w http.ResponseWriter) {
	writeRejection(w, http.StatusUnauthorized, false, "authentication is required", refUnauthenticated)
}

func writeForbidden(w http.ResponseWriter) {
	writeRejection(w, http.StatusForbidden, false, "this role is not permitted to perform this operation", refForbidden)
}

func writeNotFound(w http.ResponseWriter) {
	writeRejection(w, http.StatusNotFound, false, "the requested resource does not exist", refNotFound)
}

func writeMalformed(w http.ResponseWriter, message string) {
	writeRejection(w, http.StatusUnprocessableEntity, false, message, refMalformedRequest)
}

func writeInternal(w http.ResponseWriter, err error) {
	logging.Error().Err(err).Msg("internal error handling request")
	writeRejection(w, http.StatusInternalServerError, true, "an internal error occurred", refInternal)
}
