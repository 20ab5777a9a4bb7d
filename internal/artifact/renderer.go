// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

// Package artifact models the boundary between the core and the two
// collaborators that turn its output into delivered files: a PDF
// renderer and an archive packager. Neither rendering nor packaging
// logic belongs here — the core only builds a canonical input document
// and hands it to a Renderer, then gets an opaque byte blob back.
package artifact

import (
	"context"
	"errors"

	"github.com/centralbureau/tabulator/internal/aggregation"
	"github.com/centralbureau/tabulator/internal/apportionment"
	"github.com/centralbureau/tabulator/internal/election"
)

// ErrNoRenderer is returned by NullRenderer, the default Renderer when
// none is configured: PDF rendering is an external collaborator this
// core does not implement.
var ErrNoRenderer = errors.New("artifact: no pdf renderer configured")

// ResultsPDFInput is the canonical, serializable document a results
// protocol is rendered from: everything a template needs and nothing a
// renderer should have to query back for.
type ResultsPDFInput struct {
	Election         election.Election
	ContestID        string
	Summary          aggregation.Summary
	PreviousSummary  *aggregation.Summary
	Apportionment    *apportionment.Result
	ResultsXMLSHA256 string
	GeneratedAt      string
}

// Renderer turns a canonical input document into an opaque rendered
// byte blob. Implementations live outside the core — over a subprocess,
// a sidecar, or a remote rendering service — and are injected into the
// server rather than called directly by domain code.
type Renderer interface {
	RenderResultsPDF(ctx context.Context, input ResultsPDFInput) ([]byte, error)
}

// NullRenderer is the zero-configuration Renderer: it always reports
// that no renderer is wired. A deployment that wants PDF downloads must
// supply a real Renderer; the core never fabricates one.
type NullRenderer struct{}

func (NullRenderer) RenderResultsPDF(context.Context, ResultsPDFInput) ([]byte, error) {
	return nil, ErrNoRenderer
}
