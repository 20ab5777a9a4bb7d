// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

package authz

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/casbin/casbin/v2/persist"

	"github.com/centralbureau/tabulator/internal/user"
)

//go:embed model.conf
var modelConf string

//go:embed policy.csv
var policyCSV string

// Resource names, the obj half of every policy rule.
const (
	ResourceUsers         = "users"
	ResourceElection      = "election"
	ResourceInvestigation = "investigation"
	ResourceDataEntry     = "data_entry"
	ResourceArtifact      = "artifact"
	ResourceAuditLog      = "audit_log"
)

// Action names, the act half of every policy rule.
const (
	ActionManage        = "manage"
	ActionManageTypists = "manage_typists"
	ActionRead          = "read"
	ActionClaim         = "claim"
	ActionAbort         = "abort"
	ActionDownload      = "download"
)

// Enforcer decides whether a role may perform an action on a resource,
// per the embedded policy.
type Enforcer struct {
	e *casbin.Enforcer
}

// NewEnforcer builds an Enforcer from the embedded model and policy.
func NewEnforcer() (*Enforcer, error) {
	m, err := model.NewModelFromString(modelConf)
	if err != nil {
		return nil, fmt.Errorf("authz: parse model: %w", err)
	}
	e, err := casbin.NewEnforcer(m, &embeddedAdapter{policy: policyCSV})
	if err != nil {
		return nil, fmt.Errorf("authz: build enforcer: %w", err)
	}
	return &Enforcer{e: e}, nil
}

// Can reports whether role may perform action on resource.
func (enf *Enforcer) Can(role user.Role, resource, action string) bool {
	ok, err := enf.e.Enforce(string(role), resource, action)
	return err == nil && ok
}

// CanManageUsers reports whether role may administer other accounts at
// all (the per-target typists-only restriction is CanManageUser).
func (enf *Enforcer) CanManageUsers(role user.Role) bool {
	return enf.Can(role, ResourceUsers, ActionManage) || enf.Can(role, ResourceUsers, ActionManageTypists)
}

// CanManageUser reports whether actor may view or mutate target's
// account: administrators may touch any account, coordinators only
// typist accounts, typists none.
func CanManageUser(actor, target user.Role) bool {
	switch actor {
	case user.RoleAdministrator:
		return true
	case user.RoleCoordinator:
		return target == user.RoleTypist
	default:
		return false
	}
}

// CanEditElectionData reports whether role may create, update, or
// delete elections, committee sessions, or polling stations.
func (enf *Enforcer) CanEditElectionData(role user.Role) bool {
	return enf.Can(role, ResourceElection, ActionManage)
}

// CanEditInvestigation reports whether role may create, update, or
// conclude an investigation.
func (enf *Enforcer) CanEditInvestigation(role user.Role) bool {
	return enf.Can(role, ResourceInvestigation, ActionManage)
}

// CanClaimDataEntry reports whether role may claim, save, or finalise a
// data-entry slot.
func (enf *Enforcer) CanClaimDataEntry(role user.Role) bool {
	return enf.Can(role, ResourceDataEntry, ActionClaim)
}

// CanAbortOrResolveDataEntry reports whether role may abort a claim or
// resolve an error/difference outcome on behalf of a typist.
func (enf *Enforcer) CanAbortOrResolveDataEntry(role user.Role) bool {
	return enf.Can(role, ResourceDataEntry, ActionAbort)
}

// CanDownloadArtifacts reports whether role may download result
// artifacts (the delivery zip or its constituent PDF/XML).
func (enf *Enforcer) CanDownloadArtifacts(role user.Role) bool {
	return enf.Can(role, ResourceArtifact, ActionDownload)
}

// CanReadAuditLog reports whether role may read the audit log.
func (enf *Enforcer) CanReadAuditLog(role user.Role) bool {
	return enf.Can(role, ResourceAuditLog, ActionRead)
}

// embeddedAdapter loads policy rules from an in-memory CSV string
// rather than a file on disk: policy.csv is go:embed'd into the binary,
// so there is no path to hand a persist/file-adapter.Adapter, and the
// policy never changes at runtime so Save/Add/Remove are no-ops.
type embeddedAdapter struct {
	policy string
}

func (a *embeddedAdapter) LoadPolicy(m model.Model) error {
	for _, line := range strings.Split(a.policy, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		persist.LoadPolicyLine(line, m)
	}
	return nil
}

func (a *embeddedAdapter) SavePolicy(model.Model) error { return nil }

func (a *embeddedAdapter) AddPolicy(sec, ptype string, rule []string) error { return nil }

func (a *embeddedAdapter) RemovePolicy(sec, ptype string, rule []string) error { return nil }

func (a *embeddedAdapter) RemoveFilteredPolicy(sec, ptype string, fieldIndex int, fieldValues ...string) error {
	return nil
}
