// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

/*
Package authz enforces the role matrix of administrator, coordinator,
and typist against the seven operation classes in the authorization
design: user management, election/session/station edit, investigation
edit, data-entry claim/save/finalise, data-entry abort/resolve,
artifact download, and audit-log read.

Role-to-operation-class permission is a plain allow list with no role
inheritance, so it is expressed as a Casbin ACL model (model.conf) over
an embedded policy (policy.csv) rather than the RBAC-with-role-graph
model the same library is often used for. One rule is not expressible
in that allow list: a coordinator may only manage typist accounts, a
per-row distinction Casbin's (sub, obj, act) triple has no room to
carry without the request including the target's role as a fourth
field. CanManageUser implements that rule directly rather than bending
the policy model to fit it.
*/
package authz
