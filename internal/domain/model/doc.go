// Package model implements the domain layer for threat model registries.
//
// This package follows Domain-Driven Design (DDD) principles:
//   - Defines entity types (Node, Dataflow, Boundary, Threat, Mitigation)
//     and the ID value type
//   - Implements domain logic (identifier namespace enforcement, boundary
//     forest resolution, dual-view reconciliation)
//   - Has no knowledge of infrastructure concerns (file I/O, YAML parsing,
//     diagram rendering)
//
// # Core Types
//
// ThreatModel is the registry that owns every entity of one modeling
// session. All entities share a single flat identifier namespace: an ID
// used by an element can never be reused by a threat or mitigation, and
// vice versa. Entities are registered one at a time through the Add*
// methods, which are the only place invariants are enforced. Entities are
// never removed within a session.
//
// Element is the closed variant set of diagram participants. Node covers
// the plain shapes (Process, ExternalEntity, Datastore and the generic
// element), Dataflow covers directed and bidirectional edges, and Boundary
// groups other elements into a trust domain. Boundaries may nest, and may
// reference members that are registered later.
//
// Threat records a possible attack with STRIDE categorization, ordinal
// impact/exploitability scoring, and a mitigation status. Threats carry two
// views of their child-threat and mitigation relationships: a list of
// resolved objects and a list of identifiers. Either view may be populated
// at construction time; Check reconciles the two.
//
// # Boundary Resolution
//
// ResolveBoundaries computes the parent/child forest over all registered
// boundaries fresh on every call, from declared parents and membership
// claims, so the result cannot depend on the order boundaries were added.
// BoundaryForest exposes a root-first traversal and fully flattened leaf
// node sets, which together form the sole contract toward rendering.
//
// # Consistency Checking
//
// Check is a lint-style pass: it mirrors id-lists and object-lists into
// each other, reports unresolvable references and unmanaged threats as
// human-readable findings, and returns an overall pass/fail. Findings are
// diagnostics, not errors; callers decide how to act on them.
package model
