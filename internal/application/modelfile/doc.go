// Package modelfile implements the application layer for threat model
// persistence.
//
// This package serves as a facade that bridges the domain layer to
// infrastructure concerns:
//   - Parses threat model YAML documents into plain records
//   - Converts records to domain entities and registers them in
//     dependency-safe order (nodes before the dataflows that connect them,
//     mitigations before the threats that reference them)
//   - Serializes a populated registry back to the same document shape
//
// # Document Shape
//
// A model file is a single YAML document with the top-level keys name,
// description, nodes, dataflows, boundaries, threats, and mitigations.
// Enumerated fields (status, scores, categories) are stored by their
// serialized names, e.g. MANAGED_ACCEPTED or INFORMATION_DISCLOSURE; the
// domain parsers also accept the human-readable forms. Threat records
// reference child threats and mitigations by identifier only; resolving
// those references is the registry's and checker's job, which is what lets
// a file list threats in any order.
//
// # Round-Tripping
//
// Save(Load(f)) preserves the set of identifiers, the boundary membership,
// and all threat fields. Key order in the emitted document is fixed so
// repeated saves of the same model are byte-identical.
package modelfile
