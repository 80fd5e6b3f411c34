// Package merge folds blocklists from multiple sources into one canonical
// set keyed by domain.
//
// # Merge Plans
//
// Overlapping definitions for the same domain are combined under a plan:
//   - "max" keeps the highest severity seen and makes obfuscation sticky-true.
//   - "min" keeps the lowest severity seen and makes obfuscation sticky-false.
//
// Unknown plans fail with UnsupportedPlanError; there is no silent fallback.
//
// # Determinism
//
// Merge is a pure function of its ordered input: sources are folded in the
// order the caller supplies them and entries in the order they appear within
// each source. Comment concatenation makes the result order-sensitive, so
// callers own the ordering.
//
// # Defaults
//
// A domain seen for the first time gets severity "silence" if unspecified,
// obfuscate true if unspecified, and reject flags derived from its severity
// unless the source pinned them. On later overlaps the reject flags follow
// the incoming entry when pinned, otherwise they are recomputed from the
// post-merge severity.
package merge
