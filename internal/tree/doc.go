// Package tree builds the lossless token tree: every bracket pair becomes a
// group, every block comment becomes an opaque Comment group, everything
// else (whitespace included) stays a leaf token.
//
// Nodes live in one arena and are numbered in pre-order, so a parent always
// has a smaller NodeID than any of its descendants. Passes that need
// children first simply walk the arena backwards; no pass recurses.
//
// The tree is read-only once Build returns. Derived per-node facts (see
// ForcesBreak) are memoized in side tables indexed by NodeID.
package tree
