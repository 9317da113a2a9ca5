// Package rules decides what separates two adjacent visible siblings of a
// token tree. The decision is a first-match scan over an ordered table of
// (left pattern, right pattern, directive) rows; the table is plain data and
// can be listed with Table.
//
// The Keep family resolves a single source line break to a hard break
// rather than a soft one: lines the author split stay split even when the
// enclosing group fits.
package rules
