// Package normalize prepares raw source text for tokenizing: line endings,
// tabs, trailing whitespace, invisible characters and, optionally, the
// statement terminators that Motoko lets authors omit after a closing brace.
package normalize
