// Package source reads the tabular inputs of a run.
//
// Reader turns a CSV stream into RawRows: the header line is discarded, every
// data row keeps its physical line number and raw fields, and rows of any width
// are accepted so that width checks happen in one place. The Parse functions
// turn a RawRow into a fixed-arity tuple or a *RowError carrying the reason the
// row must be skipped.
package source
