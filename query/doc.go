// Package query implements the filter, sort and paginate pipeline that turns
// a fetched bean collection into the page shown to a visitor.
//
// Every function in this package is pure: inputs are never mutated and new
// slices are returned. None of them can fail; unknown keys fall back to the
// identity behavior and out-of-range page numbers are clamped.
package query
