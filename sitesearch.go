// Package sitesearch extracts searchable sections from rendered
// documentation HTML and assembles the full-text search index that is
// embedded in a generated site.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., html/, goldmark/, sqlite/).
package sitesearch
