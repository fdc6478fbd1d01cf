// Package repometa extracts normalized thesis metadata from academic
// repository pages. Given a downloaded page and its source URL, it resolves
// which extraction strategy applies to the repository platform and produces
// a record with the institution acronym, institution name, graduate program
// and a link to the primary PDF.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, yaml/).
package repometa
