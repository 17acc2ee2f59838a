// Package ifacedoc provides a crawler and local knowledge base for HTML
// documentation sites that describe a fixed catalog of software interfaces.
// It crawls interface pages, extracts structured records (names, properties,
// methods, inheritance chains) from loosely formatted markup, and persists
// them into a queryable SQLite store.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, jstree/).
package ifacedoc
