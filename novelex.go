// Package novelex extracts bibliographic records (a work's metadata and its
// ordered chapter list) from template-driven HTML published by independent
// novel sites. Each site family is described by a declarative Grammar that
// drives a single-pass streaming state machine over markup events.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, html/).
package novelex
