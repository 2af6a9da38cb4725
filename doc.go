// Package main provides the wfc-loom CLI: a wave function collapse grid
// generator built on pkg/wfc.
//
// # Overview
//
// wfc-loom loads a pattern catalog, collapses a grid cell by cell under
// adjacency rules, and arbitrates contradictions through a pluggable
// Judge and Advisor. It is the single entry point for generating,
// validating, and rendering collapsed grids from the command line.
//
// # Commands
//
// ## generate
//
// Collapse a grid from a pattern catalog and write it to a ".dat" file.
//
//	wfc-loom generate --catalog patterns.json --width 20 --height 20
//	wfc-loom gen -c patterns.json --advisor greedy --judge random --penalty 1
//
// ## validate
//
// Check a pattern catalog for bidirectional rule consistency.
//
//	wfc-loom validate --catalog patterns.json
//
// ## render
//
// Print a serialized grid to the terminal with one color per pattern.
//
//	wfc-loom render --catalog patterns.json --grid grid.dat --width 20 --height 20
//
// ## rollback-stats
//
// Run a generation across a seed range and summarize outcomes and
// rollback counts.
//
//	wfc-loom rollback-stats --catalog patterns.json --runs 100
//
// # Package Structure
//
//	cmd/              - Cobra command implementations
//	pkg/
//	  ├─ model/       - Point, Direction, Pattern, MetaPattern, Snapshot
//	  ├─ catalog/      - pattern repository and bidirectional rule validator
//	  ├─ catalogio/    - JSON catalog loading (the generator's external on-ramp)
//	  ├─ grid/         - entropy field, valid-pattern computation, propagation
//	  ├─ advisor/       - pattern selection policies
//	  ├─ judge/         - continue/rollback/stop arbitration policies
//	  ├─ history/       - append-only step log and rollback stack
//	  ├─ wfc/           - the collapse-loop orchestrator
//	  ├─ serialize/      - the ".dat" grid codec
//	  ├─ session/       - optional Postgres audit trail for past runs
//	  ├─ telemetry/     - OpenTelemetry spans around a generation
//	  ├─ wfclog/        - zerolog-backed logging
//	  └─ cliutil/        - shared CLI presentation helpers
//
// # Global Flags
//
//	-v, --verbose          enable verbose output for debugging
//	    --log-file string  additionally write logs to this file
package main
