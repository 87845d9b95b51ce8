// Package store provides SQLite-backed run history for the interpreter.
//
// Each completed or aborted run is appended as one row in the runs table.
// Rows are never updated or deleted.
//
// # Ordering
//
//   - Every row carries seq, a logical counter assigned at insert time
//   - Listing uses ORDER BY seq, never started_at, so identical histories
//     list identically regardless of wall time
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//
// Program identity is ir.ProgramHash, so runs of the same program with
// different comments or layout group together.
package store
