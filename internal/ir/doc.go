// Package ir provides the instruction tree that the parser produces and the
// engine executes.
//
// This package contains type definitions and pure helpers only. All other
// internal packages import ir; ir imports nothing internal.
//
// Key design constraints:
//   - A Program is immutable once built; nothing mutates a Body after parse
//   - Each Loop exclusively owns its Body (no sharing, no cycles)
//   - All JSON tags and op names use snake_case
//   - Program.String is the canonical serialization; hashes are taken over it
package ir
