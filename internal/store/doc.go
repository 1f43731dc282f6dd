// Package store provides SQLite-backed run history for sortvis.
//
// Every render appends one row to the runs table describing what was rendered
// and how: input digest, algorithm, trace shape, frame count, grid size,
// longest trace, shuffle seed and output path. Frames and traces themselves
// are never stored; a run can be reproduced from its input, seed and
// algorithm because capture and replay are deterministic.
//
// # Ordering
//
//   - Runs are ordered by seq, an INTEGER PRIMARY KEY assigned on insert
//   - Wall-clock time is never used for ordering
//   - Run IDs are UUIDv7 strings from an IDGenerator (fixed in tests)
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// Input digests are computed by ImageDigest using SHA-256 with domain
// separation.
package store
