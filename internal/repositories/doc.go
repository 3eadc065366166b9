// Package repositories implements the SQLite mirror of the flat-file catalog.
//
// The catalog CSV stays the source of truth. The mirror exists so the catalog can be filtered with SQL, and is
// rebuilt from a catalog snapshot by [MovieRepository.Sync].
//
// Key Implementations:
//   - [MovieRepository] : mirrored movies with soft deletes and director/year filters
//   - [SyncRunRepository] : history of sync runs, one row per [MovieRepository.Sync]
//
// Sequence numbers give mirror rows a stable order independent of UUIDs and timestamps.
// The [NextSequence] function increments per-table counters kept in dedicated sequence tables.
package repositories
