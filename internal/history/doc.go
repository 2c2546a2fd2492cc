// Package history keeps a local SQLite ledger of finished trim runs. It is
// strictly append-and-read: nothing schedules work from it, it only feeds
// the `mptrim history` view.
package history
