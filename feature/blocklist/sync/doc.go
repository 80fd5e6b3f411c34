// Package sync orchestrates the blocklist pipeline: fetch from sources,
// merge, persist, then reconcile and push to every destination.
//
// The pipeline is a sequential blocking loop. Sources are fetched one at a
// time; a source that fails to fetch or parse is skipped and the run
// continues. The merged set is built fully before any destination work
// starts and is read-only afterwards. Destinations are processed one at a
// time and independently: a fetch failure skips the destination, a write
// failure abandons that destination's remaining operations, and the run
// moves to the next destination either way. Nothing applied is rolled
// back.
//
// Between successful writes to the same destination the runner sleeps for
// a configured cooldown so bulk pushes do not overload the instance. The
// cooldown, like every write, is skipped in dry-run mode, which logs the
// operations that would have been applied.
//
// Optional side channels record each run: an audit store (core/audit) and
// a snapshot archive uploading the merged CSV to object storage.
package sync
