// Package reconcile computes the minimal change-set that brings a
// destination instance in line with a merged blocklist.
//
// BuildPlan compares every merged entry against the destination's existing
// state and emits, in domain order, an Add for domains the destination does
// not track and an Update for tracked domains whose compared fields differ.
// Domains whose effective state already matches produce no operation, and
// entries the destination tracks but the merged set does not are left
// untouched: this system adds and updates, it never prunes.
//
// # Add Defaults
//
// Add payloads fill unspecified fields with a stricter default set than the
// merge step uses: severity silence, comments empty, reject flags false,
// obfuscate false. The asymmetry with merge defaults is intentional and
// must not be normalized away.
//
// # Comparison
//
// Fields compare by normalized value, not presence: an unspecified boolean
// on the merged side cannot differ from the existing value, and empty
// comments equal absent ones. Updates carry the existing entry's remote id
// with the merged entry's specified fields layered on top.
package reconcile
