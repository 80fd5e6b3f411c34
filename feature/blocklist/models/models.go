package models

import (
	"fmt"
	"strings"
)

// BlockEntry is one domain's moderation decision.
//
// RejectMedia, RejectReports and Obfuscate are tri-state: nil means the
// source never specified the flag. Defaulting rules in the merge and
// reconcile steps depend on that distinction, so the pointers must not be
// collapsed to plain booleans before those steps run.
type BlockEntry struct {
	Domain         string
	Severity       Severity
	PublicComment  string
	PrivateComment string
	RejectMedia    *bool
	RejectReports  *bool
	Obfuscate      *bool

	// RemoteID is the destination's identifier for an already-tracked
	// domain. It is populated only on entries fetched from an instance and
	// is required to issue an update instead of a create.
	RemoteID string
}

// SourceList is the ordered run of entries read from one source (file, URL
// or instance). Order does not affect merge semantics but is preserved for
// intermediate saves.
type SourceList struct {
	Name    string
	Entries []BlockEntry
}

// Bool returns a pointer to v, for building explicit tri-state flags.
func Bool(v bool) *bool {
	return &v
}

// BoolValue resolves a tri-state flag against a default.
func BoolValue(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// ParseBool converts the boolean vocabulary used by blocklist exports.
// Unknown strings are an error rather than a silent false.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "t", "1", "y", "yes":
		return true, nil
	case "false", "f", "0", "n", "no":
		return false, nil
	default:
		return false, fmt.Errorf("cannot parse %q as boolean", s)
	}
}
