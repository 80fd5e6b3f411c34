package models

import (
	"encoding/json"
	"fmt"
)

// Severity is the ordered moderation action applied to a domain.
// The ordering is load-bearing: merge plans pick the highest or lowest
// level seen across sources.
type Severity int

const (
	// SeverityUnspecified marks an entry whose source carried no severity.
	// It only exists between parsing and normalization; merged sets never
	// contain it.
	SeverityUnspecified Severity = iota
	SeverityNoop
	SeveritySilence
	SeveritySuspend
)

// UnknownSeverityError reports a severity value outside the known scale.
// Severities are never guessed around; the record that carried the value
// must not be processed.
type UnknownSeverityError struct {
	Value string
}

func (e *UnknownSeverityError) Error() string {
	return fmt.Sprintf("unknown severity %q", e.Value)
}

// ParseSeverity maps a wire string onto the severity scale.
// "none" is accepted as an alias for "noop"; some list exports use it.
func ParseSeverity(s string) (Severity, error) {
	switch s {
	case "noop", "none":
		return SeverityNoop, nil
	case "silence":
		return SeveritySilence, nil
	case "suspend":
		return SeveritySuspend, nil
	default:
		return SeverityUnspecified, &UnknownSeverityError{Value: s}
	}
}

// String returns the canonical wire form, or "" for SeverityUnspecified.
func (s Severity) String() string {
	switch s {
	case SeverityNoop:
		return "noop"
	case SeveritySilence:
		return "silence"
	case SeveritySuspend:
		return "suspend"
	default:
		return ""
	}
}

// DefaultRejectMedia is the reject_media value implied by the severity when
// a source does not pin it explicitly.
func (s Severity) DefaultRejectMedia() bool {
	return s == SeveritySilence || s == SeveritySuspend
}

// DefaultRejectReports is the reject_reports value implied by the severity
// when a source does not pin it explicitly.
func (s Severity) DefaultRejectReports() bool {
	return s == SeveritySilence || s == SeveritySuspend
}

// MarshalJSON encodes the severity as its canonical wire string.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a wire string, rejecting unknown values.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseSeverity(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
