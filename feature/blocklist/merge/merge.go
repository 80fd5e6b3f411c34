package merge

import (
	"fmt"

	"fediblock-sync/feature/blocklist/models"
)

// Plan selects how overlapping block definitions are combined.
type Plan string

const (
	// PlanMax keeps the highest severity found for a domain.
	PlanMax Plan = "max"
	// PlanMin keeps the lowest severity found for a domain.
	PlanMin Plan = "min"
)

// UnsupportedPlanError reports a merge plan outside {max, min}. It is fatal
// for the run; a wrong plan is a configuration defect.
type UnsupportedPlanError struct {
	Plan Plan
}

func (e *UnsupportedPlanError) Error() string {
	return fmt.Sprintf("unsupported merge plan %q", string(e.Plan))
}

// Options control a merge.
type Options struct {
	Plan                   Plan
	IncludePrivateComments bool
}

// Merge folds the sources, in the given order, into a single set keyed by
// domain. It performs no network or disk access; the result depends only on
// the ordered input.
func Merge(sources []models.SourceList, opts Options) (map[string]models.BlockEntry, error) {
	if opts.Plan != PlanMax && opts.Plan != PlanMin {
		return nil, &UnsupportedPlanError{Plan: opts.Plan}
	}

	merged := make(map[string]models.BlockEntry)
	for _, src := range sources {
		for _, incoming := range src.Entries {
			existing, ok := merged[incoming.Domain]
			if !ok {
				merged[incoming.Domain] = newEntry(incoming, opts.IncludePrivateComments)
				continue
			}
			merged[incoming.Domain] = combine(existing, incoming, opts)
		}
	}
	return merged, nil
}

// newEntry fills in defaults for a domain seen for the first time.
func newEntry(in models.BlockEntry, includePrivate bool) models.BlockEntry {
	sev := in.Severity
	if sev == models.SeverityUnspecified {
		sev = models.SeveritySilence
	}
	out := models.BlockEntry{
		Domain:        in.Domain,
		Severity:      sev,
		PublicComment: in.PublicComment,
		RejectMedia:   models.Bool(models.BoolValue(in.RejectMedia, sev.DefaultRejectMedia())),
		RejectReports: models.Bool(models.BoolValue(in.RejectReports, sev.DefaultRejectReports())),
		Obfuscate:     models.Bool(models.BoolValue(in.Obfuscate, true)),
	}
	if includePrivate {
		out.PrivateComment = in.PrivateComment
	}
	return out
}

// combine resolves a conflict between the accumulated entry and an incoming
// one under the chosen plan.
func combine(existing, incoming models.BlockEntry, opts Options) models.BlockEntry {
	out := existing

	out.PublicComment = appendComment(existing.PublicComment, incoming.PublicComment)
	if opts.IncludePrivateComments {
		out.PrivateComment = appendComment(existing.PrivateComment, incoming.PrivateComment)
	}

	insev := incoming.Severity
	if insev == models.SeverityUnspecified {
		insev = models.SeveritySilence
	}

	switch opts.Plan {
	case PlanMax:
		if insev > existing.Severity {
			out.Severity = insev
		}
		// Sticky: once any source wants the domain obfuscated, it stays so.
		if incoming.Obfuscate != nil && *incoming.Obfuscate {
			out.Obfuscate = models.Bool(true)
		}
	case PlanMin:
		if insev < existing.Severity {
			out.Severity = insev
		}
		if incoming.Obfuscate != nil && !*incoming.Obfuscate {
			out.Obfuscate = models.Bool(false)
		}
	}

	// Reject flags follow the incoming entry when it pins them, otherwise
	// they are recomputed from the post-merge severity. This can replace an
	// explicit earlier value with a default; the reference behavior is kept
	// on purpose.
	out.RejectMedia = models.Bool(models.BoolValue(incoming.RejectMedia, out.Severity.DefaultRejectMedia()))
	out.RejectReports = models.Bool(models.BoolValue(incoming.RejectReports, out.Severity.DefaultRejectReports()))

	return out
}

// appendComment keeps a running log of every differing comment seen for a
// domain, newline-separated. Empty or duplicate incoming comments are a
// no-op.
func appendComment(existing, incoming string) string {
	if incoming == "" || incoming == existing {
		return existing
	}
	if existing == "" {
		return incoming
	}
	return existing + "\n" + incoming
}
