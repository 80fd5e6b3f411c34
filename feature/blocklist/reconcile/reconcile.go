package reconcile

import (
	"sort"

	"fediblock-sync/feature/blocklist/models"
)

// BuildPlan diffs the merged set against a destination's existing state and
// returns the minimal ordered change-set. Operations come out sorted by
// domain for deterministic output.
func BuildPlan(merged, existing map[string]models.BlockEntry, opts Options) *Plan {
	domains := make([]string, 0, len(merged))
	for domain := range merged {
		domains = append(domains, domain)
	}
	sort.Strings(domains)

	plan := &Plan{Summary: Summary{Total: len(domains)}}
	for _, domain := range domains {
		want := merged[domain]
		have, tracked := existing[domain]
		if !tracked {
			plan.Operations = append(plan.Operations, Operation{Type: OpAdd, Entry: addPayload(want)})
			plan.Summary.Adds++
			continue
		}
		if changed(have, want, opts) {
			plan.Operations = append(plan.Operations, Operation{Type: OpUpdate, Entry: updatePayload(have, want, opts)})
			plan.Summary.Updates++
			continue
		}
		plan.Summary.Unchanged++
	}
	return plan
}

// normalizedSeverity treats an unspecified severity as silence.
func normalizedSeverity(s models.Severity) models.Severity {
	if s == models.SeverityUnspecified {
		return models.SeveritySilence
	}
	return s
}

// addPayload builds the create payload for a domain the destination does
// not track. These defaults are stricter than the merge defaults (reject
// flags and obfuscate default to false); that asymmetry is intentional.
func addPayload(want models.BlockEntry) models.BlockEntry {
	return models.BlockEntry{
		Domain:         want.Domain,
		Severity:       normalizedSeverity(want.Severity),
		PublicComment:  want.PublicComment,
		PrivateComment: want.PrivateComment,
		RejectMedia:    models.Bool(models.BoolValue(want.RejectMedia, false)),
		RejectReports:  models.Bool(models.BoolValue(want.RejectReports, false)),
		Obfuscate:      models.Bool(models.BoolValue(want.Obfuscate, false)),
	}
}

// changed reports whether any compared field differs, by normalized value.
// A boolean the merged side never specified cannot cause a difference.
func changed(have, want models.BlockEntry, opts Options) bool {
	if normalizedSeverity(want.Severity) != have.Severity {
		return true
	}
	if want.PublicComment != have.PublicComment {
		return true
	}
	if opts.IncludePrivateComments && want.PrivateComment != have.PrivateComment {
		return true
	}
	for _, pair := range []struct{ want, have *bool }{
		{want.RejectMedia, have.RejectMedia},
		{want.RejectReports, have.RejectReports},
		{want.Obfuscate, have.Obfuscate},
	} {
		if pair.want != nil && *pair.want != models.BoolValue(pair.have, false) {
			return true
		}
	}
	return false
}

// updatePayload copies the existing entry (keeping its RemoteID) and layers
// the merged entry's specified fields on top. Fields the merged side left
// unspecified keep the destination's current value.
func updatePayload(have, want models.BlockEntry, opts Options) models.BlockEntry {
	out := have
	out.Severity = normalizedSeverity(want.Severity)
	out.PublicComment = want.PublicComment
	if opts.IncludePrivateComments {
		out.PrivateComment = want.PrivateComment
	}
	if want.RejectMedia != nil {
		out.RejectMedia = models.Bool(*want.RejectMedia)
	}
	if want.RejectReports != nil {
		out.RejectReports = models.Bool(*want.RejectReports)
	}
	if want.Obfuscate != nil {
		out.Obfuscate = models.Bool(*want.Obfuscate)
	}
	return out
}
