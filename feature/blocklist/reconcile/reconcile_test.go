package reconcile

import (
	"testing"

	"fediblock-sync/feature/blocklist/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPlan_AddForUntrackedDomain(t *testing.T) {
	merged := map[string]models.BlockEntry{
		"bad.example": {Domain: "bad.example", Severity: models.SeveritySuspend, PublicComment: "spam"},
	}

	plan := BuildPlan(merged, map[string]models.BlockEntry{}, Options{})
	require.Len(t, plan.Operations, 1)
	assert.Equal(t, 1, plan.Summary.Adds)
	assert.Equal(t, 0, plan.Summary.Updates)

	op := plan.Operations[0]
	assert.Equal(t, OpAdd, op.Type)
	assert.Equal(t, models.SeveritySuspend, op.Entry.Severity)
	assert.Equal(t, "spam", op.Entry.PublicComment)
	// Add defaults are the strict set: everything unspecified becomes false.
	assert.False(t, *op.Entry.RejectMedia)
	assert.False(t, *op.Entry.RejectReports)
	assert.False(t, *op.Entry.Obfuscate)
	assert.Empty(t, op.Entry.RemoteID)
}

func TestBuildPlan_AddDefaultsSeverityToSilence(t *testing.T) {
	merged := map[string]models.BlockEntry{
		"bad.example": {Domain: "bad.example"},
	}

	plan := BuildPlan(merged, map[string]models.BlockEntry{}, Options{})
	require.Len(t, plan.Operations, 1)
	assert.Equal(t, models.SeveritySilence, plan.Operations[0].Entry.Severity)
}

func TestBuildPlan_NoOperationWhenUnchanged(t *testing.T) {
	existing := map[string]models.BlockEntry{
		"bad.example": {
			Domain:        "bad.example",
			Severity:      models.SeveritySilence,
			PublicComment: "spam",
			RejectMedia:   models.Bool(true),
			RejectReports: models.Bool(true),
			Obfuscate:     models.Bool(false),
			RemoteID:      "42",
		},
	}
	merged := map[string]models.BlockEntry{
		"bad.example": {
			Domain:        "bad.example",
			Severity:      models.SeveritySilence,
			PublicComment: "spam",
			RejectMedia:   models.Bool(true),
			RejectReports: models.Bool(true),
			Obfuscate:     models.Bool(false),
		},
	}

	plan := BuildPlan(merged, existing, Options{})
	assert.Empty(t, plan.Operations)
	assert.Equal(t, 1, plan.Summary.Unchanged)
}

func TestBuildPlan_UnspecifiedFlagsCannotTriggerUpdate(t *testing.T) {
	existing := map[string]models.BlockEntry{
		"bad.example": {
			Domain:        "bad.example",
			Severity:      models.SeveritySilence,
			RejectMedia:   models.Bool(true),
			RejectReports: models.Bool(true),
			Obfuscate:     models.Bool(true),
			RemoteID:      "42",
		},
	}
	merged := map[string]models.BlockEntry{
		"bad.example": {Domain: "bad.example", Severity: models.SeveritySilence},
	}

	plan := BuildPlan(merged, existing, Options{})
	assert.Empty(t, plan.Operations)
}

func TestBuildPlan_UpdateCarriesRemoteIDAndOverrides(t *testing.T) {
	existing := map[string]models.BlockEntry{
		"bad.example": {
			Domain:        "bad.example",
			Severity:      models.SeveritySilence,
			PublicComment: "old note",
			RejectMedia:   models.Bool(false),
			RejectReports: models.Bool(false),
			Obfuscate:     models.Bool(true),
			RemoteID:      "42",
		},
	}
	merged := map[string]models.BlockEntry{
		"bad.example": {
			Domain:        "bad.example",
			Severity:      models.SeveritySuspend,
			PublicComment: "old note",
			RejectMedia:   models.Bool(true),
			RejectReports: models.Bool(true),
		},
	}

	plan := BuildPlan(merged, existing, Options{})
	require.Len(t, plan.Operations, 1)
	assert.Equal(t, 1, plan.Summary.Updates)

	op := plan.Operations[0]
	assert.Equal(t, OpUpdate, op.Type)
	assert.Equal(t, "42", op.Entry.RemoteID)
	assert.Equal(t, models.SeveritySuspend, op.Entry.Severity)
	assert.True(t, *op.Entry.RejectMedia)
	assert.True(t, *op.Entry.RejectReports)
	// Obfuscate was unspecified on the merged side: existing value kept.
	assert.True(t, *op.Entry.Obfuscate)
}

func TestBuildPlan_PrivateCommentComparedOnlyWhenEnabled(t *testing.T) {
	existing := map[string]models.BlockEntry{
		"bad.example": {
			Domain:         "bad.example",
			Severity:       models.SeveritySilence,
			PrivateComment: "internal",
			RemoteID:       "42",
		},
	}
	merged := map[string]models.BlockEntry{
		"bad.example": {
			Domain:         "bad.example",
			Severity:       models.SeveritySilence,
			PrivateComment: "different",
		},
	}

	plan := BuildPlan(merged, existing, Options{})
	assert.Empty(t, plan.Operations)

	plan = BuildPlan(merged, existing, Options{IncludePrivateComments: true})
	require.Len(t, plan.Operations, 1)
	assert.Equal(t, "different", plan.Operations[0].Entry.PrivateComment)
}

func TestBuildPlan_RemoteOnlyDomainsUntouched(t *testing.T) {
	existing := map[string]models.BlockEntry{
		"keep.example": {Domain: "keep.example", Severity: models.SeveritySuspend, RemoteID: "7"},
	}

	plan := BuildPlan(map[string]models.BlockEntry{}, existing, Options{})
	assert.Empty(t, plan.Operations)
	assert.Equal(t, 0, plan.Summary.Total)
}

func TestBuildPlan_DeterministicOrder(t *testing.T) {
	merged := map[string]models.BlockEntry{
		"c.example": {Domain: "c.example", Severity: models.SeveritySilence},
		"a.example": {Domain: "a.example", Severity: models.SeveritySilence},
		"b.example": {Domain: "b.example", Severity: models.SeveritySilence},
	}

	plan := BuildPlan(merged, map[string]models.BlockEntry{}, Options{})
	require.Len(t, plan.Operations, 3)
	assert.Equal(t, "a.example", plan.Operations[0].Entry.Domain)
	assert.Equal(t, "b.example", plan.Operations[1].Entry.Domain)
	assert.Equal(t, "c.example", plan.Operations[2].Entry.Domain)
}

func TestBuildPlan_SeverityEscalation(t *testing.T) {
	// Destination tracks bad.example at silence under id 42; the merged set
	// wants suspend with reject flags recomputed to true.
	existing := map[string]models.BlockEntry{
		"bad.example": {
			Domain:        "bad.example",
			Severity:      models.SeveritySilence,
			RejectMedia:   models.Bool(true),
			RejectReports: models.Bool(true),
			Obfuscate:     models.Bool(false),
			RemoteID:      "42",
		},
	}
	merged := map[string]models.BlockEntry{
		"bad.example": {
			Domain:        "bad.example",
			Severity:      models.SeveritySuspend,
			RejectMedia:   models.Bool(true),
			RejectReports: models.Bool(true),
			Obfuscate:     models.Bool(false),
		},
	}

	plan := BuildPlan(merged, existing, Options{})
	require.Len(t, plan.Operations, 1)
	op := plan.Operations[0]
	assert.Equal(t, OpUpdate, op.Type)
	assert.Equal(t, "42", op.Entry.RemoteID)
	assert.Equal(t, models.SeveritySuspend, op.Entry.Severity)
	assert.True(t, *op.Entry.RejectMedia)
	assert.True(t, *op.Entry.RejectReports)
}
