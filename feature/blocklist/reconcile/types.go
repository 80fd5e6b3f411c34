package reconcile

import "fediblock-sync/feature/blocklist/models"

// OpType is the kind of write a destination needs.
type OpType string

const (
	// OpAdd creates a block the destination does not have yet.
	OpAdd OpType = "add"
	// OpUpdate rewrites an existing block, addressed by its remote id.
	OpUpdate OpType = "update"
)

// Operation is one planned write against a destination.
type Operation struct {
	Type OpType
	// Entry is the full payload. For updates its RemoteID identifies the
	// record to rewrite.
	Entry models.BlockEntry
}

// Summary gives aggregate counts for a plan.
type Summary struct {
	Total     int
	Adds      int
	Updates   int
	Unchanged int
}

// Plan is the ordered change-set for one destination.
type Plan struct {
	Operations []Operation
	Summary    Summary
}

// Options control which fields participate in comparison.
type Options struct {
	IncludePrivateComments bool
}
