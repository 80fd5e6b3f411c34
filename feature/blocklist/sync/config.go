package sync

// InstanceAuth names one instance and the bearer token used against its
// admin API.
type InstanceAuth struct {
	Domain string `mapstructure:"domain"`
	Token  string `mapstructure:"token"`
}

// Config drives a sync run.
type Config struct {
	// MergePlan is "max" or "min".
	MergePlan string `mapstructure:"mergeplan" default:"max"`
	// IncludePrivateComments carries private comments through merging,
	// comparison and exports.
	IncludePrivateComments bool `mapstructure:"include_private_comments" default:"false"`
	// DryRun reports the operations without applying them.
	DryRun bool `mapstructure:"dry_run" default:"false"`
	// SaveIntermediate writes each fetched source list to SaveDir.
	SaveIntermediate bool `mapstructure:"save_intermediate" default:"false"`
	// SaveDir is the directory for intermediate lists.
	SaveDir string `mapstructure:"savedir" default:"/tmp"`
	// MergedSaveFile, when set, receives the merged blocklist as CSV.
	MergedSaveFile string `mapstructure:"blocklist_savefile" default:""`
	// NoFetchURL skips URL/file sources even if configured.
	NoFetchURL bool `mapstructure:"no_fetch_url" default:"false"`
	// NoFetchInstance skips instance sources even if configured.
	NoFetchInstance bool `mapstructure:"no_fetch_instance" default:"false"`
	// NoPushInstance skips pushing to destinations even if configured.
	NoPushInstance bool `mapstructure:"no_push_instance" default:"false"`
	// CooldownSeconds is the pause between successful writes to one
	// destination.
	CooldownSeconds int `mapstructure:"cooldown_seconds" default:"1"`

	// URLSources lists CSV sources, either http(s) URLs or local paths.
	URLSources []string `mapstructure:"blocklist_url_sources"`
	// InstanceSources lists instances whose blocklists are fetched as input.
	InstanceSources []InstanceAuth `mapstructure:"blocklist_instance_sources"`
	// InstanceDestinations lists instances the merged list is pushed to.
	InstanceDestinations []InstanceAuth `mapstructure:"blocklist_instance_destinations"`
}
