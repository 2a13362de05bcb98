// Package config loads and validates loom configuration.
//
// Configuration is YAML with defaults applied for unset fields and
// LOOM_SECTION_FIELD environment variables taking precedence over file
// values. Validation collects every problem into one error instead of
// stopping at the first.
//
//	cfg, err := config.LoadConfigWithEnvOverrides("loom.yaml")
//
// A process-wide singleton is available via Initialize/GetConfig for the
// CLI entry point; library consumers should pass Config values explicitly.
package config
