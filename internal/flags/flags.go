// Package flags provides feature flags read from the "flags" config section.
// Flags are read-only after initialization; unknown flags are disabled.
package flags

import (
	"maps"

	"github.com/vishalchabra/sarathi/internal/log"
)

// Flag name constants for type-safe flag access.
const (
	// FlagTimelineCache memoizes generated Major sequences per birth context.
	// When disabled every call regenerates from the engine.
	FlagTimelineCache = "timeline-cache"

	// FlagTraceResolvePath records a span event for each level a resolve
	// query descends through.
	FlagTraceResolvePath = "trace-resolve-path"
)

// Defaults returns the value of every known flag when config omits it.
func Defaults() map[string]bool {
	return map[string]bool{
		FlagTimelineCache:    true,
		FlagTraceResolvePath: false,
	}
}

// Registry holds feature flag state loaded from configuration.
type Registry struct {
	flags map[string]bool
}

// New creates a Registry from a config map layered over Defaults.
func New(flags map[string]bool) *Registry {
	merged := Defaults()
	maps.Copy(merged, flags)
	r := &Registry{flags: merged}
	log.Debug(log.CatConfig, "Feature flags initialized", "count", len(merged), "flags", r.All())
	return r
}

// Enabled returns true if the named flag is enabled.
// Unknown flags and a nil registry report false.
func (r *Registry) Enabled(name string) bool {
	if r == nil || r.flags == nil {
		return false
	}
	value, exists := r.flags[name]
	if !exists {
		log.Debug(log.CatConfig, "Unknown flag accessed", "flag", name, "result", false)
		return false
	}
	return value
}

// All returns a copy of all flags (for debugging/logging).
func (r *Registry) All() map[string]bool {
	if r == nil || r.flags == nil {
		return make(map[string]bool)
	}
	result := make(map[string]bool, len(r.flags))
	maps.Copy(result, r.flags)
	return result
}
