package flags

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistry_Enabled(t *testing.T) {
	tests := []struct {
		name     string
		registry *Registry
		flag     string
		expected bool
	}{
		{
			name:     "default-on flag without config",
			registry: New(nil),
			flag:     FlagTimelineCache,
			expected: true,
		},
		{
			name:     "default-off flag without config",
			registry: New(nil),
			flag:     FlagTraceResolvePath,
			expected: false,
		},
		{
			name:     "config overrides default",
			registry: New(map[string]bool{FlagTimelineCache: false}),
			flag:     FlagTimelineCache,
			expected: false,
		},
		{
			name:     "config enables default-off flag",
			registry: New(map[string]bool{FlagTraceResolvePath: true}),
			flag:     FlagTraceResolvePath,
			expected: true,
		},
		{
			name:     "unknown flag returns false",
			registry: New(map[string]bool{"feature-a": true}),
			flag:     "unknown-flag",
			expected: false,
		},
		{
			name:     "custom flag from config",
			registry: New(map[string]bool{"feature-a": true}),
			flag:     "feature-a",
			expected: true,
		},
		{
			name:     "nil registry returns false",
			registry: nil,
			flag:     FlagTimelineCache,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.registry.Enabled(tt.flag))
		})
	}
}

func TestRegistry_AllReturnsCopy(t *testing.T) {
	r := New(map[string]bool{"feature-a": true})

	all := r.All()
	require.Equal(t, map[string]bool{
		FlagTimelineCache:    true,
		FlagTraceResolvePath: false,
		"feature-a":          true,
	}, all)

	all[FlagTimelineCache] = false
	require.True(t, r.Enabled(FlagTimelineCache), "mutating the copy must not affect the registry")

	var nilRegistry *Registry
	require.Empty(t, nilRegistry.All())
}

func TestNew_DoesNotMutateInput(t *testing.T) {
	in := map[string]bool{"feature-a": true}
	_ = New(in)
	require.Len(t, in, 1)
}
