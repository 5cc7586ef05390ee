package yoga

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupCoverage(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		found bool
	}{
		{"canonical key", "public_liability", "Public Liability", true},
		{"spaced form", "Public Liability", "Public Liability", true},
		{"liability alias", "liability cover", "Public Liability", true},
		{"indemnity alias", "indemnity", "Professional Indemnity", true},
		{"negligence alias", "negligence claims", "Professional Indemnity", true},
		{"kit alias", "my kit", "Equipment Cover", true},
		{"income alias", "income protection", "Personal Accident", true},
		{"employer alias", "employers liability", "Studio & Business Cover", true},
		{"unknown", "pet insurance", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := LookupCoverage(tt.input)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, c.Name)
		})
	}
}

func TestLookupStyle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		found bool
	}{
		{"canonical key", "hot_yoga", "Hot Yoga", true},
		{"spaced form", "Hot Yoga", "Hot Yoga", true},
		{"bikram alias", "bikram", "Hot Yoga", true},
		{"silks alias", "aerial silks", "Aerial Yoga", true},
		{"hammock alias", "hammock classes", "Aerial Yoga", true},
		{"natal alias", "post-natal", "Pregnancy Yoga", true},
		{"restorative alias", "restorative", "Yin & Restorative", true},
		{"reformer alias", "reformer classes", "Pilates", true},
		{"ashtanga alias", "ashtanga", "Vinyasa Flow", true},
		{"unknown", "crossfit", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ok := LookupStyle(tt.input)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, s.Name)
		})
	}
}

func TestProvidersForStyle(t *testing.T) {
	aerial := ProvidersForStyle("aerial")
	require.NotEmpty(t, aerial)
	for _, p := range aerial {
		found := false
		for _, covered := range p.StylesCovered {
			if covered == "Aerial Yoga" {
				found = true
			}
		}
		assert.True(t, found, "provider %s does not cover aerial", p.Name)
	}

	hatha := ProvidersForStyle("hatha")
	assert.NotEmpty(t, hatha, "every mainstream provider covers hatha")

	assert.Nil(t, ProvidersForStyle("crossfit"))
}

func TestCatalogIntegrity(t *testing.T) {
	assert.ElementsMatch(t, CoverageKeys(), keysOf(CoverageOptions))
	assert.ElementsMatch(t, StyleKeys(), keysOf(Styles))
	require.NotEmpty(t, Providers)

	// Alias targets must resolve to real entries.
	for _, r := range coverageAliases {
		_, ok := CoverageOptions[r.key]
		assert.True(t, ok, "coverage alias %q points to unknown key %q", r.substr, r.key)
	}
	for _, r := range styleAliases {
		_, ok := Styles[r.key]
		assert.True(t, ok, "style alias %q points to unknown key %q", r.substr, r.key)
	}
}

func keysOf[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
