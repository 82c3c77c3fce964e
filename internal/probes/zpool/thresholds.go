package zpool

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pbhenson/icinga-plugins/internal/probe"
)

// Wildcard is the pool name that supplies default bounds for every pool.
const Wildcard = "*"

// Categories is the closed set of threshold categories.
var Categories = []string{
	"capacity",
	"frag",
	"leaked",
	"scrub",
	"cksum_err",
	"read_err",
	"write_err",
}

// Bounds is a warning/critical pair for one category. A value breaches
// critical when it exceeds Critical, warning when it exceeds Warning, so a
// 0/0 pair makes any positive value an immediate critical.
type Bounds struct {
	Warning  int64
	Critical int64
}

type partialBounds struct {
	warning  *int64
	critical *int64
}

// Registry resolves effective warning/critical bounds per (pool, category).
// It is fully constructed before evaluation starts and never mutated after.
type Registry struct {
	pools map[string]map[string]*partialBounds
}

// NewRegistry returns a registry populated with the wildcard defaults.
func NewRegistry() *Registry {
	defaults := map[string]Bounds{
		"capacity":  {Warning: 70, Critical: 80},
		"frag":      {Warning: 50, Critical: 75},
		"leaked":    {Warning: 0, Critical: 0},
		"scrub":     {Warning: 10, Critical: 14},
		"cksum_err": {Warning: 0, Critical: 0},
		"read_err":  {Warning: 0, Critical: 0},
		"write_err": {Warning: 0, Critical: 0},
	}
	wildcard := make(map[string]*partialBounds, len(defaults))
	for category, b := range defaults {
		warning, critical := b.Warning, b.Critical
		wildcard[category] = &partialBounds{warning: &warning, critical: &critical}
	}
	return &Registry{pools: map[string]map[string]*partialBounds{Wildcard: wildcard}}
}

func validCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// splitOverride splits a "pool.category.value" triple from the right, so
// pool names containing periods survive intact.
func splitOverride(triple string) (pool, category, value string, err error) {
	i := strings.LastIndex(triple, ".")
	if i <= 0 {
		return "", "", "", fmt.Errorf("malformed threshold override %q", triple)
	}
	value = triple[i+1:]
	j := strings.LastIndex(triple[:i], ".")
	if j <= 0 {
		return "", "", "", fmt.Errorf("malformed threshold override %q", triple)
	}
	return triple[:j], triple[j+1:i], value, nil
}

func (r *Registry) bounds(pool, category string) *partialBounds {
	categories, ok := r.pools[pool]
	if !ok {
		categories = make(map[string]*partialBounds)
		r.pools[pool] = categories
	}
	b, ok := categories[category]
	if !ok {
		b = &partialBounds{}
		categories[category] = b
	}
	return b
}

// SetWarning applies one warning override triple. Later overrides for the
// same (pool, category) replace earlier ones. An unknown category is a
// configuration error and must abort before any evaluation begins.
func (r *Registry) SetWarning(triple string) error {
	pool, category, value, err := splitOverride(triple)
	if err != nil {
		return err
	}
	if !validCategory(category) {
		return fmt.Errorf("unknown threshold category %q in %q", category, triple)
	}
	v, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid threshold value in %q: %w", triple, err)
	}
	r.bounds(pool, category).warning = &v
	return nil
}

// SetCritical applies one critical override triple.
func (r *Registry) SetCritical(triple string) error {
	pool, category, value, err := splitOverride(triple)
	if err != nil {
		return err
	}
	if !validCategory(category) {
		return fmt.Errorf("unknown threshold category %q in %q", category, triple)
	}
	v, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid threshold value in %q: %w", triple, err)
	}
	r.bounds(pool, category).critical = &v
	return nil
}

// Resolve returns the effective bounds for a (pool, category): the
// pool-specific override where one exists, the wildcard entry otherwise,
// independently for the warning and critical sides.
func (r *Registry) Resolve(pool, category string) Bounds {
	wildcard := r.pools[Wildcard][category]
	b := Bounds{Warning: *wildcard.warning, Critical: *wildcard.critical}
	if override, ok := r.pools[pool][category]; ok {
		if override.warning != nil {
			b.Warning = *override.warning
		}
		if override.critical != nil {
			b.Critical = *override.critical
		}
	}
	return b
}

// Check compares a value against the resolved bounds for (pool, category).
func (r *Registry) Check(pool, category string, value int64) probe.Severity {
	b := r.Resolve(pool, category)
	switch {
	case value > b.Critical:
		return probe.Critical
	case value > b.Warning:
		return probe.Warning
	default:
		return probe.OK
	}
}
