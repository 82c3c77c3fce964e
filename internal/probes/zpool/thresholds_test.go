package zpool

import (
	"testing"

	"github.com/pbhenson/icinga-plugins/internal/probe"
)

func TestResolvePrecedence(t *testing.T) {
	registry := NewRegistry()
	if err := registry.SetWarning("tank.capacity.60"); err != nil {
		t.Fatalf("SetWarning() error = %v", err)
	}
	if err := registry.SetCritical("tank.capacity.90"); err != nil {
		t.Fatalf("SetCritical() error = %v", err)
	}

	tests := []struct {
		name     string
		pool     string
		category string
		want     Bounds
	}{
		{
			name:     "pool override wins",
			pool:     "tank",
			category: "capacity",
			want:     Bounds{Warning: 60, Critical: 90},
		},
		{
			name:     "other pool unaffected",
			pool:     "backup",
			category: "capacity",
			want:     Bounds{Warning: 70, Critical: 80},
		},
		{
			name:     "unrelated category falls back to wildcard",
			pool:     "tank",
			category: "frag",
			want:     Bounds{Warning: 50, Critical: 75},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := registry.Resolve(tt.pool, tt.category)
			if got != tt.want {
				t.Errorf("Resolve(%s, %s) = %+v, want %+v", tt.pool, tt.category, got, tt.want)
			}
		})
	}
}

func TestPartialOverrideKeepsOtherBound(t *testing.T) {
	registry := NewRegistry()
	if err := registry.SetWarning("tank.frag.30"); err != nil {
		t.Fatalf("SetWarning() error = %v", err)
	}
	got := registry.Resolve("tank", "frag")
	if got.Warning != 30 || got.Critical != 75 {
		t.Errorf("Resolve() = %+v, want warning 30 and wildcard critical 75", got)
	}
}

func TestWildcardOverride(t *testing.T) {
	registry := NewRegistry()
	if err := registry.SetCritical("*.capacity.95"); err != nil {
		t.Fatalf("SetCritical() error = %v", err)
	}
	got := registry.Resolve("anything", "capacity")
	if got.Critical != 95 {
		t.Errorf("Resolve() critical = %d, want 95", got.Critical)
	}
}

func TestLastOverrideWins(t *testing.T) {
	registry := NewRegistry()
	if err := registry.SetWarning("tank.capacity.60"); err != nil {
		t.Fatalf("SetWarning() error = %v", err)
	}
	if err := registry.SetWarning("tank.capacity.65"); err != nil {
		t.Fatalf("SetWarning() error = %v", err)
	}
	if got := registry.Resolve("tank", "capacity").Warning; got != 65 {
		t.Errorf("Resolve() warning = %d, want 65", got)
	}
}

func TestUnknownCategoryIsFatal(t *testing.T) {
	registry := NewRegistry()
	if err := registry.SetWarning("tank.bogus.10"); err == nil {
		t.Error("SetWarning() with unknown category should fail")
	}
	if err := registry.SetCritical("tank.bogus.10"); err == nil {
		t.Error("SetCritical() with unknown category should fail")
	}
}

func TestMalformedOverride(t *testing.T) {
	registry := NewRegistry()
	for _, triple := range []string{"", "capacity.70", "tank.capacity.x"} {
		if err := registry.SetWarning(triple); err == nil {
			t.Errorf("SetWarning(%q) should fail", triple)
		}
	}
}

func TestDottedPoolName(t *testing.T) {
	registry := NewRegistry()
	if err := registry.SetWarning("tank.old.capacity.60"); err != nil {
		t.Fatalf("SetWarning() error = %v", err)
	}
	if got := registry.Resolve("tank.old", "capacity").Warning; got != 60 {
		t.Errorf("Resolve() warning = %d, want 60", got)
	}
}

func TestCheckSemantics(t *testing.T) {
	registry := NewRegistry()

	tests := []struct {
		name     string
		category string
		value    int64
		want     probe.Severity
	}{
		{"capacity under warning", "capacity", 50, probe.OK},
		{"capacity at warning bound", "capacity", 70, probe.OK},
		{"capacity over warning", "capacity", 75, probe.Warning},
		{"capacity over critical", "capacity", 85, probe.Critical},
		{"zero leak is ok", "leaked", 0, probe.OK},
		{"any positive leak is critical", "leaked", 1, probe.Critical},
		{"any read error is critical", "read_err", 1, probe.Critical},
		{"scrub age under warning", "scrub", 3, probe.OK},
		{"scrub age over warning", "scrub", 12, probe.Warning},
		{"scrub age over critical", "scrub", 15, probe.Critical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := registry.Check("tank", tt.category, tt.value)
			if got != tt.want {
				t.Errorf("Check(%s, %d) = %v, want %v", tt.category, tt.value, got, tt.want)
			}
		})
	}
}
