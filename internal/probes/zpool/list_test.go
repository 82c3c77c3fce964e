package zpool

import (
	"reflect"
	"testing"
)

func TestParseList(t *testing.T) {
	output := "tank\t50%\t10%\t0\tONLINE\nbackup\t82%\t61%\t128\tDEGRADED\n"
	pools, err := ParseList(output)
	if err != nil {
		t.Fatalf("ParseList() error = %v", err)
	}
	want := []PoolSummary{
		{Name: "tank", Capacity: 50, Frag: 10, Leaked: 0, Health: "ONLINE"},
		{Name: "backup", Capacity: 82, Frag: 61, Leaked: 128, Health: "DEGRADED"},
	}
	if !reflect.DeepEqual(pools, want) {
		t.Errorf("ParseList() = %+v, want %+v", pools, want)
	}
}

func TestParseListWithoutPercentSigns(t *testing.T) {
	pools, err := ParseList("tank\t50\t10\t0\tONLINE\n")
	if err != nil {
		t.Fatalf("ParseList() error = %v", err)
	}
	if pools[0].Capacity != 50 || pools[0].Frag != 10 {
		t.Errorf("ParseList() = %+v", pools[0])
	}
}

func TestParseListMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"too few fields", "tank\t50%\t10%\tONLINE\n"},
		{"non-numeric capacity", "tank\tfull\t10%\t0\tONLINE\n"},
		{"non-numeric leaked", "tank\t50%\t10%\tsome\tONLINE\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseList(tt.input); err == nil {
				t.Errorf("ParseList(%q) should fail", tt.input)
			}
		})
	}
}
