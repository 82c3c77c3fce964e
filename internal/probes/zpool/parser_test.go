package zpool

import (
	"errors"
	"testing"
)

const sampleStatus = `  pool: tank
 state: ONLINE
  scan: scrub repaired 0B in 0 days 02:00:00 with 0 errors on Mon Jan 01 00:00:00 2024
config:

	NAME        STATE     READ WRITE CKSUM
	tank        ONLINE       0     0     0
	  mirror-0  ONLINE       1     0     2
	    sda     ONLINE       0     0     0
	    sdb     ONLINE       0     3     0
	spares
	  sdc       AVAIL

errors: No known data errors
`

func TestParseStatusTree(t *testing.T) {
	report, err := ParseStatus(sampleStatus)
	if err != nil {
		t.Fatalf("ParseStatus() error = %v", err)
	}

	if got := report.Fields["state"]; got != "ONLINE" {
		t.Errorf("state field = %q, want ONLINE", got)
	}
	if got := report.Fields["errors"]; got != "No known data errors" {
		t.Errorf("errors field = %q", got)
	}

	tank, ok := report.Config.Vdevs["tank"]
	if !ok {
		t.Fatal("missing top-level vdev tank")
	}
	if tank.State != "ONLINE" {
		t.Errorf("tank state = %q, want ONLINE", tank.State)
	}

	mirror, ok := tank.Children["mirror-0"]
	if !ok {
		t.Fatal("missing mirror-0 under tank")
	}
	if mirror.ReadErr != 1 || mirror.CksumErr != 2 {
		t.Errorf("mirror-0 counters = %d/%d/%d, want 1/0/2", mirror.ReadErr, mirror.WriteErr, mirror.CksumErr)
	}

	sdb, ok := mirror.Children["sdb"]
	if !ok {
		t.Fatal("missing sdb under mirror-0")
	}
	if sdb.WriteErr != 3 {
		t.Errorf("sdb write errors = %d, want 3", sdb.WriteErr)
	}
	if sdb.Children != nil {
		t.Error("leaf device should have no children")
	}

	if _, ok := report.Config.Vdevs["spares"]; ok {
		t.Error("spares must not appear in the vdev tree")
	}
	if got := report.Config.Spares["sdc"]; got != "AVAIL" {
		t.Errorf("spare sdc state = %q, want AVAIL", got)
	}
}

func TestParseStatusFreeTextAccumulation(t *testing.T) {
	input := ` state: ONLINE
  scan: none requested
status: One or more devices has experienced an error.
	Applications are unaffected.
action: Determine if the device needs to be replaced.
`
	report, err := ParseStatus(input)
	if err != nil {
		t.Fatalf("ParseStatus() error = %v", err)
	}
	want := "One or more devices has experienced an error.; Applications are unaffected."
	if got := report.Fields["status"]; got != want {
		t.Errorf("status field = %q, want %q", got, want)
	}
	if got := report.Fields["action"]; got != "Determine if the device needs to be replaced." {
		t.Errorf("action field = %q", got)
	}
}

func TestParseStatusMalformed(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"bad name character", "\t$bad      ONLINE 0 0 0"},
		{"too deep", "\t      toodeep ONLINE 0 0 0"},
		{"missing counters", "\ttank      ONLINE 0 0"},
		{"non-numeric counter", "\ttank      ONLINE 0 x 0"},
		{"child without parent", "\t  orphan  ONLINE 0 0 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := "  scan: none requested\nconfig:\n" + tt.line + "\n"
			_, err := ParseStatus(input)
			var malformed *MalformedReportError
			if !errors.As(err, &malformed) {
				t.Errorf("ParseStatus() error = %v, want MalformedReportError", err)
			}
		})
	}
}

func TestParseStatusMissingScanIsFatal(t *testing.T) {
	input := ` state: ONLINE
config:
	tank ONLINE 0 0 0
`
	_, err := ParseStatus(input)
	if !errors.Is(err, ErrNoScanInfo) {
		t.Errorf("ParseStatus() error = %v, want ErrNoScanInfo", err)
	}
}

func TestParseStatusResilveringNoteIgnored(t *testing.T) {
	input := `  scan: resilver in progress since Mon Jan 01 00:00:00 2024
config:
	tank        DEGRADED     0     0     0
	  sda       ONLINE       0     0     0  (resilvering)
`
	report, err := ParseStatus(input)
	if err != nil {
		t.Fatalf("ParseStatus() error = %v", err)
	}
	if _, ok := report.Config.Vdevs["tank"].Children["sda"]; !ok {
		t.Error("missing sda under tank")
	}
}
