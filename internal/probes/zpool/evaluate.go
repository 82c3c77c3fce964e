package zpool

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pbhenson/icinga-plugins/internal/probe"
)

// SpareAvail is the only spare state that does not count as in use.
const SpareAvail = "AVAIL"

// NoKnownErrors is the errors field value reported by a healthy pool.
const NoKnownErrors = "No known data errors"

// ErrorTotals holds the error counters summed across the vdev tree.
type ErrorTotals struct {
	ReadErr  int64
	WriteErr int64
	CksumErr int64
}

// Aggregate sums read/write/checksum counters over every node of the vdev
// tree. Each physical device is counted once at its own node; spares never
// contribute.
func (t *ConfigTree) Aggregate() ErrorTotals {
	var totals ErrorTotals
	for _, node := range t.Vdevs {
		addNode(&totals, node)
	}
	return totals
}

func addNode(totals *ErrorTotals, node *DeviceNode) {
	totals.ReadErr += node.ReadErr
	totals.WriteErr += node.WriteErr
	totals.CksumErr += node.CksumErr
	for _, child := range node.Children {
		addNode(totals, child)
	}
}

// InUseSpares returns the names of spare devices not in state AVAIL.
func (t *ConfigTree) InUseSpares() []string {
	var inUse []string
	for name, state := range t.Spares {
		if state != SpareAvail {
			inUse = append(inUse, name)
		}
	}
	sort.Strings(inUse)
	return inUse
}

func healthSeverity(health string) probe.Severity {
	switch health {
	case "ONLINE":
		return probe.OK
	case "DEGRADED", "OFFLINE":
		return probe.Warning
	default:
		return probe.Critical
	}
}

// Evaluate combines pool health, threshold checks, scan state, pending
// status/action flags, and aggregated error counts into one severity and
// message. Every step may only raise the running severity, never lower it.
// The message layout is a user-facing contract; its pieces are appended in
// the order the checks run.
func Evaluate(summary PoolSummary, report *StatusReport, registry *Registry, now time.Time) (probe.Result, error) {
	severity := healthSeverity(summary.Health)
	var msg strings.Builder
	fmt.Fprintf(&msg, "%s: H=%s, C=%d%%, F%d%%, L=%d",
		summary.Name, summary.Health, summary.Capacity, summary.Frag, summary.Leaked)

	severity = probe.Max(severity, registry.Check(summary.Name, "capacity", summary.Capacity))
	severity = probe.Max(severity, registry.Check(summary.Name, "frag", summary.Frag))
	severity = probe.Max(severity, registry.Check(summary.Name, "leaked", summary.Leaked))

	scan, err := InterpretScan(report.Fields["scan"], now)
	if err != nil {
		return probe.Result{}, err
	}
	if scan.HasAge {
		fmt.Fprintf(&msg, ", S=%dd", scan.Days)
		severity = probe.Max(severity, registry.Check(summary.Name, "scrub", scan.Days))
	} else {
		msg.WriteString(", S=?d")
		severity = probe.Max(severity, probe.Warning)
	}
	if len(scan.Flags) > 0 {
		fmt.Fprintf(&msg, " (%s)", strings.Join(scan.Flags, "|"))
		severity = probe.Max(severity, probe.Warning)
	}

	if report.Fields["status"] != "" {
		severity = probe.Max(severity, probe.Warning)
		msg.WriteString(", status pending")
	}
	if report.Fields["action"] != "" {
		severity = probe.Max(severity, probe.Warning)
		msg.WriteString(", action pending")
	}
	if e := report.Fields["errors"]; e != "" && e != NoKnownErrors {
		severity = probe.Max(severity, probe.Critical)
		msg.WriteString(", errors")
	}

	if len(report.Config.InUseSpares()) > 0 {
		severity = probe.Max(severity, probe.Warning)
		msg.WriteString(", in-use spare")
	}

	totals := report.Config.Aggregate()
	counters := []struct {
		category string
		value    int64
	}{
		{"cksum_err", totals.CksumErr},
		{"read_err", totals.ReadErr},
		{"write_err", totals.WriteErr},
	}
	for _, c := range counters {
		if result := registry.Check(summary.Name, c.category, c.value); result != probe.OK {
			severity = probe.Max(severity, result)
			msg.WriteString(", " + c.category)
		}
	}

	return probe.Result{
		Pool:     summary.Name,
		Severity: severity,
		Message:  msg.String(),
		Metrics: map[string]any{
			"capacity":  summary.Capacity,
			"frag":      summary.Frag,
			"leaked":    summary.Leaked,
			"read_err":  totals.ReadErr,
			"write_err": totals.WriteErr,
			"cksum_err": totals.CksumErr,
		},
	}, nil
}
