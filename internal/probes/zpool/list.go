package zpool

import (
	"fmt"
	"strconv"
	"strings"
)

// PoolSummary is one row of the pool listing command output.
type PoolSummary struct {
	Name     string
	Capacity int64
	Frag     int64
	Leaked   int64
	Health   string
}

// ParseList parses the tab-separated pool listing: name, capacity%,
// fragmentation%, leaked, health. Percent signs are stripped before use.
func ParseList(output string) ([]PoolSummary, error) {
	var pools []PoolSummary
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 5 {
			return nil, fmt.Errorf("malformed zpool list row %q", line)
		}
		capacity, err := parsePercent(fields[1])
		if err != nil {
			return nil, fmt.Errorf("malformed capacity in %q: %w", line, err)
		}
		frag, err := parsePercent(fields[2])
		if err != nil {
			return nil, fmt.Errorf("malformed fragmentation in %q: %w", line, err)
		}
		leaked, err := strconv.ParseInt(strings.TrimSpace(fields[3]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed leaked count in %q: %w", line, err)
		}
		pools = append(pools, PoolSummary{
			Name:     strings.TrimSpace(fields[0]),
			Capacity: capacity,
			Frag:     frag,
			Leaked:   leaked,
			Health:   strings.TrimSpace(fields[4]),
		})
	}
	return pools, nil
}

func parsePercent(s string) (int64, error) {
	return strconv.ParseInt(strings.TrimSuffix(strings.TrimSpace(s), "%"), 10, 64)
}
