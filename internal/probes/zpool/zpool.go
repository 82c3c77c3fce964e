// Package zpool provides the storage-pool health probe: it parses the pool
// listing and per-pool status reports and evaluates them against layered
// warning/critical thresholds.
package zpool

import (
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"time"

	units "github.com/docker/go-units"
	"github.com/pbhenson/icinga-plugins/internal/config"
	"github.com/pbhenson/icinga-plugins/internal/probe"
)

// Name is the probe subcommand name.
const Name = "zpool"

// ErrNoPools is returned when no pool survives the include/exclude filters.
var ErrNoPools = errors.New("no pools found")

// GetDescription returns the probe description.
func GetDescription() probe.Description {
	return probe.Description{
		Name:        "zpool",
		Description: "Check storage pool health, capacity, scrub age, and error counters",
		Version:     "1.0.0",
		Subcommand:  Name,
		Arguments: probe.Arguments{
			Optional: map[string]probe.ArgumentSpec{
				"include": {
					Type:        "string",
					Description: "Pool names to evaluate (repeatable; default all)",
				},
				"exclude": {
					Type:        "string",
					Description: "Pool names to skip (repeatable)",
				},
				"warning": {
					Type:        "string",
					Description: "Warning threshold override as pool.category.value (repeatable)",
				},
				"critical": {
					Type:        "string",
					Description: "Critical threshold override as pool.category.value (repeatable)",
				},
			},
		},
	}
}

// Check runs the pool listing, filters pools, and evaluates each surviving
// pool in listing order. Any fatal condition aborts the whole run with no
// partial results.
func Check(cfg *config.ZpoolConfig, registry *Registry) ([]probe.Result, error) {
	listing, err := runCommand(cfg.ListCmd)
	if err != nil {
		return nil, err
	}
	pools, err := ParseList(listing)
	if err != nil {
		return nil, err
	}

	include := toSet(cfg.Include)
	exclude := toSet(cfg.Exclude)

	var results []probe.Result
	for _, pool := range pools {
		if len(include) > 0 && !include[pool.Name] {
			continue
		}
		if exclude[pool.Name] {
			continue
		}
		slog.Debug("evaluating pool",
			"pool", pool.Name,
			"health", pool.Health,
			"leaked", units.HumanSize(float64(pool.Leaked)))

		argv := append(append([]string{}, cfg.StatusCmd...), pool.Name)
		output, err := runCommand(argv)
		if err != nil {
			return nil, err
		}
		report, err := ParseStatus(output)
		if err != nil {
			return nil, fmt.Errorf("pool %s: %w", pool.Name, err)
		}
		result, err := Evaluate(pool, report, registry, time.Now())
		if err != nil {
			return nil, fmt.Errorf("pool %s: %w", pool.Name, err)
		}
		results = append(results, result)
	}

	if len(results) == 0 {
		return nil, ErrNoPools
	}
	return results, nil
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}

func runCommand(argv []string) (string, error) {
	slog.Debug("running command", "argv", argv)
	cmd := exec.Command(argv[0], argv[1:]...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("%s failed: %w", argv[0], err)
	}
	return string(output), nil
}
