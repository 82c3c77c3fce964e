// Package probes provides the built-in probe registry.
package probes

import (
	"github.com/pbhenson/icinga-plugins/internal/probe"
	"github.com/pbhenson/icinga-plugins/internal/probes/zpool"
)

// GetAllDescriptions returns descriptions of all built-in probes.
func GetAllDescriptions() []probe.Description {
	return []probe.Description{
		zpool.GetDescription(),
	}
}
