package zpool

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrNoScanInfo is returned when a status report has no scan category at
// all. This aborts the run; a scan sentence that merely fails to match any
// known shape is handled as degraded data instead (see InterpretScan).
var ErrNoScanInfo = errors.New("no scan info found in zpool status")

// MalformedReportError reports a config line that matches none of the
// recognized device line shapes.
type MalformedReportError struct {
	Line string
}

func (e *MalformedReportError) Error() string {
	return fmt.Sprintf("unrecognized zpool status line %q", e.Line)
}

// DeviceNode is a vdev, mirror member, or leaf device in the config tree.
type DeviceNode struct {
	State    string
	ReadErr  int64
	WriteErr int64
	CksumErr int64
	Children map[string]*DeviceNode
}

// ConfigTree holds the parsed device hierarchy. Spares are kept apart from
// the vdev tree: they carry only a state and never participate in error
// aggregation.
type ConfigTree struct {
	Vdevs  map[string]*DeviceNode
	Spares map[string]string
}

// StatusReport is the parsed status output for one pool: free-text
// categories plus the config device tree.
type StatusReport struct {
	Fields map[string]string
	Config ConfigTree
}

// Device and category names: alphanumerics, underscore, colon, period,
// hyphen. Anything else where a name is expected makes the line malformed.
const namePattern = `[0-9A-Za-z_:.\-]+`

var (
	categoryRe = regexp.MustCompile(`^\s*([a-z_]+):\s?(.*)$`)
	depth0Re   = regexp.MustCompile(`^\t(` + namePattern + `)(?:\s+(.*))?$`)
	depth1Re   = regexp.MustCompile(`^\t {2}(` + namePattern + `)(?:\s+(.*))?$`)
	depth2Re   = regexp.MustCompile(`^\t {4}(` + namePattern + `)(?:\s+(.*))?$`)
)

// ParseStatus parses one pool's status report. Free-text categories are
// accumulated with "; " separators; config device lines are classified by
// indentation depth into a three-level tree. A config line matching no
// recognized shape is fatal, as is a report without a scan category.
func ParseStatus(output string) (*StatusReport, error) {
	report := &StatusReport{
		Fields: make(map[string]string),
		Config: ConfigTree{
			Vdevs:  make(map[string]*DeviceNode),
			Spares: make(map[string]string),
		},
	}

	var category string
	var topName string
	var top, mid *DeviceNode

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		if !strings.HasPrefix(line, "\t") {
			if m := categoryRe.FindStringSubmatch(line); m != nil {
				category = m[1]
				if category == "config" {
					continue
				}
				if rest := strings.TrimSpace(m[2]); rest != "" {
					report.appendField(category, rest)
				}
				continue
			}
			if category != "" && category != "config" {
				report.appendField(category, strings.TrimSpace(line))
				continue
			}
			return nil, &MalformedReportError{Line: line}
		}

		if category != "config" {
			// Wrapped free text is sometimes tab-indented too.
			if category != "" {
				report.appendField(category, strings.TrimSpace(line))
				continue
			}
			return nil, &MalformedReportError{Line: line}
		}

		if strings.HasPrefix(strings.TrimPrefix(line, "\t"), "NAME") {
			continue
		}

		switch {
		case depth0Re.MatchString(line):
			m := depth0Re.FindStringSubmatch(line)
			name, rest := m[1], m[2]
			if name == "spares" {
				topName = name
				top, mid = nil, nil
				continue
			}
			node, err := parseDeviceFields(rest, line)
			if err != nil {
				return nil, err
			}
			report.Config.Vdevs[name] = node
			topName, top, mid = name, node, nil

		case depth1Re.MatchString(line):
			m := depth1Re.FindStringSubmatch(line)
			name, rest := m[1], m[2]
			if topName == "spares" {
				state, err := parseSpareState(rest, line)
				if err != nil {
					return nil, err
				}
				report.Config.Spares[name] = state
				continue
			}
			if top == nil {
				return nil, &MalformedReportError{Line: line}
			}
			node, err := parseDeviceFields(rest, line)
			if err != nil {
				return nil, err
			}
			if top.Children == nil {
				top.Children = make(map[string]*DeviceNode)
			}
			top.Children[name] = node
			mid = node

		case depth2Re.MatchString(line):
			m := depth2Re.FindStringSubmatch(line)
			name, rest := m[1], m[2]
			if topName == "spares" {
				state, err := parseSpareState(rest, line)
				if err != nil {
					return nil, err
				}
				report.Config.Spares[name] = state
				continue
			}
			if mid == nil {
				return nil, &MalformedReportError{Line: line}
			}
			node, err := parseDeviceFields(rest, line)
			if err != nil {
				return nil, err
			}
			if mid.Children == nil {
				mid.Children = make(map[string]*DeviceNode)
			}
			mid.Children[name] = node

		default:
			return nil, &MalformedReportError{Line: line}
		}
	}

	if _, ok := report.Fields["scan"]; !ok {
		return nil, ErrNoScanInfo
	}
	return report, nil
}

func (r *StatusReport) appendField(category, text string) {
	if existing, ok := r.Fields[category]; ok && existing != "" {
		r.Fields[category] = existing + "; " + text
	} else {
		r.Fields[category] = text
	}
}

// parseDeviceFields parses "STATE READ WRITE CKSUM" after a device name.
// Trailing notes like "(resilvering)" are ignored.
func parseDeviceFields(rest, line string) (*DeviceNode, error) {
	fields := strings.Fields(rest)
	if len(fields) < 4 {
		return nil, &MalformedReportError{Line: line}
	}
	node := &DeviceNode{State: fields[0]}
	counters := []*int64{&node.ReadErr, &node.WriteErr, &node.CksumErr}
	for i, dst := range counters {
		v, err := strconv.ParseInt(fields[i+1], 10, 64)
		if err != nil || v < 0 {
			return nil, &MalformedReportError{Line: line}
		}
		*dst = v
	}
	return node, nil
}

func parseSpareState(rest, line string) (string, error) {
	fields := strings.Fields(rest)
	if len(fields) < 1 {
		return "", &MalformedReportError{Line: line}
	}
	return fields[0], nil
}
