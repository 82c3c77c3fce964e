package probe

import (
	"encoding/json"
	"fmt"
)

// Severity is the outcome of a check, ordered so that combining results
// with Max never lowers a severity once raised.
type Severity int

const (
	OK Severity = iota
	Warning
	Critical
	Unknown
)

var severityNames = map[Severity]string{
	OK:       "OK",
	Warning:  "WARNING",
	Critical: "CRITICAL",
	Unknown:  "UNKNOWN",
}

func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

// ExitCode maps a severity to the monitoring-plugin exit code convention.
func (s Severity) ExitCode() int {
	return int(s)
}

func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Max returns the higher of two severities.
func Max(a, b Severity) Severity {
	if b > a {
		return b
	}
	return a
}

// Result is the standard output format for probes.
type Result struct {
	Pool     string         `json:"pool,omitempty"`
	Severity Severity       `json:"severity"`
	Message  string         `json:"message"`
	Metrics  map[string]any `json:"metrics,omitempty"`
}

// Description is the self-description format for probes.
type Description struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Version     string    `json:"version"`
	Subcommand  string    `json:"subcommand"`
	Arguments   Arguments `json:"arguments"`
}

// Arguments describes required and optional probe arguments.
type Arguments struct {
	Required map[string]ArgumentSpec `json:"required,omitempty"`
	Optional map[string]ArgumentSpec `json:"optional,omitempty"`
}

// ArgumentSpec describes a single argument.
type ArgumentSpec struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Default     any    `json:"default,omitempty"`
}
