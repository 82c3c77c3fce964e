package zpool

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// ScanKind classifies the scan/scrub/resilver sentence of a status report.
type ScanKind int

const (
	ScanNone ScanKind = iota
	ScrubCompleted
	ResilverCompleted
	ScrubInProgress
	ResilverInProgress
)

// Anomaly flags carried by a ScanState. Their names appear verbatim in the
// assembled message.
const (
	FlagRepaired       = "REPAIRED"
	FlagErrors         = "ERRORS"
	FlagResilverErrors = "RSVLR_ERRORS"
	FlagResilver       = "RSVLR"
)

// ScanState is the interpreted scan sentence: its shape, the elapsed age in
// days when one can be derived, and any anomaly flags.
type ScanState struct {
	Kind   ScanKind
	Days   int64
	HasAge bool
	Flags  []string
}

const scanTimeLayout = "Mon Jan _2 15:04:05 2006"

// Timestamps are a fixed locale-independent "<weekday> <month> <day>
// <HH:MM:SS> <year>" pattern.
const timestampPattern = `[A-Za-z]{3} +[A-Za-z]{3} +\d{1,2} +\d{2}:\d{2}:\d{2} +\d{4}`

// The four recognized sentence shapes, tried in order; first match wins.
var (
	scrubDoneRe        = regexp.MustCompile(`scrub repaired (\S+) in .* with (\d+) errors on (` + timestampPattern + `)`)
	resilverDoneRe     = regexp.MustCompile(`resilvered .* with (\d+) errors on`)
	scrubProgressRe    = regexp.MustCompile(`scrub in progress since (` + timestampPattern + `)`)
	resilverProgressRe = regexp.MustCompile(`resilver in progress since`)
)

// InterpretScan classifies the scan sentence. A sentence matching none of
// the four shapes yields ScanNone without error; callers surface that as an
// unknown-age condition. A timestamp that fails to parse is fatal.
func InterpretScan(text string, now time.Time) (ScanState, error) {
	if m := scrubDoneRe.FindStringSubmatch(text); m != nil {
		days, err := elapsedDays(m[3], now)
		if err != nil {
			return ScanState{}, err
		}
		state := ScanState{Kind: ScrubCompleted, Days: days, HasAge: true}
		if m[1] != "0B" {
			state.Flags = append(state.Flags, FlagRepaired)
		}
		if m[2] != "0" {
			state.Flags = append(state.Flags, FlagErrors)
		}
		return state, nil
	}
	if m := resilverDoneRe.FindStringSubmatch(text); m != nil {
		state := ScanState{Kind: ResilverCompleted}
		if m[1] != "0" {
			state.Flags = append(state.Flags, FlagResilverErrors)
		}
		return state, nil
	}
	if m := scrubProgressRe.FindStringSubmatch(text); m != nil {
		days, err := elapsedDays(m[1], now)
		if err != nil {
			return ScanState{}, err
		}
		return ScanState{Kind: ScrubInProgress, Days: days, HasAge: true}, nil
	}
	if resilverProgressRe.MatchString(text) {
		return ScanState{Kind: ResilverInProgress, Flags: []string{FlagResilver}}, nil
	}
	return ScanState{Kind: ScanNone}, nil
}

func elapsedDays(timestamp string, now time.Time) (int64, error) {
	t, err := time.ParseInLocation(scanTimeLayout, strings.TrimSpace(timestamp), now.Location())
	if err != nil {
		return 0, fmt.Errorf("cannot parse scan timestamp %q: %w", timestamp, err)
	}
	return int64(now.Sub(t).Seconds()) / 86400, nil
}
