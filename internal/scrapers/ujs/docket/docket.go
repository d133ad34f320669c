// Package docket parses the docket numbers of the two court systems on the
// portal and maps magisterial district codes to county names.
package docket

import (
	"fmt"
	"regexp"
	"strings"
)

type System string

const (
	// SystemCP is the Court of Common Pleas (and Philadelphia Municipal Court).
	SystemCP System = "CP"
	// SystemMDJ is the Magisterial District Judge courts.
	SystemMDJ System = "MDJ"
)

// Systems lists every system in the order docket numbers are classified.
var Systems = []System{SystemCP, SystemMDJ}

func ParseSystem(raw string) (System, error) {
	system := System(strings.ToUpper(strings.TrimSpace(raw)))
	for _, s := range Systems {
		if s == system {
			return s, nil
		}
	}
	return "", fmt.Errorf("unsupported court: %q", raw)
}

var grammars = map[System]*regexp.Regexp{
	SystemCP:  regexp.MustCompile(`^(?i)(CP|MC)-(\d{2})-(CR|MD|MJ|SA|SU|JV|CV)-(\d{7})-(\d{4})$`),
	SystemMDJ: regexp.MustCompile(`^(?i)(MJ)-(\d{2})(\d{3})-(CR|CV|LT|NT|TR)-(\d{7})-(\d{4})$`),
}

// DocketNumber is a parsed docket number, every field is upper case.
type DocketNumber struct {
	System System
	// CP, MC or MJ
	Court string
	// the two digit county (judicial district) code
	Area string
	// the three digit court office code, only set for MDJ dockets
	Office   string
	Type     string
	Sequence string
	Year     string
}

func (d DocketNumber) String() string {
	if d.System == SystemMDJ {
		return fmt.Sprintf("%s-%s%s-%s-%s-%s", d.Court, d.Area, d.Office, d.Type, d.Sequence, d.Year)
	}
	return fmt.Sprintf("%s-%s-%s-%s-%s", d.Court, d.Area, d.Type, d.Sequence, d.Year)
}

// OfficeCode is the value of the court office dropdown on the MDJ docket
// search, the county code is posted without its leading zero.
func (d DocketNumber) OfficeCode() string {
	return strings.TrimLeft(d.Area, "0") + d.Office
}

// ValidationError is returned for input that is not a docket number of the
// expected system.
type ValidationError struct {
	Input  string
	System System
}

func (e ValidationError) Error() string {
	if e.System == "" {
		return fmt.Sprintf("%q is not a correctly formatted docket number", e.Input)
	}
	return fmt.Sprintf("%q is not a correctly formatted %s docket number", e.Input, e.System)
}

// Classify reports which system's grammar `raw` matches, CP is tried first.
func Classify(raw string) (System, bool) {
	trimmed := strings.TrimSpace(raw)
	for _, system := range Systems {
		if grammars[system].MatchString(trimmed) {
			return system, true
		}
	}
	return "", false
}

// ParseAs parses `raw` with the grammar of one system.
func ParseAs(system System, raw string) (DocketNumber, error) {
	grammar, ok := grammars[system]
	if !ok {
		return DocketNumber{}, fmt.Errorf("unsupported court: %q", system)
	}
	match := grammar.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(raw)))
	if match == nil {
		return DocketNumber{}, ValidationError{Input: raw, System: system}
	}

	if system == SystemMDJ {
		return DocketNumber{
			System:   system,
			Court:    match[1],
			Area:     match[2],
			Office:   match[3],
			Type:     match[4],
			Sequence: match[5],
			Year:     match[6],
		}, nil
	}
	return DocketNumber{
		System:   system,
		Court:    match[1],
		Area:     match[2],
		Type:     match[3],
		Sequence: match[4],
		Year:     match[5],
	}, nil
}

// Parse classifies `raw` and parses it with the matching grammar.
func Parse(raw string) (DocketNumber, error) {
	system, ok := Classify(raw)
	if !ok {
		return DocketNumber{}, ValidationError{Input: raw}
	}
	return ParseAs(system, raw)
}
