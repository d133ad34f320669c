package docket

import (
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"sync"
)

//go:embed counties.csv
var countiesCsv string

var ErrCountyNotFound = errors.New("no county matches court code")
var ErrAmbiguousCounty = errors.New("more than one county matches court code")

// CountyError describes a lookup that did not resolve to exactly one county.
type CountyError struct {
	Key      string
	Counties []string
	Err      error
}

func (e CountyError) Error() string {
	if len(e.Counties) > 0 {
		return fmt.Sprintf("%s %s: %s", e.Err.Error(), e.Key, strings.Join(e.Counties, ", "))
	}
	return fmt.Sprintf("%s %s", e.Err.Error(), e.Key)
}

func (e CountyError) Unwrap() error {
	return e.Err
}

type countyRow struct {
	name    string
	pattern *regexp.Regexp
}

// CountyTable maps the five digit county + office code of an MDJ docket
// number to the name of the county the office is in.
type CountyTable struct {
	rows []countyRow
}

// LoadCountyTable reads a CSV with the header `County,regex`. Every row's
// regex is matched against the five digit code. The table is rejected when
// any five digit code would match more than one county.
func LoadCountyTable(r io.Reader) (*CountyTable, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.New("county table is empty")
	}

	header := records[0]
	nameCol, regexCol := -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "county":
			nameCol = i
		case "regex":
			regexCol = i
		}
	}
	if nameCol < 0 || regexCol < 0 {
		return nil, fmt.Errorf("county table header must have County and regex columns, got %v", header)
	}

	table := &CountyTable{}
	for line, record := range records[1:] {
		pattern, err := regexp.Compile(record[regexCol])
		if err != nil {
			return nil, fmt.Errorf("county table row %d: %w", line+2, err)
		}
		table.rows = append(table.rows, countyRow{
			name:    strings.TrimSpace(record[nameCol]),
			pattern: pattern,
		})
	}

	err = table.validate()
	if err != nil {
		return nil, err
	}
	return table, nil
}

func (t *CountyTable) validate() error {
	for i := 0; i < 100000; i++ {
		key := fmt.Sprintf("%05d", i)
		matches := t.match(key)
		if len(matches) > 1 {
			return CountyError{Key: key, Counties: matches, Err: ErrAmbiguousCounty}
		}
	}
	return nil
}

func (t *CountyTable) match(key string) []string {
	var matches []string
	for _, row := range t.rows {
		if row.pattern.MatchString(key) {
			matches = append(matches, row.name)
		}
	}
	return matches
}

// Lookup returns the county an `area` + `office` code belongs to.
func (t *CountyTable) Lookup(area, office string) (string, error) {
	key := area + office
	matches := t.match(key)
	switch len(matches) {
	case 0:
		return "", CountyError{Key: key, Err: ErrCountyNotFound}
	case 1:
		return matches[0], nil
	default:
		return "", CountyError{Key: key, Counties: matches, Err: ErrAmbiguousCounty}
	}
}

// Counties lists every county name in the table, in table order.
func (t *CountyTable) Counties() []string {
	var names []string
	seen := map[string]bool{}
	for _, row := range t.rows {
		if seen[row.name] {
			continue
		}
		seen[row.name] = true
		names = append(names, row.name)
	}
	return names
}

var defaultCountyTable = sync.OnceValues(func() (*CountyTable, error) {
	return LoadCountyTable(strings.NewReader(countiesCsv))
})

// DefaultCountyTable is the county table embedded into the binary.
func DefaultCountyTable() (*CountyTable, error) {
	return defaultCountyTable()
}
