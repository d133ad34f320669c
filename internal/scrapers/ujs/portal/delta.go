package portal

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	DeltaUpdatePanel  = "updatePanel"
	DeltaHiddenField  = "hiddenField"
	DeltaScriptBlock  = "scriptBlock"
	DeltaPageRedirect = "pageRedirect"
)

// DeltaRecord is one record of a partial page (update panel) response.
type DeltaRecord struct {
	Type    string
	ID      string
	Content string
}

var deltaPrefixRegex = regexp.MustCompile(`^\d+\|`)

// IsDelta reports whether `body` looks like a partial page response rather than a full page.
func IsDelta(body string) bool {
	return deltaPrefixRegex.MatchString(body)
}

// ParseDelta splits a partial page response into its records.
// The response is a sequence of `length|type|id|content|` where length
// counts the characters of content.
func ParseDelta(body string) ([]DeltaRecord, error) {
	text := []rune(body)
	pos := 0

	readField := func() (string, error) {
		end := pos
		for end < len(text) && text[end] != '|' {
			end++
		}
		if end >= len(text) {
			return "", DeltaError{Offset: pos, Reason: "unterminated field"}
		}
		field := string(text[pos:end])
		pos = end + 1
		return field, nil
	}

	var records []DeltaRecord
	for pos < len(text) {
		if strings.TrimSpace(string(text[pos:])) == "" {
			break
		}

		start := pos
		rawLength, err := readField()
		if err != nil {
			return nil, err
		}
		length, err := strconv.Atoi(rawLength)
		if err != nil || length < 0 {
			return nil, DeltaError{Offset: start, Reason: "invalid record length " + strconv.Quote(rawLength)}
		}
		recordType, err := readField()
		if err != nil {
			return nil, err
		}
		id, err := readField()
		if err != nil {
			return nil, err
		}
		if pos+length >= len(text) || text[pos+length] != '|' {
			return nil, DeltaError{Offset: pos, Reason: "record content overruns response"}
		}
		content := string(text[pos : pos+length])
		pos += length + 1

		records = append(records, DeltaRecord{
			Type:    recordType,
			ID:      id,
			Content: content,
		})
	}
	return records, nil
}

// DeltaPanels concatenates the html of every updatePanel record.
func DeltaPanels(records []DeltaRecord) string {
	var sb strings.Builder
	for _, r := range records {
		if r.Type == DeltaUpdatePanel {
			sb.WriteString(r.Content)
		}
	}
	return sb.String()
}

// DeltaRedirect returns the location of a pageRedirect record, the portal
// sends one instead of results when it rejects a postback.
func DeltaRedirect(records []DeltaRecord) (string, bool) {
	for _, r := range records {
		if r.Type == DeltaPageRedirect {
			return r.Content, true
		}
	}
	return "", false
}
