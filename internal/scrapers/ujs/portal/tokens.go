package portal

import (
	"regexp"
	"strings"
)

const (
	NonceField              = "ctl00$ctl00$ctl00$ctl07$captchaAnswer"
	ViewstateField          = "__VIEWSTATE"
	ViewstateGeneratorField = "__VIEWSTATEGENERATOR"
	EventTargetField        = "__EVENTTARGET"
	EventArgumentField      = "__EVENTARGUMENT"
	AsyncPostField          = "__ASYNCPOST"
)

// the nonce is assigned to a hidden input by an inline script:
// document.getElementById( '..._captchaAnswer' ).value = '-1234';
var nonceRegex = regexp.MustCompile(`captchaAnswer'\s*\)\.value\s*=\s*'(-?\d+)'\s*;`)

var viewstateInputRegex = regexp.MustCompile(`<input[^>]*\bname="__VIEWSTATE"[^>]*\bvalue="([^"]*)"`)
var viewstateInputRevRegex = regexp.MustCompile(`<input[^>]*\bvalue="([^"]*)"[^>]*\bname="__VIEWSTATE"`)
var viewstateDeltaRegex = regexp.MustCompile(`\|hiddenField\|__VIEWSTATE\|([^|]*)\|`)

// ExtractNonce finds the anti-automation nonce in a full page or partial page response.
func ExtractNonce(text string) (string, bool) {
	match := nonceRegex.FindStringSubmatch(text)
	if match == nil {
		return "", false
	}
	return match[1], true
}

// ExtractViewstate finds the view state in either a full page (hidden input)
// or a partial page (hiddenField record) response.
func ExtractViewstate(text string) (string, bool) {
	for _, re := range []*regexp.Regexp{
		viewstateDeltaRegex,
		viewstateInputRegex,
		viewstateInputRevRegex,
	} {
		match := re.FindStringSubmatch(text)
		if match != nil && strings.TrimSpace(match[1]) != "" {
			return match[1], true
		}
	}
	return "", false
}

// Tokens are the values harvested out of one response that must be
// echoed back on the next request.
type Tokens struct {
	Nonce     string
	Viewstate string
}

// ExtractTokens requires both tokens to be present in `text`.
func ExtractTokens(text string) (Tokens, error) {
	nonce, ok := ExtractNonce(text)
	if !ok {
		return Tokens{}, MissingTokenError{Token: "nonce"}
	}
	viewstate, ok := ExtractViewstate(text)
	if !ok {
		return Tokens{}, MissingTokenError{Token: "viewstate"}
	}
	return Tokens{Nonce: nonce, Viewstate: viewstate}, nil
}

// Form renders the tokens as the fields they are posted back as.
func (t Tokens) Form() Form {
	return Form{
		NonceField:     t.Nonce,
		ViewstateField: t.Viewstate,
	}
}
