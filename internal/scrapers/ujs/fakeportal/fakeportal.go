// Package fakeportal serves scripted docket sheet pages for tests.
package fakeportal

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"
)

// Request is a request the fake portal received.
type Request struct {
	Index  int
	Method string
	Path   string
	Form   url.Values
	Header http.Header
}

// Partial reports whether the request was an update panel postback.
func (r Request) Partial() bool {
	return r.Header.Get("X-MicrosoftAjax") == "Delta=true"
}

type Response struct {
	Status int
	Body   string
}

type Handler func(req Request) Response

// Portal records every request and answers with whatever the handler returns.
type Portal struct {
	Server *httptest.Server

	mu       sync.Mutex
	requests []Request
}

func New(t testing.TB, handler Handler) *Portal {
	p := &Portal{}
	p.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := r.ParseForm()
		if err != nil {
			t.Errorf("parse form: %s", err.Error())
		}

		p.mu.Lock()
		req := Request{
			Index:  len(p.requests),
			Method: r.Method,
			Path:   r.URL.Path,
			Form:   r.PostForm,
			Header: r.Header.Clone(),
		}
		p.requests = append(p.requests, req)
		p.mu.Unlock()

		res := handler(req)
		if res.Status == 0 {
			res.Status = http.StatusOK
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(res.Status)
		w.Write([]byte(res.Body))
	}))
	t.Cleanup(p.Server.Close)
	return p
}

// URL is the absolute url of `path` on the fake portal.
func (p *Portal) URL(path string) string {
	return p.Server.URL + path
}

func (p *Portal) Requests() []Request {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Request(nil), p.requests...)
}

// Nonce is the nonce served on the response to the nth request.
func Nonce(n int) string {
	return fmt.Sprintf("-%d", 1000+n)
}

// Viewstate is the viewstate served on the response to the nth request.
func Viewstate(n int) string {
	return fmt.Sprintf("VS%dAAA/+=", n)
}

func nonceScript(nonce string) string {
	return fmt.Sprintf("document.getElementById( 'ctl00_ctl00_ctl00_ctl07_captchaAnswer' ).value = '%s';", nonce)
}

// Page wraps `body` in a full page carrying the tokens of the nth response.
func Page(n int, body string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html><head><title>Docket Sheets</title></head>
<body><form method="post" id="ctl01">
<div class="aspNetHidden">
<input type="hidden" name="__EVENTTARGET" id="__EVENTTARGET" value="" />
<input type="hidden" name="__VIEWSTATE" id="__VIEWSTATE" value="%s" />
</div>
%s
<script type="text/javascript">
//<![CDATA[
%s//]]>
</script>
</form></body></html>`, Viewstate(n), body, nonceScript(Nonce(n)))
}

func record(recordType, id, content string) string {
	return fmt.Sprintf("%d|%s|%s|%s|", utf8.RuneCountInString(content), recordType, id, content)
}

// Delta renders `panel` as a partial page response carrying the tokens of
// the nth response.
func Delta(n int, panel string) string {
	var sb strings.Builder
	sb.WriteString(record("#", "", "4"))
	sb.WriteString(record("updatePanel", "ctl00_ctl00_ctl00_cphMain_cphDynamicContent_upResults", panel))
	sb.WriteString(record("hiddenField", "__EVENTTARGET", ""))
	sb.WriteString(record("hiddenField", "__EVENTARGUMENT", ""))
	sb.WriteString(record("hiddenField", "__VIEWSTATE", Viewstate(n)))
	sb.WriteString(record("scriptBlock", "ScriptContentNoTags", nonceScript(Nonce(n))))
	return sb.String()
}

// Select renders a dropdown with the given option values.
func Select(name string, options ...string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<select name="%s" id="%s">`, name, strings.ReplaceAll(name, "$", "_"))
	sb.WriteString(`<option value="">Select...</option>`)
	for _, o := range options {
		fmt.Fprintf(&sb, `<option value="%s">%s</option>`, o, o)
	}
	sb.WriteString(`</select>`)
	return sb.String()
}
