package portal

import (
	"context"
	"docketsearch/lib/restyutil"
	"docketsearch/lib/telemetry"
	"fmt"
	"net/http/cookiejar"
	"net/url"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/time/rate"
)

const UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

const formContentType = "application/x-www-form-urlencoded; charset=utf-8"

// the portal serves a stripped down page to clients that do not look like a browser
var baselineHeaders = map[string]string{
	"User-Agent":                UserAgent,
	"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,image/apng,*/*;q=0.8",
	"Accept-Language":           "en-US,en;q=0.9",
	"Cache-Control":             "max-age=0",
	"Upgrade-Insecure-Requests": "1",
	"Connection":                "keep-alive",
}

// AjaxHeaders are the headers a browser sends along with a partial page
// (update panel) postback that originated from `referer`.
func AjaxHeaders(referer *url.URL) map[string]string {
	return map[string]string{
		"Accept":           "*/*",
		"Cache-Control":    "no-cache",
		"X-Requested-With": "XMLHttpRequest",
		"X-MicrosoftAjax":  "Delta=true",
		"Origin":           Origin(referer).String(),
		"Referer":          referer.String(),
	}
}

// Origin strips everything but the scheme and host off of `u`.
func Origin(u *url.URL) *url.URL {
	return &url.URL{Scheme: u.Scheme, Host: u.Host}
}

type Options struct {
	// defaults to 30 seconds
	Timeout time.Duration
	// 0 means requests are not rate limited
	RequestsPerSecond float64
	// when set, every request/response pair is written to it
	Dump       restyutil.InstrumentOutput
	DumpPrefix string
}

// Session is a single cookie/token lineage against one portal origin.
// It must not be shared between concurrent searches.
type Session struct {
	origin *url.URL
	http   *resty.Client
}

func NewSession(endpoint string, opts Options) (*Session, error) {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, err
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("portal endpoint must be absolute: %q", endpoint)
	}

	client := resty.New()
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeaders(baselineHeaders)
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(parsed.Hostname()))

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = time.Second * 30
	}
	client.SetTimeout(timeout)

	if opts.RequestsPerSecond > 0 {
		burst := int(opts.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		rateLimiter := rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
		client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			return rateLimiter.Wait(req.Context())
		})
	}

	telemetry.InstrumentResty(client, "docketsearch/ujs/http")
	restyutil.InstrumentClient(client, opts.DumpPrefix, opts.Dump)

	return &Session{
		origin: Origin(parsed),
		http:   client,
	}, nil
}

// Origin is the scheme and host every relative link of this portal resolves against.
func (s *Session) Origin() *url.URL {
	return s.origin
}

func (s *Session) resolve(link string) (string, error) {
	parsed, err := url.Parse(link)
	if err != nil {
		return "", err
	}
	return s.origin.ResolveReference(parsed).String(), nil
}

// Fetch GETs `link`. Any non-success status is an error and yields an empty body.
func (s *Session) Fetch(ctx context.Context, link string) (string, error) {
	target, err := s.resolve(link)
	if err != nil {
		return "", err
	}

	res, err := s.http.R().
		SetContext(ctx).
		Get(target)
	if err != nil {
		return "", fmt.Errorf("GET %s: %w", target, err)
	}
	if res.IsError() {
		return "", StatusError{Method: "GET", Url: target, Status: res.StatusCode()}
	}
	return res.String(), nil
}

// Submit POSTs `form` url-encoded to `link`, `extraHeaders` are laid over the
// baseline browser headers. Any non-success status is an error and yields an empty body.
func (s *Session) Submit(ctx context.Context, link string, form Form, extraHeaders map[string]string) (string, error) {
	target, err := s.resolve(link)
	if err != nil {
		return "", err
	}

	req := s.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", formContentType).
		SetFormDataFromValues(form.Values())
	if len(extraHeaders) > 0 {
		req.SetHeaders(extraHeaders)
	}

	res, err := req.Post(target)
	if err != nil {
		return "", fmt.Errorf("POST %s: %w", target, err)
	}
	if res.IsError() {
		return "", StatusError{Method: "POST", Url: target, Status: res.StatusCode()}
	}
	return res.String(), nil
}
