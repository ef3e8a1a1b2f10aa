package utils

import (
	"net/http"
	"net/http/cookiejar"
	"time"

	"golang.org/x/net/publicsuffix"
)

// Transport lets callers look at every request and response, e.g. to add
// an auth header or log status codes.
type Transport struct {
	tr        http.RoundTripper
	BeforeReq func(req *http.Request)
	AfterReq  func(resp *http.Response, req *http.Request)
}

func (t *Transport) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	if t.BeforeReq != nil {
		req = req.Clone(req.Context())
		t.BeforeReq(req)
	}
	resp, err = t.tr.RoundTrip(req)
	if err != nil {
		return
	}
	if t.AfterReq != nil {
		t.AfterReq(resp, req)
	}
	return
}

func NewTransport(tr http.RoundTripper) *Transport {
	t := &Transport{}
	if tr == nil {
		tr = http.DefaultTransport
	}
	t.tr = tr
	return t
}

// NewWithTransport returns a client with a cookie jar, so a server that
// also sets session cookies keeps working across requests.
func NewWithTransport(rt http.RoundTripper, timeout time.Duration) *http.Client {
	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	return &http.Client{
		Jar:       jar,
		Transport: rt,
		Timeout:   timeout,
	}
}

// BearerTransport adds "Authorization: Bearer <token>" to requests when
// token returns a non-empty value.
func BearerTransport(rt http.RoundTripper, token func() string) *Transport {
	t := NewTransport(rt)
	t.BeforeReq = func(req *http.Request) {
		if tok := token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}
	return t
}
