// Package network provides the HTTP client used for remote lookups such as release checks.
package network

import (
	"net/http"
	"time"

	"github.com/flicker-player/flicker/constant"
)

// Client is shared by every remote lookup of the application.
var Client = &http.Client{
	Timeout:   10 * time.Second,
	Transport: &userAgent{next: newTransport()},
}

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConnsPerHost = 4
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 5 * time.Second
	return t
}

// userAgent identifies the application to remote APIs.
type userAgent struct {
	next http.RoundTripper
}

func (u *userAgent) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") != "" {
		return u.next.RoundTrip(req)
	}

	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", constant.Flicker+"/"+constant.Version)
	return u.next.RoundTrip(req)
}
