// Package host is the page-load side of sabajs: it fetches script text
// and hands it to a js.Runtime.
package host

import (
	"errors"
	"fmt"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/superloach/sabajs/pkg/js"
)

// ErrStatus indicates the server answered with something other than 200.
var ErrStatus = errors.New("unexpected status")

const (
	defaultMaxRedirects = 5
	defaultTimeout      = 10 * time.Second
)

// Fetcher loads script sources over HTTP, following redirects.
type Fetcher struct {
	Client       *fasthttp.Client
	MaxRedirects int
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		Client: &fasthttp.Client{
			Name:         "sabajs",
			ReadTimeout:  defaultTimeout,
			WriteTimeout: defaultTimeout,
		},
		MaxRedirects: defaultMaxRedirects,
	}
}

// Fetch GETs url and returns the response body as script text.
func (f *Fetcher) Fetch(url string) (string, error) {
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)

	if err := f.Client.DoRedirects(req, resp, f.MaxRedirects); err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	if code := resp.StatusCode(); code != fasthttp.StatusOK {
		return "", fmt.Errorf("fetch %s: %w %d", url, ErrStatus, code)
	}
	return string(resp.Body()), nil
}

// Run fetches the script at url and executes it against env.
func (f *Fetcher) Run(url string, rt *js.Runtime, env *js.Environment) ([]js.Value, error) {
	src, err := f.Fetch(url)
	if err != nil {
		return nil, err
	}
	return rt.ExecSource(src, env)
}
