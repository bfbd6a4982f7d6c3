package network

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/pk-services/pks/constant"
	"github.com/pk-services/pks/key"
	"github.com/pk-services/pks/log"
	"github.com/spf13/viper"
)

// Response is a fully read page.
type Response struct {
	// URL is the final location after redirects.
	URL        *url.URL
	StatusCode int
	Header     http.Header
	Body       []byte
}

var validate = validator.New()

// ValidateURL reports whether raw is an absolute URL.
func ValidateURL(raw string) error {
	return validate.Var(raw, "required,url")
}

// Domain returns the network location of raw (host and optional port).
func Domain(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Host
}

// UserAgent returns the configured User-Agent header value.
func UserAgent() string {
	if ua := viper.GetString(key.NetworkUserAgent); ua != "" {
		return ua
	}
	return constant.UserAgent
}

func checkURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, wrap(InvalidURL, raw, err)
	}

	switch {
	case u.Scheme == "":
		return nil, wrap(MissingSchema, raw, fmt.Errorf("invalid URL %q: no scheme supplied", raw))
	case u.Scheme != "http" && u.Scheme != "https":
		return nil, wrap(InvalidSchema, raw, fmt.Errorf("no connection adapters were found for %q", raw))
	case u.Host == "":
		return nil, wrap(InvalidURL, raw, fmt.Errorf("invalid URL %q: no host supplied", raw))
	}

	return u, nil
}

// Get fetches raw and reads the whole body.
// Every failure, including a status of 400 or above, is returned as *Error.
func Get(ctx context.Context, raw string) (*Response, error) {
	u, err := checkURL(raw)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, wrap(InvalidURL, raw, err)
	}
	req.Header.Set("User-Agent", UserAgent())
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	log.WithField("url", raw).Debug("GET")
	resp, err := Client().Do(req)
	if err != nil {
		return nil, wrap(ConnectionError, raw, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, wrap(HTTPError, raw, fmt.Errorf("%s for url: %s", resp.Status, resp.Request.URL))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, wrap(ConnectionError, raw, err)
	}

	return &Response{
		URL:        resp.Request.URL,
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

// IsError reports whether err came from the transport layer.
func IsError(err error) bool {
	var e *Error
	return errors.As(err, &e)
}
