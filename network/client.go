// Package network provides the HTTP transport shared by scrapers and page loaders.
package network

import (
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/pk-services/pks/key"
	"github.com/spf13/viper"
	"golang.org/x/net/http/httpproxy"
)

type clientKey struct {
	fingerprint bool
	timeout     time.Duration
}

var (
	clients   = make(map[clientKey]*http.Client)
	clientsMu sync.Mutex
)

// Client returns the shared client matching the current network settings.
// A zero network.timeout leaves requests without a deadline.
func Client() *http.Client {
	k := clientKey{
		fingerprint: viper.GetBool(key.NetworkTLSFingerprint),
		timeout:     time.Duration(max(viper.GetInt(key.NetworkTimeout), 0)) * time.Second,
	}

	clientsMu.Lock()
	defer clientsMu.Unlock()

	if c, ok := clients[k]; ok {
		return c
	}

	var rt http.RoundTripper
	if k.fingerprint {
		rt = newFingerprintTransport(k.timeout)
	} else {
		rt = newTransport()
	}

	c := &http.Client{Timeout: k.timeout, Transport: rt}
	clients[k] = c
	return c
}

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.Proxy = proxyFromEnvironment
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 10
	t.IdleConnTimeout = 30 * time.Second
	return t
}

// proxyFromEnvironment re-reads the proxy variables on every request.
// http.ProxyFromEnvironment caches them for the process lifetime, which would
// make EnableTor ineffective after the first request.
func proxyFromEnvironment(req *http.Request) (*url.URL, error) {
	return proxyFor(req.URL)
}

func proxyFor(u *url.URL) (*url.URL, error) {
	return httpproxy.FromEnvironment().ProxyFunc()(u)
}
