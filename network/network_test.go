package network

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/pk-services/pks/key"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestGet(t *testing.T) {
	Convey("Given a test server", t, func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/ua":
				fmt.Fprint(w, r.Header.Get("User-Agent"))
			case "/redirect":
				http.Redirect(w, r, "/ua", http.StatusFound)
			case "/missing":
				http.NotFound(w, r)
			default:
				fmt.Fprint(w, "<html></html>")
			}
		}))
		defer server.Close()
		ctx := context.Background()

		Convey("The body is read and the user agent is sent", func() {
			viper.Set(key.NetworkUserAgent, "pks-test")
			defer viper.Set(key.NetworkUserAgent, "")

			resp, err := Get(ctx, server.URL+"/ua")
			So(err, ShouldBeNil)
			So(string(resp.Body), ShouldEqual, "pks-test")
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
		})

		Convey("The final URL follows redirects", func() {
			resp, err := Get(ctx, server.URL+"/redirect")
			So(err, ShouldBeNil)
			So(resp.URL.Path, ShouldEqual, "/ua")
		})

		Convey("An error status is an HTTPError", func() {
			_, err := Get(ctx, server.URL+"/missing")
			So(errors.Is(err, HTTPError), ShouldBeTrue)
			So(err.Error(), ShouldStartWith, "HTTPError - 404")
		})

		Convey("A closed server is a ConnectionError", func() {
			closed := httptest.NewServer(http.NotFoundHandler())
			closed.Close()
			_, err := Get(ctx, closed.URL)
			So(errors.Is(err, ConnectionError), ShouldBeTrue)
			So(IsError(err), ShouldBeTrue)
		})
	})

	Convey("Malformed URLs are classified", t, func() {
		ctx := context.Background()
		for raw, kind := range map[string]Kind{
			"example.com/page":   MissingSchema,
			"ftp://example.com/": InvalidSchema,
			"http://":            InvalidURL,
			"http://[::1":        InvalidURL,
		} {
			_, err := Get(ctx, raw)
			So(errors.Is(err, kind), ShouldBeTrue)
		}
	})
}

func TestClient(t *testing.T) {
	Convey("Without a configured timeout", t, func() {
		viper.Set(key.NetworkTimeout, 0)
		c := Client()

		Convey("Requests and response headers have no deadline", func() {
			So(c.Timeout, ShouldEqual, time.Duration(0))
			transport, ok := c.Transport.(*http.Transport)
			So(ok, ShouldBeTrue)
			So(transport.ResponseHeaderTimeout, ShouldEqual, time.Duration(0))
		})
	})

	Convey("With a configured timeout", t, func() {
		viper.Set(key.NetworkTimeout, 5)
		defer viper.Set(key.NetworkTimeout, 0)

		So(Client().Timeout, ShouldEqual, 5*time.Second)
	})
}

func TestDomain(t *testing.T) {
	Convey("Domain returns the network location", t, func() {
		So(Domain("https://sub.example.com:8080/a?b=c"), ShouldEqual, "sub.example.com:8080")
		So(Domain("https://example.com"), ShouldEqual, "example.com")
	})

	Convey("ValidateURL rejects relative references", t, func() {
		So(ValidateURL("https://example.com/x"), ShouldBeNil)
		So(ValidateURL("/x"), ShouldNotBeNil)
		So(ValidateURL(""), ShouldNotBeNil)
	})
}

func TestTor(t *testing.T) {
	Convey("Given tor is toggled", t, func() {
		for _, name := range []string{"HTTP_PROXY", "HTTPS_PROXY", "http_proxy", "https_proxy", "NO_PROXY", "no_proxy"} {
			t.Setenv(name, "")
		}
		viper.Set(key.NetworkTorAddress, "localhost:9150")

		So(EnableTor(), ShouldBeNil)
		So(TorEnabled(), ShouldBeTrue)
		So(os.Getenv("HTTPS_PROXY"), ShouldEqual, "socks5h://localhost:9150")

		Convey("The proxy is picked up per request", func() {
			u, err := proxyFor(mustParse("https://example.com/"))
			So(err, ShouldBeNil)
			So(u.String(), ShouldEqual, "socks5h://localhost:9150")
		})

		Convey("Disabling removes the variables", func() {
			So(DisableTor(), ShouldBeNil)
			So(TorEnabled(), ShouldBeFalse)
			u, err := proxyFor(mustParse("https://example.com/"))
			So(err, ShouldBeNil)
			So(u, ShouldBeNil)
		})
	})
}

func mustParse(raw string) *url.URL {
	return lo.Must(url.Parse(raw))
}
