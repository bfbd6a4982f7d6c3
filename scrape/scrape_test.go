package scrape

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pk-services/pks/network"
	"github.com/pk-services/pks/parse"
	"github.com/pk-services/pks/rules"
	. "github.com/smartystreets/goconvey/convey"
)

const page = `<html><head>
<meta http-equiv="Content-Type" content="text/html; charset=ISO-8859-1">
</head><body>
<a href="/view/1"><img src="/thumbs/pic1.jpg"></a>
<a href="/view/2"><img src="/thumbs/photo2.png"></a>
<a href="https://other.example.net/3"><img src="pic3.jpg?size=big"></a>
<div class="thumb"><img src="/grid/pic4.jpg"><a href="/grid/4">four</a></div>
</body></html>`

func newServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/gallery/":
			fmt.Fprint(w, page)
		case "/moved":
			http.Redirect(w, r, "/gallery/", http.StatusMovedPermanently)
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestFilter(t *testing.T) {
	Convey("Given two pairs", t, func() {
		pairs := parse.NewPairs()
		pairs.Set("a/pic1.jpg", "l1")
		pairs.Set("b/photo.png", "l2")

		Convey("Head and extension both have to match", func() {
			So(Filter(pairs, "pic", []string{"jpg"}).Map(), ShouldResemble, map[string]string{"a/pic1.jpg": "l1"})
		})

		Convey("The defaults keep everything with an extension", func() {
			So(Filter(pairs, ".*", []string{""}).Len(), ShouldEqual, 2)
		})

		Convey("Head is matched on the base name only", func() {
			So(Filter(pairs, "^a", []string{"jpg", "png"}).Len(), ShouldEqual, 0)
			So(Filter(pairs, "^photo", []string{"jpg", "png"}).Images(), ShouldResemble, []string{"b/photo.png"})
		})

		Convey("An invalid pattern gives nothing", func() {
			So(Filter(pairs, "(", []string{"jpg"}).Len(), ShouldEqual, 0)
			So(Filter(pairs, ".*", []string{"["}).Len(), ShouldEqual, 0)
		})
	})
}

func TestService(t *testing.T) {
	Convey("Given a gallery server", t, func() {
		server := newServer()
		defer server.Close()
		ctx := context.Background()

		Convey("With the default rule", func() {
			s := New(rules.New())
			So(s.Load(ctx, server.URL+"/moved"), ShouldBeNil)

			Convey("The final URL and its origin are kept", func() {
				So(s.URL(), ShouldEqual, server.URL+"/gallery/")
				So(s.Base(), ShouldEqual, server.URL+"/")
			})

			Convey("Images and links are resolved against the page", func() {
				So(s.ImagesLinks().Map(), ShouldResemble, map[string]string{
					server.URL + "/thumbs/pic1.jpg":           server.URL + "/view/1",
					server.URL + "/thumbs/photo2.png":         server.URL + "/view/2",
					server.URL + "/gallery/pic3.jpg?size=big": "https://other.example.net/3",
				})
			})

			Convey("Filters apply on every call", func() {
				s.SetHead("pic")
				s.SetExt("jpg")
				So(s.Links(), ShouldResemble, []string{server.URL + "/view/1", "https://other.example.net/3"})

				s.SetHead(".*")
				s.SetExt("")
				So(s.Images(), ShouldHaveLength, 3)
			})
		})

		Convey("With a rule for the server's domain", func() {
			table := rules.New()
			table.Add(rules.Suffix(server.URL), "//div[@class='thumb']/img/@src", "//div[@class='thumb']/a/@href")
			s := New(table, WithHead("pic"))
			So(s.Load(ctx, server.URL+"/gallery/"), ShouldBeNil)

			So(s.ImagesLinks().Map(), ShouldResemble, map[string]string{
				server.URL + "/grid/pic4.jpg": server.URL + "/grid/4",
			})
		})

		Convey("With a rule whose paths take different shapes", func() {
			table := rules.New()
			table.Add(rules.Suffix(server.URL), "//img/@src", "//a/@href")
			s := New(table)
			So(s.Load(ctx, server.URL+"/gallery/"), ShouldBeNil)

			Convey("Pairs follow document order", func() {
				So(s.Images(), ShouldResemble, []string{
					server.URL + "/thumbs/pic1.jpg",
					server.URL + "/thumbs/photo2.png",
					server.URL + "/gallery/pic3.jpg?size=big",
					server.URL + "/grid/pic4.jpg",
				})
				So(s.Links(), ShouldResemble, []string{
					server.URL + "/view/1",
					server.URL + "/view/2",
					"https://other.example.net/3",
					server.URL + "/grid/4",
				})
			})
		})

		Convey("With the streaming strategy", func() {
			s := New(rules.New(), WithStrategy(Stream), WithExt("png"))
			So(s.Load(ctx, server.URL+"/gallery/"), ShouldBeNil)
			So(s.Images(), ShouldResemble, []string{server.URL + "/thumbs/photo2.png"})
		})

		Convey("Transport errors propagate", func() {
			s := New(rules.New())
			err := s.Load(ctx, server.URL+"/nothing")
			So(errors.Is(err, network.HTTPError), ShouldBeTrue)
			So(s.URL(), ShouldBeEmpty)
		})
	})
}
