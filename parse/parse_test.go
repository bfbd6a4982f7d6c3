package parse

import (
	"encoding/json"
	"testing"

	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

const gallery = `<html><head><title>gallery</title></head>
<body>
  <a href="/view/1"><img src="/thumbs/pic1.jpg"></a>
  <a href="/view/2"><span><img src="/thumbs/pic2.png"></span></a>
  <a href="/about">about</a>
  <img src="/logo.gif">
</body></html>`

func TestCharset(t *testing.T) {
	Convey("Given a page declaring its charset through http-equiv", t, func() {
		page := []byte(`<html><head>
<meta http-equiv="Content-Type" content="text/html; charset=ISO-8859-1">
</head><body>caf` + "\xe9" + `</body></html>`)

		Convey("The declared charset is returned", func() {
			So(Charset(page), ShouldEqual, "ISO-8859-1")
		})
	})

	Convey("Given pages without an http-equiv declaration", t, func() {
		Convey("utf-8 is assumed", func() {
			So(Charset([]byte("<html><body>plain</body></html>")), ShouldEqual, "utf-8")
			So(Charset(nil), ShouldEqual, "utf-8")
		})

		Convey("The HTML5 meta charset form is ignored", func() {
			So(Charset([]byte(`<meta charset="windows-1252">`)), ShouldEqual, "utf-8")
		})

		Convey("A meta without charset in its content is skipped", func() {
			page := []byte(`<meta http-equiv="refresh" content="5"><meta http-equiv="Content-Type" content="text/html;charset=koi8-r">`)
			So(Charset(page), ShouldEqual, "koi8-r")
		})
	})

	Convey("The first declaration wins", t, func() {
		page := []byte(`<meta http-equiv="Content-Type" content="text/html; charset=shift_jis">
<meta http-equiv="Content-Type" content="text/html; charset=utf-8">`)
		So(Charset(page), ShouldEqual, "shift_jis")
	})
}

func TestImageLinks(t *testing.T) {
	Convey("Given the default rule paths", t, func() {
		pairs, err := ImageLinks([]byte(gallery),
			"//a[descendant::img]/descendant::img/@src",
			"//a[descendant::img]/@href",
		)

		Convey("Images inside anchors are paired with their hrefs", func() {
			So(err, ShouldBeNil)
			So(pairs.Len(), ShouldEqual, 2)
			So(pairs.Images(), ShouldResemble, []string{"/thumbs/pic1.jpg", "/thumbs/pic2.png"})
			So(pairs.Links(), ShouldResemble, []string{"/view/1", "/view/2"})
		})
	})

	Convey("Given paths yielding sequences of different lengths", t, func() {
		pairs, err := ImageLinks([]byte(gallery), "//img/@src", "//a[descendant::img]/@href")

		Convey("Pairing truncates to the shorter sequence", func() {
			So(err, ShouldBeNil)
			So(pairs.Len(), ShouldEqual, 2)
			_, ok := pairs.Get("/logo.gif")
			So(ok, ShouldBeFalse)
		})

		Convey("The trailing image is the one dropped", func() {
			So(pairs.Map(), ShouldResemble, map[string]string{
				"/thumbs/pic1.jpg": "/view/1",
				"/thumbs/pic2.png": "/view/2",
			})
		})
	})

	Convey("Given a bare image after the anchored ones", t, func() {
		page := []byte(`<a href="/1"><img src="/one.jpg"></a><a href="/2"><img src="/two.jpg"></a><img src="/three.jpg">`)
		pairs, err := ImageLinks(page, "//img/@src", "//a/@href")

		Convey("Results are paired in document order", func() {
			So(err, ShouldBeNil)
			So(pairs.Images(), ShouldResemble, []string{"/one.jpg", "/two.jpg"})
			So(pairs.Map(), ShouldResemble, map[string]string{"/one.jpg": "/1", "/two.jpg": "/2"})
		})
	})

	Convey("Given a nested image before a shallow one", t, func() {
		page := []byte(`<div>
  <a href="/deep"><div><span><img src="/deep.jpg"></span></div></a>
  <a href="/shallow"><img src="/shallow.jpg"></a>
</div>`)
		pairs, err := ImageLinks(page, "//img/@src", "//a/@href")

		Convey("Depth does not change the order", func() {
			So(err, ShouldBeNil)
			So(pairs.Images(), ShouldResemble, []string{"/deep.jpg", "/shallow.jpg"})
			So(pairs.Links(), ShouldResemble, []string{"/deep", "/shallow"})
		})
	})

	Convey("Given a malformed path", t, func() {
		_, err := ImageLinks([]byte(gallery), "//a[", "//a/@href")
		So(err, ShouldNotBeNil)
	})
}

func TestMedia(t *testing.T) {
	Convey("Given a page mixing images and background images", t, func() {
		page := []byte(`<body>
<img src="/outside.jpg">
<a href="/one"><img src="/a.jpg"></a>
<a href="/two"><div style="width:10px;background-image:url(/b.webp)"></div></a>
<div style="background-image:url(/c.webp)"></div>
<a href="/three"><img src="/d.jpg"><img src="/e.jpg"></a>
</body>`)
		pairs := Media(page)

		Convey("Only images inside an open anchor are recorded", func() {
			So(pairs.Images(), ShouldResemble, []string{"/a.jpg", "/b.webp", "/d.jpg", "/e.jpg"})
			So(pairs.Map(), ShouldResemble, map[string]string{
				"/a.jpg":  "/one",
				"/b.webp": "/two",
				"/d.jpg":  "/three",
				"/e.jpg":  "/three",
			})
		})
	})

	Convey("A later anchor replaces an unclosed one", t, func() {
		pairs := Media([]byte(`<a href="/x"><a href="/y"><img src="/i.png">`))
		link, _ := pairs.Get("/i.png")
		So(link, ShouldEqual, "/y")
	})
}

func TestPairs(t *testing.T) {
	Convey("Given pairs with a repeated image", t, func() {
		pairs := NewPairs()
		pairs.Set("b.jpg", "1")
		pairs.Set("a.jpg", "2")
		pairs.Set("b.jpg", "3")

		Convey("The image keeps its position and takes the new link", func() {
			So(pairs.Images(), ShouldResemble, []string{"b.jpg", "a.jpg"})
			So(pairs.Links(), ShouldResemble, []string{"3", "2"})
		})

		Convey("JSON keeps insertion order", func() {
			So(string(lo.Must(json.Marshal(pairs))), ShouldEqual, `{"b.jpg":"3","a.jpg":"2"}`)
		})
	})
}

func TestDecode(t *testing.T) {
	Convey("A latin-1 page is converted to utf-8", t, func() {
		page := []byte(`<meta http-equiv="Content-Type" content="text/html; charset=ISO-8859-1"><p>caf` + "\xe9" + `</p>`)
		decoded, err := Decode(page)
		So(err, ShouldBeNil)
		So(string(decoded), ShouldEndWith, "<p>café</p>")
	})

	Convey("A page with an unknown charset is kept as is", t, func() {
		page := []byte(`<meta http-equiv="Content-Type" content="text/html; charset=x-unknown">ok`)
		decoded, err := Decode(page)
		So(err, ShouldBeNil)
		So(decoded, ShouldResemble, page)
	})
}
