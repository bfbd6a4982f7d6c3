package parse

import (
	"bytes"
	"strings"

	"github.com/pk-services/pks/log"
	"golang.org/x/net/html"
)

const backgroundImage = "background-image:url("

// Media scans data tag by tag and maps every <img src> and
// <div style="background-image:url(...)"> found inside an anchor to the
// anchor's href. Only one anchor is tracked at a time: an opening <a href>
// replaces the current one and </a> clears it.
func Media(data []byte) *Pairs {
	var (
		pairs = NewPairs()
		z     = html.NewTokenizer(bytes.NewReader(data))
		href  string
		open  bool
	)

	for {
		switch z.Next() {
		case html.ErrorToken:
			return pairs
		case html.EndTagToken:
			if name, _ := z.TagName(); string(name) == "a" {
				href, open = "", false
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			if !hasAttr {
				continue
			}

			tag := string(name)
			attrs := attributes(z)

			switch tag {
			case "a":
				if v, ok := attrs["href"]; ok {
					href, open = v, true
				}
			case "img":
				if src, ok := attrs["src"]; ok && open {
					log.Debugf("img %s => %s", src, href)
					pairs.Set(src, href)
				}
			case "div":
				style, ok := attrs["style"]
				if ok && open && strings.Contains(style, backgroundImage) {
					image := styleURL(style)
					log.Debugf("background %s => %s", image, href)
					pairs.Set(image, href)
				}
			}
		}
	}
}

// styleURL returns the text between the last '(' and the following ')'.
func styleURL(style string) string {
	rest := style[strings.LastIndex(style, "(")+1:]
	if end := strings.Index(rest, ")"); end >= 0 {
		return rest[:end]
	}
	return rest
}
