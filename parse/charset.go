package parse

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/pk-services/pks/log"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// DefaultCharset is assumed when a page declares none.
const DefaultCharset = "utf-8"

// Charset returns the encoding declared by the first
// <meta http-equiv=... content="...charset=X"> tag of data.
// The HTML5 <meta charset=X> form is not recognized.
func Charset(data []byte) string {
	z := html.NewTokenizer(bytes.NewReader(data))

	for {
		switch z.Next() {
		case html.ErrorToken:
			return DefaultCharset
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			if string(name) != "meta" || !hasAttr {
				continue
			}

			attrs := attributes(z)
			content, ok := attrs["content"]
			if _, equiv := attrs["http-equiv"]; !equiv || !ok {
				continue
			}

			if strings.Contains(content, "charset") {
				parts := strings.Split(content, "=")
				return strings.TrimSpace(parts[len(parts)-1])
			}
		}
	}
}

// attributes reads the remaining attributes of the current tag.
// Keys are lower-cased by the tokenizer; a repeated attribute keeps its last value.
func attributes(z *html.Tokenizer) map[string]string {
	attrs := make(map[string]string)
	for {
		k, v, more := z.TagAttr()
		attrs[string(k)] = string(v)
		if !more {
			return attrs
		}
	}
}

// Decode converts data to UTF-8 according to the charset it declares.
// Unknown charsets are read as UTF-8.
func Decode(data []byte) ([]byte, error) {
	name := Charset(data)
	enc, _ := charset.Lookup(name)
	if enc == nil {
		log.Warnf("unknown charset %q, reading as utf-8", name)
		return data, nil
	}

	decoded, err := io.ReadAll(enc.NewDecoder().Reader(bytes.NewReader(data)))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return decoded, nil
}
