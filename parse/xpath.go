package parse

import (
	"bytes"
	"cmp"
	"fmt"

	"github.com/antchfx/htmlquery"
	"github.com/antchfx/xpath"
	"golang.org/x/exp/slices"
	"golang.org/x/net/html"
)

// ImageLinks evaluates imagePath and linkPath independently against data and
// pairs the results by position, both taken in document order. When the two
// sequences differ in length the extra entries of the longer one are dropped.
func ImageLinks(data []byte, imagePath, linkPath string) (*Pairs, error) {
	images, err := xpath.Compile(imagePath)
	if err != nil {
		return nil, fmt.Errorf("compile image path %q: %w", imagePath, err)
	}

	links, err := xpath.Compile(linkPath)
	if err != nil {
		return nil, fmt.Errorf("compile link path %q: %w", linkPath, err)
	}

	root, err := htmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	order := preorder(root)
	return zip(values(images, root, order), values(links, root, order)), nil
}

type match struct {
	position int
	value    string
}

// values returns the string value of every node selected by expr, sorted by
// the position of the node (or of the element owning the attribute) in the tree.
func values(expr *xpath.Expr, root *html.Node, order map[*html.Node]int) []string {
	var matches []match
	iter := expr.Select(htmlquery.CreateXPathNavigator(root))
	for iter.MoveNext() {
		nav, ok := iter.Current().(*htmlquery.NodeNavigator)
		if !ok {
			continue
		}
		matches = append(matches, match{position: order[nav.Current()], value: nav.Value()})
	}

	slices.SortStableFunc(matches, func(a, b match) int {
		return cmp.Compare(a.position, b.position)
	})

	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.value
	}
	return out
}

func preorder(root *html.Node) map[*html.Node]int {
	order := make(map[*html.Node]int)
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		order[n] = len(order)
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return order
}

func zip(images, links []string) *Pairs {
	pairs := NewPairs()
	for i := 0; i < len(images) && i < len(links); i++ {
		pairs.Set(images[i], links[i])
	}
	return pairs
}
