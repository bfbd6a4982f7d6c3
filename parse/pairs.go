// Package parse extracts character sets and image/link pairs from HTML pages.
package parse

import (
	"bytes"
	"encoding/json"
)

// Pair associates an image source with the link enclosing it.
type Pair struct {
	Image string `json:"image"`
	Link  string `json:"link"`
}

// Pairs is an insertion-ordered image to link mapping.
// Setting an image again replaces its link without moving it.
type Pairs struct {
	items []Pair
	index map[string]int
}

func NewPairs() *Pairs {
	return &Pairs{index: make(map[string]int)}
}

// Set records link for image.
func (p *Pairs) Set(image, link string) {
	if i, ok := p.index[image]; ok {
		p.items[i].Link = link
		return
	}
	p.index[image] = len(p.items)
	p.items = append(p.items, Pair{Image: image, Link: link})
}

// Get returns the link recorded for image.
func (p *Pairs) Get(image string) (string, bool) {
	i, ok := p.index[image]
	if !ok {
		return "", false
	}
	return p.items[i].Link, true
}

func (p *Pairs) Len() int {
	return len(p.items)
}

// Items returns a copy of the pairs in insertion order.
func (p *Pairs) Items() []Pair {
	return append([]Pair(nil), p.items...)
}

// Images lists image sources in insertion order.
func (p *Pairs) Images() []string {
	images := make([]string, len(p.items))
	for i, item := range p.items {
		images[i] = item.Image
	}
	return images
}

// Links lists links in the order of their images.
func (p *Pairs) Links() []string {
	links := make([]string, len(p.items))
	for i, item := range p.items {
		links[i] = item.Link
	}
	return links
}

// Map returns the pairs as an unordered map.
func (p *Pairs) Map() map[string]string {
	m := make(map[string]string, len(p.items))
	for _, item := range p.items {
		m[item.Image] = item.Link
	}
	return m
}

// MarshalJSON encodes the pairs as a JSON object, keeping insertion order.
func (p *Pairs) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, item := range p.items {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(item.Image)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(item.Link)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Each calls fn for every pair in insertion order.
func (p *Pairs) Each(fn func(image, link string)) {
	for _, item := range p.items {
		fn(item.Image, item.Link)
	}
}
