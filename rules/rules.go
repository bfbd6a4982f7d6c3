// Package rules holds the per-domain XPath pairs used to locate images and
// their enclosing links on scraped pages.
package rules

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// DefaultDomain is the key of the fallback rule.
const DefaultDomain = "default"

// Rule is a pair of path expressions: one selecting image sources and one
// selecting the links they belong to. It is stored as a two element array.
type Rule struct {
	Image string
	Link  string
}

// Default selects every image inside an anchor and the href of that anchor.
var Default = Rule{
	Image: "//a[descendant::img]/descendant::img/@src",
	Link:  "//a[descendant::img]/@href",
}

func (r Rule) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{r.Image, r.Link})
}

func (r *Rule) UnmarshalJSON(data []byte) error {
	var pair []string
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("rule must hold exactly 2 paths, got %d", len(pair))
	}
	r.Image, r.Link = pair[0], pair[1]
	return nil
}

func (Rule) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "array",
		Description: "Image path expression followed by link path expression.",
		Items:       &jsonschema.Schema{Type: "string"},
	}
}

// Table maps two-label domain suffixes to rules.
// It always holds a DefaultDomain entry.
type Table struct {
	rules map[string]Rule
}

// New returns a table holding only the default rule.
func New() *Table {
	return &Table{rules: map[string]Rule{DefaultDomain: Default}}
}

// Get returns the rule of domain, or the default rule when domain is unknown.
func (t *Table) Get(domain string) Rule {
	if r, ok := t.rules[domain]; ok {
		return r
	}
	return t.rules[DefaultDomain]
}

// Find returns the rule matching the host of rawURL.
func (t *Table) Find(rawURL string) Rule {
	return t.Get(Suffix(rawURL))
}

// Add registers or replaces the rule of domain.
func (t *Table) Add(domain, image, link string) {
	t.rules[domain] = Rule{Image: image, Link: link}
}

// Update merges rules into the table, replacing existing domains.
func (t *Table) Update(rules map[string]Rule) {
	for domain, r := range rules {
		t.rules[domain] = r
	}
}

// Remove deletes the rule of domain. The default rule cannot be removed.
func (t *Table) Remove(domain string) bool {
	if domain == DefaultDomain {
		return false
	}
	_, ok := t.rules[domain]
	delete(t.rules, domain)
	return ok
}

// Domains lists the registered domains in lexical order.
func (t *Table) Domains() []string {
	domains := lo.Keys(t.rules)
	slices.Sort(domains)
	return domains
}

func (t *Table) Len() int {
	return len(t.rules)
}

// Equal reports whether both tables hold the same rules.
func (t *Table) Equal(other *Table) bool {
	if other == nil || len(t.rules) != len(other.rules) {
		return false
	}
	for domain, r := range t.rules {
		if o, ok := other.rules[domain]; !ok || o != r {
			return false
		}
	}
	return true
}

func (t *Table) String() string {
	data, err := json.MarshalIndent(t.rules, "", "  ")
	if err != nil {
		return err.Error()
	}
	return string(data)
}

// Suffix returns the last two labels of the host of rawURL,
// e.g. "example.com" for "https://img.sub.example.com/a".
func Suffix(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	labels := strings.Split(u.Hostname(), ".")
	if len(labels) > 2 {
		labels = labels[len(labels)-2:]
	}
	return strings.Join(labels, ".")
}
