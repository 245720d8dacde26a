// Package ownership flattens a party's beneficial-ownership graph into the
// distinct set of identities that must be screened.
package ownership

import (
	"strings"

	"swiftscreen/internal/domain"
)

// DefaultMaxDepth bounds recursion over externally sourced graphs. Ownership
// chains deeper than this are treated as malformed and truncated.
const DefaultMaxDepth = 32

// Collection is the walker output: distinct identity strings in first-seen
// order, plus whether the walk hit the depth bound or a cycle. Truncation is
// a data-quality signal, never an error.
type Collection struct {
	Identities []string
	Truncated  bool
}

// Walker collects screenable identities from parties and their ownership
// graphs. Names must already be transliterated to a common script by the
// caller; the walker screens whatever strings it is given.
type Walker struct {
	MaxDepth int
}

// NewWalker returns a Walker with the default depth bound.
func NewWalker() *Walker {
	return &Walker{MaxDepth: DefaultMaxDepth}
}

// CollectParty gathers the party's own name, its executive, and its tax
// identifier, then walks the ownership graph depth-first in pre-order:
// every founder's name, and for founders flagged as companies with nested
// details, the nested company's executive, tax identifier, and founders.
// Duplicate strings across branches are collected once.
func (w *Walker) CollectParty(p *domain.Party) Collection {
	c := &collector{
		seen:     make(map[string]struct{}),
		visited:  make(map[string]struct{}),
		maxDepth: w.maxDepth(),
	}
	if p != nil {
		c.add(p.Name)
		c.add(p.Executive)
		c.add(p.TaxID)
		c.walk(p.Owners, 0)
	}
	return Collection{Identities: c.out, Truncated: c.truncated}
}

func (w *Walker) maxDepth() int {
	if w.MaxDepth > 0 {
		return w.MaxDepth
	}
	return DefaultMaxDepth
}

type collector struct {
	out       []string
	seen      map[string]struct{}
	visited   map[string]struct{} // companies already expanded, by identity
	maxDepth  int
	truncated bool
}

func (c *collector) walk(owners []domain.OwnershipNode, depth int) {
	if depth >= c.maxDepth {
		c.truncated = true
		return
	}
	for i := range owners {
		node := &owners[i]
		c.add(node.Owner)

		// A node without company details is a leaf regardless of the flag.
		if !node.IsCompany || node.Company == nil {
			continue
		}

		// Guard against cyclic data: a company is expanded once, keyed by
		// identity string rather than pointer.
		key := companyKey(node)
		if _, ok := c.visited[key]; ok {
			c.truncated = true
			continue
		}
		c.visited[key] = struct{}{}

		c.add(node.Company.Executive)
		c.add(node.Company.TaxID)
		c.walk(node.Company.Founders, depth+1)
	}
}

func (c *collector) add(s string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return
	}
	if _, ok := c.seen[s]; ok {
		return
	}
	c.seen[s] = struct{}{}
	c.out = append(c.out, s)
}

// companyKey identifies a company for cycle detection. Tax ID when present;
// otherwise the owner name, which collapses distinct untaxed companies that
// share a name across branches. Screening still covers them: the shared name
// and the first company's graph are collected, only the repeat expansion is
// skipped, and Truncated records that the graph was cut.
func companyKey(node *domain.OwnershipNode) string {
	if node.Company.TaxID != "" {
		return node.Company.TaxID
	}
	return node.Owner
}
