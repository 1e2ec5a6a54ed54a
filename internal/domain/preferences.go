package domain

import (
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	preferredCategoryCount = 3
	topInterestCount       = 10
	minKeywordLen          = 3
)

// UserPreferences is a recomputable projection of favorites, own listings and search history.
type UserPreferences struct {
	Categories []string
	Interests  []string
}

// AnalyzePreferences counts categories over favorites then own listings, and keyword
// tokens (length > 2) over favorite titles, search queries and own titles.
// Ties keep first-encountered order.
func AnalyzePreferences(favorites, own []Listing, history []string) UserPreferences {
	cats := newCounter()
	for _, l := range favorites {
		cats.add(l.Category)
	}
	for _, l := range own {
		cats.add(l.Category)
	}

	words := newCounter()
	addWords := func(s string) {
		for _, w := range strings.Fields(strings.ToLower(s)) {
			if utf8.RuneCountInString(w) >= minKeywordLen {
				words.add(w)
			}
		}
	}
	for _, l := range favorites {
		addWords(l.Title)
	}
	for _, q := range history {
		addWords(q)
	}
	for _, l := range own {
		addWords(l.Title)
	}

	return UserPreferences{
		Categories: cats.top(preferredCategoryCount),
		Interests:  words.top(topInterestCount),
	}
}

// counter is a frequency table that remembers insertion order for stable ties.
type counter struct {
	order  []string
	counts map[string]int
}

func newCounter() *counter { return &counter{counts: map[string]int{}} }

func (c *counter) add(k string) {
	if _, ok := c.counts[k]; !ok {
		c.order = append(c.order, k)
	}
	c.counts[k]++
}

func (c *counter) top(n int) []string {
	keys := append([]string(nil), c.order...)
	sort.SliceStable(keys, func(i, j int) bool {
		return c.counts[keys[i]] > c.counts[keys[j]]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	if keys == nil {
		keys = []string{}
	}
	return keys
}
