// SPDX-License-Identifier: MPL-2.0

package view

import (
	"path/filepath"
	"strings"

	"github.com/addonscan/addonscan/pkg/manifest"
)

const (
	authorPrefix = "@"
	pathPrefix   = "/"
	negatePrefix = "~"
)

type (
	// Query is a parsed search string. The zero value matches everything.
	//
	// Tokens are whitespace separated and case-insensitive. A token matches
	// when it occurs in the title; in addition "@x" matches when x occurs in
	// the author and "/x" matches bundled records whose relative path contains
	// "/x". A leading "~" negates the token.
	Query struct {
		terms []term
		raw   string
	}

	term struct {
		token  string
		negate bool
	}
)

// ParseQuery parses a search string. Parsing never fails.
func ParseQuery(s string) Query {
	q := Query{raw: s}
	for _, tok := range strings.Fields(strings.ToLower(s)) {
		t := term{token: tok}
		if rest, ok := strings.CutPrefix(tok, negatePrefix); ok {
			t.token = rest
			t.negate = true
		}
		q.terms = append(q.terms, t)
	}
	return q
}

// String returns the search string the query was parsed from.
func (q Query) String() string { return q.raw }

// IsEmpty reports whether the query has no terms.
func (q Query) IsEmpty() bool { return len(q.terms) == 0 }

// Match reports whether rec is visible under q: every positive term must match
// and no negated term may match.
func (q Query) Match(rec *manifest.Record) bool {
	if len(q.terms) == 0 {
		return true
	}
	title := strings.ToLower(rec.DisplayTitle())
	author := strings.ToLower(rec.DisplayAuthor())
	path := strings.ToLower(strings.ReplaceAll(filepath.ToSlash(rec.RelativePath), `\`, "/"))

	for _, t := range q.terms {
		if t.match(title, author, path, rec.Bundled) == t.negate {
			return false
		}
	}
	return true
}

func (t term) match(title, author, path string, bundled bool) bool {
	if strings.Contains(title, t.token) {
		return true
	}
	if needle, ok := strings.CutPrefix(t.token, authorPrefix); ok && strings.Contains(author, needle) {
		return true
	}
	return bundled && strings.HasPrefix(t.token, pathPrefix) && strings.Contains(path, t.token)
}
