// Package query derives the visible set of contacts from the full list, a
// group filter and search keywords. Nothing here mutates its input.
package query

import (
	"slices"
	"strings"

	"github.com/oaiiae/contactbook/model"
)

// Tokens splits keywords on whitespace into distinct lowercase tokens.
func Tokens(keywords string) []string {
	var tokens []string
	for _, f := range strings.Fields(strings.ToLower(keywords)) {
		if !slices.Contains(tokens, f) {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// Visible returns the contacts of all tagged with group, when group is not
// zero, and whose first or last name contains every keyword token.
// With no filter active all is returned as is.
func Visible(all []model.Contact, group model.GroupID, keywords string) []model.Contact {
	return visible(all, group, Tokens(keywords))
}

func visible(all []model.Contact, group model.GroupID, tokens []string) []model.Contact {
	if group == 0 && len(tokens) == 0 {
		return all
	}

	out := []model.Contact{}
	for i := range all {
		if group != 0 && !all[i].InGroup(group) {
			continue
		}
		if !matches(&all[i], tokens) {
			continue
		}
		out = append(out, all[i])
	}
	return out
}

// matches reports whether each token is in the lowercased first or last name.
func matches(c *model.Contact, tokens []string) bool {
	if len(tokens) == 0 {
		return true
	}
	first, last := strings.ToLower(c.FirstName), strings.ToLower(c.LastName)
	for _, t := range tokens {
		if !strings.Contains(first, t) && !strings.Contains(last, t) {
			return false
		}
	}
	return true
}
