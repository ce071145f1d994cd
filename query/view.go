package query

import (
	"slices"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/oaiiae/contactbook/model"
)

// DefaultViewSize is the number of filter results a [View] keeps.
const DefaultViewSize = 64

type viewKey struct {
	revision uint64
	group    model.GroupID
	tokens   string
}

// View memoizes [Visible] for unchanged inputs. The contact list is
// identified by a revision that must change whenever the list does.
type View struct {
	cache *lru.Cache[viewKey, []model.Contact]
}

func NewView(size int) (*View, error) {
	cache, err := lru.New[viewKey, []model.Contact](size)
	if err != nil {
		return nil, err
	}
	return &View{cache: cache}, nil
}

// Visible is [Visible] for the list at revision.
func (v *View) Visible(revision uint64, all []model.Contact, group model.GroupID, keywords string) []model.Contact {
	tokens := Tokens(keywords)
	sorted := slices.Sorted(slices.Values(tokens))
	key := viewKey{revision: revision, group: group, tokens: strings.Join(sorted, " ")}

	if out, ok := v.cache.Get(key); ok {
		return out
	}
	out := visible(all, group, tokens)
	v.cache.Add(key, out)
	return out
}

// Purge drops every memoized result.
func (v *View) Purge() { v.cache.Purge() }
