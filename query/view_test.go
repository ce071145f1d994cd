package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oaiiae/contactbook/model"
	"github.com/oaiiae/contactbook/query"
)

func TestView(t *testing.T) {
	v, err := query.NewView(query.DefaultViewSize)
	require.NoError(t, err)

	all := sample()
	got := v.Visible(1, all, 0, "doe jo")
	assert.Equal(t, []model.ContactID{3}, ids(got))

	// same revision and token set: the list is not looked at again
	assert.Equal(t, got, v.Visible(1, nil, 0, "JO   doe"))

	// a new revision is recomputed
	all = all[:2]
	assert.Empty(t, v.Visible(2, all, 0, "doe jo"))

	v.Purge()
	assert.Empty(t, v.Visible(1, nil, 0, "doe jo"))
}

func TestNewViewInvalidSize(t *testing.T) {
	_, err := query.NewView(0)
	assert.Error(t, err)
}
