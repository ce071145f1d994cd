package query_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oaiiae/contactbook/model"
	"github.com/oaiiae/contactbook/query"
)

func TestPage(t *testing.T) {
	all := make([]model.Contact, 12)
	for i := range all {
		all[i].ID = model.ContactID(i + 1)
	}

	assert.Equal(t, []model.ContactID{1, 2, 3, 4, 5}, ids(query.Page(all, 0, 0)))
	assert.Equal(t, []model.ContactID{11, 12}, ids(query.Page(all, 1, 10)))
	assert.Empty(t, query.Page(all, 3, 5))
	assert.Empty(t, query.Page(all, -1, 5))

	assert.Equal(t, 3, query.Pages(len(all), 5))
	assert.Equal(t, 1, query.Pages(0, 5))
	assert.True(t, query.ValidPageSize(10))
	assert.False(t, query.ValidPageSize(7))
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, query.WriteCSV(&buf, sample()[:2]))
	assert.Equal(t, ""+
		"ID,First Name,Last Name,Country,City,Street,Zipcode,Phone,Email,Groups\n"+
		"1,John,Smith,,,,,,doe@example.com,VIP\n"+
		"2,Jane,Doe,,,,,,,\"family, VIP\"\n",
		buf.String())
}
