package query

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/oaiiae/contactbook/model"
)

// Columns are the headers of the contact table, in display order.
var Columns = []string{ //nolint: gochecknoglobals
	"ID", "First Name", "Last Name", "Country", "City", "Street", "Zipcode", "Phone", "Email", "Groups",
}

// Row returns the cells of c matching [Columns].
func Row(c *model.Contact) []string {
	names := make([]string, 0, len(c.Groups))
	for _, g := range c.Groups {
		names = append(names, g.Name)
	}
	return []string{
		strconv.FormatInt(c.ID, 10),
		c.FirstName, c.LastName,
		c.Country, c.City, c.Street, c.Zipcode,
		c.Phone, c.Email,
		strings.Join(names, ", "),
	}
}

// WriteCSV writes the header and one row per contact.
func WriteCSV(w io.Writer, contacts []model.Contact) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for i := range contacts {
		if err := cw.Write(Row(&contacts[i])); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
