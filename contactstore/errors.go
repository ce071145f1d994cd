package contactstore

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/oaiiae/contactbook/model"
)

// BatchError reports the deletes of a batch that failed. The others succeeded.
type BatchError struct {
	Total  int
	Failed map[model.ContactID]error
}

func (e *BatchError) Error() string {
	ids := slices.Sorted(maps.Keys(e.Failed))
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10)+": "+e.Failed[id].Error())
	}
	return fmt.Sprintf("contactstore: %d of %d deletes failed: %s", len(e.Failed), e.Total, strings.Join(parts, "; "))
}

// Unwrap returns the failures ordered by contact id.
func (e *BatchError) Unwrap() []error {
	ids := slices.Sorted(maps.Keys(e.Failed))
	errs := make([]error, 0, len(ids))
	for _, id := range ids {
		errs = append(errs, e.Failed[id])
	}
	return errs
}
