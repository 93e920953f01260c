package contract

import (
	"fmt"

	"github.com/frahmantamala/epic-events-crm/internal"
)

// Filter tags accepted by ContractsFor.
const (
	FilterAll       = ""
	FilterSigned    = "signed"
	FilterNotSigned = "not_signed"
)

// StatusForFilter maps a filter tag to the status it selects, "" meaning any.
// Tags naming no reachable status, such as no_fully_paid, are rejected.
func StatusForFilter(tag string) (string, error) {
	switch tag {
	case FilterAll:
		return "", nil
	case FilterSigned:
		return StatusSigned, nil
	case FilterNotSigned:
		return StatusNotSigned, nil
	}
	return "", internal.NewValidationError(
		fmt.Sprintf("Unsupported contract filter %q. Use signed, not_signed or no filter.", tag),
		internal.ErrCodeUnsupportedFilter,
	)
}
