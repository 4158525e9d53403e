// multierr combines several errors into one. It is deliberately tiny and kept
// internal: the only operation the library needs is Join, and pulling in a
// third-party aggregation module for that is not worth a dependency edge in a
// synchronization primitive.
package multierr

import (
	"errors"
	"strings"
)

// Join flattens errs into a single error whose message is each error's
// message on its own line. Nil entries are skipped; if every entry is nil,
// Join returns nil. Errors that were themselves produced by Join are
// flattened rather than nested.
//
// The result supports errors.Is, errors.As, and Unwrap() []error.
func Join(errs ...error) error {
	var flat []error
	for _, err := range errs {
		if err == nil {
			continue
		}
		if j, ok := err.(*joined); ok { //nolint:errorlint // flattening, not matching
			flat = append(flat, j.errs...)
		} else {
			flat = append(flat, err)
		}
	}
	if len(flat) == 0 {
		return nil
	}
	return &joined{errs: flat}
}

type joined struct {
	errs []error
}

func (j *joined) Error() string {
	msgs := make([]string, len(j.errs))
	for i, err := range j.errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}

func (j *joined) Is(target error) bool {
	for _, err := range j.errs {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func (j *joined) As(target any) bool {
	for _, err := range j.errs {
		if errors.As(err, target) {
			return true
		}
	}
	return false
}

func (j *joined) Unwrap() []error {
	return j.errs
}
