package interceptor

import (
	"fmt"

	"github.com/jrsteele09/go-hrms-client/internal/errors"
)

// SessionExpiredError is returned to the request that triggered a failed refresh
// and to every request queued behind it. Stored credentials are already gone
// by the time a caller sees it.
type SessionExpiredError struct {
	Cause error
}

func (e *SessionExpiredError) Error() string {
	if e.Cause == nil {
		return errors.ErrSessionExpired.Error()
	}
	return fmt.Sprintf("%s: %v", errors.ErrSessionExpired, e.Cause)
}

func (e *SessionExpiredError) Unwrap() error {
	return e.Cause
}

// Is makes errors.Is(err, ErrSessionExpired) hold.
func (e *SessionExpiredError) Is(target error) bool {
	return target == errors.ErrSessionExpired
}
