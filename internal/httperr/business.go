package httperr

import "errors"

// BusinessError carries a stable code across use-case boundaries. The cause,
// when present, keeps the store's own message available for display.
type BusinessError struct {
	Code  string
	Cause error
}

func (e BusinessError) Error() string {
	if e.Cause != nil {
		return e.Code + ": " + e.Cause.Error()
	}
	return e.Code
}

func (e BusinessError) Unwrap() error {
	return e.Cause
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func ErrBusinessWrap(code string, cause error) error {
	return BusinessError{Code: code, Cause: cause}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// BusinessCause returns the wrapped cause for a matching code, or nil.
func BusinessCause(err error, code string) error {
	var be BusinessError
	if errors.As(err, &be) && be.Code == code {
		return be.Cause
	}
	return nil
}
