package httperr

import (
	"errors"
	"net/http"
)

// Kind classifies an expected business outcome. Errors that carry no
// Kind are infrastructure failures.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindDuplicate
	KindNotFound
	KindRelationConflict
	KindBadRequest
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation_failed"
	case KindDuplicate:
		return "duplicate_conflict"
	case KindNotFound:
		return "not_found"
	case KindRelationConflict:
		return "relation_conflict"
	case KindBadRequest:
		return "bad_request"
	}
	return "unknown"
}

func (k Kind) Status() int {
	switch k {
	case KindValidation, KindBadRequest:
		return http.StatusBadRequest
	case KindDuplicate, KindRelationConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

type BusinessError struct {
	Kind    Kind
	Code    string
	Message string
	Details []string
}

func (e BusinessError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return e.Code + ": " + e.Message
}

func ErrBusiness(kind Kind, code, message string) error {
	return BusinessError{Kind: kind, Code: code, Message: message}
}

func ErrValidation(message string, details []string) error {
	return BusinessError{
		Kind:    KindValidation,
		Code:    KindValidation.String(),
		Message: message,
		Details: details,
	}
}

func ErrDuplicate(code, message string) error {
	return ErrBusiness(KindDuplicate, code, message)
}

func ErrNotFound(code, message string) error {
	return ErrBusiness(KindNotFound, code, message)
}

func ErrRelationConflict(code, message string) error {
	return ErrBusiness(KindRelationConflict, code, message)
}

func ErrBadRequest(code, message string) error {
	return ErrBusiness(KindBadRequest, code, message)
}

func AsBusiness(err error) (BusinessError, bool) {
	var be BusinessError
	ok := errors.As(err, &be)
	return be, ok
}

func IsBusiness(err error, code string) bool {
	be, ok := AsBusiness(err)
	return ok && be.Code == code
}

// KindOf returns the business kind of err, or 0 for infrastructure errors.
func KindOf(err error) Kind {
	if be, ok := AsBusiness(err); ok {
		return be.Kind
	}
	return 0
}
