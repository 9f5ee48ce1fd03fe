package bizerror

import (
	"errors"
	"net/http"
)

var ErrUnauthenticated = errors.New("unauthenticated")
var ErrForbidden = errors.New("forbidden")

// validation errors: the requested change is not expressible for the filing
var ErrUnknownFilingType = errors.New("unknown filing type")
var ErrUnknownStage = errors.New("unknown stage")
var ErrSameStage = errors.New("already in requested stage")

// conflict errors: the filing exists but refuses the change
var ErrFilingCompleted = errors.New("filing is already completed")
var ErrStageConflict = errors.New("filing stage has been changed by someone else")

type BizError interface {
	Respond() *BizErrorDetail
}

type BizErrorDetail struct {
	Status  int
	Code    string
	Message string

	Data  interface{}
	Cause error
}

type ErrBadParam struct {
	Cause error
}

func (e *ErrBadParam) Unwrap() error {
	return e.Cause
}
func (e *ErrBadParam) Error() string {
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return "common.bad_param"
}
func (e *ErrBadParam) Respond() *BizErrorDetail {
	message := "common.bad_param"
	if e.Cause != nil {
		message = e.Cause.Error()
	}
	return &BizErrorDetail{Status: http.StatusBadRequest, Code: "common.bad_param", Message: message, Data: nil}
}
