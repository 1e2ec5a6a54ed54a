package domain

import (
	"errors"
	"fmt"
)

type ErrCode string

const (
	CodeValidation   ErrCode = "validation_error"
	CodeNotFound     ErrCode = "not_found"
	CodeForbidden    ErrCode = "forbidden"
	CodeInvalidState ErrCode = "invalid_state"
	CodePlanLimit    ErrCode = "plan_limit"
)

type AppError struct {
	Code    ErrCode
	Message string
	Meta    map[string]string
}

func (e *AppError) Error() string {
	if len(e.Meta) == 0 {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Meta)
}

func ErrValidation(msg string) error { return &AppError{Code: CodeValidation, Message: msg} }
func ErrValidationMeta(msg string, meta map[string]string) error {
	return &AppError{Code: CodeValidation, Message: msg, Meta: meta}
}
func ErrNotFound(msg string) error     { return &AppError{Code: CodeNotFound, Message: msg} }
func ErrForbidden(msg string) error    { return &AppError{Code: CodeForbidden, Message: msg} }
func ErrInvalidState(msg string) error { return &AppError{Code: CodeInvalidState, Message: msg} }

// ErrPlanLimit is returned when the caller's subscription plan does not grant an action.
func ErrPlanLimit(action string, plan PlanID) error {
	return &AppError{
		Code:    CodePlanLimit,
		Message: "action not available on current plan",
		Meta:    map[string]string{"action": action, "plan": string(plan)},
	}
}

// IsCode reports whether err is an *AppError carrying code.
func IsCode(err error, code ErrCode) bool {
	var ae *AppError
	return errors.As(err, &ae) && ae.Code == code
}
