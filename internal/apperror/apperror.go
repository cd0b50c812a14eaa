package apperror

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"gorm.io/gorm"
)

// Sentinel errors for the store's failure taxonomy. Callers branch with
// errors.Is; the wrapping AppError carries the human-readable detail.
var (
	ErrDuplicateKey        = errors.New("duplicate key")
	ErrConstraintViolation = errors.New("constraint violation")
	ErrNotFound            = errors.New("not found")
	ErrInvalidParent       = errors.New("invalid parent")
	ErrInvalidReplyTarget  = errors.New("invalid reply target")
	ErrConflictingReaction = errors.New("conflicting reaction")
	ErrDuplicateMembership = errors.New("duplicate membership")
	ErrSelfFollow          = errors.New("self follow")
	ErrValidation          = errors.New("validation error")
	ErrConnectionFailure   = errors.New("connection failure")
)

type AppError struct {
	Err     error  // sentinel from the taxonomy above
	Message string // human-readable error message
	Field   string // optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func DuplicateKey(resource, key string) *AppError {
	return &AppError{
		Err:     ErrDuplicateKey,
		Message: fmt.Sprintf("%s already exists with %s", resource, key),
	}
}

func ConstraintViolation(message string) *AppError {
	return &AppError{
		Err:     ErrConstraintViolation,
		Message: message,
	}
}

func NotFound(resource string, id uint) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %d", resource, id),
	}
}

func NotFoundKey(resource, key string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found for %s", resource, key),
	}
}

func InvalidParent(message string) *AppError {
	return &AppError{
		Err:     ErrInvalidParent,
		Message: message,
		Field:   "parent_id",
	}
}

func InvalidReplyTarget(message string) *AppError {
	return &AppError{
		Err:     ErrInvalidReplyTarget,
		Message: message,
		Field:   "reply_to_id",
	}
}

func ConflictingReaction(kind string) *AppError {
	return &AppError{
		Err:     ErrConflictingReaction,
		Message: fmt.Sprintf("reaction %q already exists for this user and target", kind),
	}
}

func DuplicateMembership(chatID, userID uint) *AppError {
	return &AppError{
		Err:     ErrDuplicateMembership,
		Message: fmt.Sprintf("user %d is already a participant of chat %d", userID, chatID),
	}
}

func SelfFollow(userID uint) *AppError {
	return &AppError{
		Err:     ErrSelfFollow,
		Message: fmt.Sprintf("user %d cannot follow themself", userID),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

func ConnectionFailure(cause error) *AppError {
	return &AppError{
		Err:     ErrConnectionFailure,
		Message: fmt.Sprintf("storage unreachable: %v", cause),
	}
}

// FromDB translates a GORM error into the taxonomy. The database handles
// are opened with TranslateError so unique violations arrive as
// gorm.ErrDuplicatedKey on both the postgres and sqlite drivers. Driver
// connectivity failures (dead connections, network faults, timed-out
// dials) map to ErrConnectionFailure, the one error callers retry.
// Errors already in the taxonomy pass through untouched.
func FromDB(err error, resource string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return err
	}
	var netErr net.Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return &AppError{Err: ErrNotFound, Message: resource + " not found"}
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &AppError{Err: ErrDuplicateKey, Message: resource + " violates a unique constraint"}
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		return &AppError{Err: ErrConstraintViolation, Message: resource + " violates a check constraint"}
	case errors.Is(err, driver.ErrBadConn),
		errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr):
		return ConnectionFailure(err)
	default:
		return err
	}
}
