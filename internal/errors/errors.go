package errors

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/julianstephens/streakly/internal/logger"
)

var (
	// ErrNotFound is returned for unknown habit or reward ids
	ErrNotFound = errors.New("not found")
	// ErrAlreadyComplete is returned when a habit is already at its daily cap. It is safe to ignore.
	ErrAlreadyComplete = errors.New("already completed for today")
	// ErrAlreadyRedeemed is returned when a non-repeatable reward is redeemed twice
	ErrAlreadyRedeemed = errors.New("reward already redeemed")
	// ErrInsufficientEnergy is returned when a debit exceeds the balance
	ErrInsufficientEnergy = errors.New("insufficient energy")
	// ErrInvalidInput is returned for definitions that fail validation
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidTitle is the InvalidInput case of an empty reward title
	ErrInvalidTitle = fmt.Errorf("%w: title must not be empty", ErrInvalidInput)
	// ErrStorageFailure is matched by every StorageError
	ErrStorageFailure = errors.New("storage failure")
)

// NotFound wraps ErrNotFound with the kind and id of the missing entity.
func NotFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
}

// InvalidInput wraps ErrInvalidInput with a message.
func InvalidInput(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// StorageError reports a failed read or write of a persisted document
type StorageError struct {
	Op  string // "read", "write", "rollback", ...
	Key string
	Err error
}

func (e *StorageError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("storage %s of %q failed: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorageFailure }

// Storage wraps err as a StorageError. A nil err stays nil and an existing
// StorageError is returned unchanged.
func Storage(op, key string, err error) error {
	if err == nil {
		return nil
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Key: key, Err: err}
}

// ValidationError lists per-field validation messages
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %s", k, e.Fields[k]))
	}
	return fmt.Sprintf("%v: %s", ErrInvalidInput, strings.Join(parts, "; "))
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
