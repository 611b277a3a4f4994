package errors

import "fmt"

// ErrorCode represents a ClipVault error code.
type ErrorCode string

const (
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST" // 400
	ErrNotFound       ErrorCode = "NOT_FOUND"       // 404
	ErrClipboardRead  ErrorCode = "CLIPBOARD_READ"  // 502 (transient, retried)
	ErrClipboardWrite ErrorCode = "CLIPBOARD_WRITE" // 502
	ErrStoreRead      ErrorCode = "STORE_READ"      // 500
	ErrStoreWrite     ErrorCode = "STORE_WRITE"     // 500
	ErrStoreCorrupt   ErrorCode = "STORE_CORRUPT"   // 500 (fatal at startup only)
	ErrInternal       ErrorCode = "INTERNAL"        // 500
)

// VaultError represents a structured error with code, status, and details.
type VaultError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *VaultError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *VaultError {
	return &VaultError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for when an entry cannot be found.
func NewNotFound(id string) *VaultError {
	return &VaultError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("entry not found: %s", id),
		Details: map[string]any{"id": id},
	}
}

// NewClipboardRead wraps a failed OS clipboard read. Callers treat this as
// transient: the monitor logs it and keeps polling.
func NewClipboardRead(err error) *VaultError {
	return &VaultError{
		Code:    ErrClipboardRead,
		Status:  502,
		Message: fmt.Sprintf("clipboard read failed: %v", err),
	}
}

// NewClipboardWrite wraps a failed OS clipboard write (re-copy action).
func NewClipboardWrite(err error) *VaultError {
	return &VaultError{
		Code:    ErrClipboardWrite,
		Status:  502,
		Message: fmt.Sprintf("clipboard write failed: %v", err),
	}
}

// NewStoreRead wraps a failed history read.
func NewStoreRead(err error) *VaultError {
	return &VaultError{
		Code:    ErrStoreRead,
		Status:  500,
		Message: fmt.Sprintf("history read failed: %v", err),
	}
}

// NewStoreWrite wraps a failed history write.
func NewStoreWrite(err error) *VaultError {
	return &VaultError{
		Code:    ErrStoreWrite,
		Status:  500,
		Message: fmt.Sprintf("history write failed: %v", err),
	}
}

// NewStoreCorrupt marks a store that cannot initialize at all. Surfaced at
// startup; not recoverable without user intervention.
func NewStoreCorrupt(err error) *VaultError {
	return &VaultError{
		Code:    ErrStoreCorrupt,
		Status:  500,
		Message: fmt.Sprintf("history store unusable: %v", err),
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *VaultError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &VaultError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is a VaultError with the given code.
func Is(err error, code ErrorCode) bool {
	if vErr, ok := err.(*VaultError); ok {
		return vErr.Code == code
	}
	return false
}
