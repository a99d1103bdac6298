package models

import (
	"errors"
	"fmt"
)

// ErrorType represents different categories of errors
type ErrorType int

const (
	ErrDatabaseNotFound ErrorType = iota
	ErrDatabaseLoad
	ErrDatabaseIteration
	ErrPackageNotFound
	ErrPackageParseSize
	ErrPackagePropertyMissing
	ErrPackageUTF8Conversion
	ErrInvalidConfig
	ErrPackageChecksum
)

// String returns the string representation of ErrorType
func (e ErrorType) String() string {
	switch e {
	case ErrDatabaseNotFound:
		return "DatabaseNotFound"
	case ErrDatabaseLoad:
		return "DatabaseLoad"
	case ErrDatabaseIteration:
		return "DatabaseIteration"
	case ErrPackageNotFound:
		return "PackageNotFound"
	case ErrPackageParseSize:
		return "PackageParseSize"
	case ErrPackagePropertyMissing:
		return "PackagePropertyMissing"
	case ErrPackageUTF8Conversion:
		return "PackageUTF8Conversion"
	case ErrInvalidConfig:
		return "InvalidConfig"
	case ErrPackageChecksum:
		return "PackageChecksum"
	default:
		return "Unknown"
	}
}

// Fatal reports whether an error of this type ends a package iteration.
func (e ErrorType) Fatal() bool {
	return e == ErrDatabaseLoad || e == ErrDatabaseIteration
}

// Error is the error returned by database and package operations. Subject
// identifies what failed: a database path or name, a package name, a package
// directory or a property key depending on Type.
type Error struct {
	Type    ErrorType
	Subject string
	Err     error
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := e.message()
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, msg, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, msg)
}

func (e *Error) message() string {
	switch e.Type {
	case ErrDatabaseIteration:
		return "failed to construct database iterator: " + e.Subject
	case ErrDatabaseLoad:
		return "failed to load database: " + e.Subject
	case ErrDatabaseNotFound:
		return "failed to find database: " + e.Subject
	case ErrPackageNotFound:
		return "failed to find package: " + e.Subject
	case ErrPackageParseSize:
		return "package parse failure while parsing integers: " + e.Subject
	case ErrPackagePropertyMissing:
		return "package property missing: " + e.Subject
	case ErrPackageUTF8Conversion:
		return "package utf8 conversion failed after extraction: " + e.Subject
	case ErrPackageChecksum:
		return "package file does not match database: " + e.Subject
	default:
		return e.Subject
	}
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates an Error of the given type.
func NewError(t ErrorType, subject string, err error) *Error {
	return &Error{Type: t, Subject: subject, Err: err}
}

// IsType reports whether err, or any error it wraps, is an *Error of type t.
func IsType(err error, t ErrorType) bool {
	var e *Error
	return errors.As(err, &e) && e.Type == t
}

// IsFatal reports whether err ends a package iteration.
func IsFatal(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Type.Fatal()
}
