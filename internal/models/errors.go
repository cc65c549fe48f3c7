package models

import (
	"errors"
	"fmt"
)

// ErrorType represents different categories of errors
type ErrorType int

const (
	ErrRegistryUnavailable ErrorType = iota
	ErrPackageNotFound
	ErrArchiveOpen
	ErrArchiveRead
	ErrIconRender
	ErrInvalidConfig
)

// String returns the string representation of ErrorType
func (e ErrorType) String() string {
	switch e {
	case ErrRegistryUnavailable:
		return "RegistryUnavailable"
	case ErrPackageNotFound:
		return "PackageNotFound"
	case ErrArchiveOpen:
		return "ArchiveOpen"
	case ErrArchiveRead:
		return "ArchiveRead"
	case ErrIconRender:
		return "IconRender"
	case ErrInvalidConfig:
		return "InvalidConfig"
	default:
		return "Unknown"
	}
}

// IntrospectError represents an error raised while inspecting a package
type IntrospectError struct {
	Type    ErrorType
	Package string
	Err     error
}

// Error implements the error interface
func (e *IntrospectError) Error() string {
	if e.Package != "" {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Package, e.Err)
	}
	return fmt.Sprintf("[%s] %v", e.Type, e.Err)
}

// Unwrap returns the wrapped error
func (e *IntrospectError) Unwrap() error {
	return e.Err
}

// IsType reports whether err wraps an IntrospectError of the given type
func IsType(err error, t ErrorType) bool {
	var ie *IntrospectError
	return errors.As(err, &ie) && ie.Type == t
}
