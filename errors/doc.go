// Package errors provides structured error types for the uasat shell.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). Convenience constructors cover the common cases:
//
//	err := errors.Load("read wasm file", cause)
//	err := errors.NotLoaded()
//	err := errors.CallFailed("test", cause)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
