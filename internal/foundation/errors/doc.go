// Package errors provides the classified error type used across blockrender.
//
// Errors carry a category (what kind of failure), a severity and free-form
// context, and are built through a small fluent API:
//
//	err := errors.WrapError(cause, errors.CategoryValidation, "invalid block document").
//		WithContext("path", "[3].children[0]").
//		Build()
//
// The CLI adapter maps categories to process exit codes.
package errors
