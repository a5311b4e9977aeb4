package errs

import "fmt"

// ValidationError is raised before any network call; the request never
// reaches storage or the database.
type ValidationError struct {
	Err error
}

func (t ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", t.Err)
}

func (t ValidationError) Unwrap() error { return t.Err }

// LookupError means a referenced template could not be fetched.
type LookupError struct {
	Err error
}

func (t LookupError) Error() string {
	return fmt.Sprintf("lookup failed: %v", t.Err)
}

func (t LookupError) Unwrap() error { return t.Err }

// UploadError aborts the remaining submission steps. Objects uploaded before
// the failure are left behind in storage.
type UploadError struct {
	Err error
}

func (t UploadError) Error() string {
	return fmt.Sprintf("upload failed: %v", t.Err)
}

func (t UploadError) Unwrap() error { return t.Err }

// PersistError means the order insert failed after the uploads succeeded.
type PersistError struct {
	Err error
}

func (t PersistError) Error() string {
	return fmt.Sprintf("persist failed: %v", t.Err)
}

func (t PersistError) Unwrap() error { return t.Err }

type RetryableError struct {
	Err error
}

func (t RetryableError) Error() string {
	return fmt.Sprintf("retryable error: %v", t.Err)
}

func (t RetryableError) Unwrap() error { return t.Err }
