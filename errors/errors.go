// Package errors provides error types and handling for the S3 sender adapter.
package errors

import (
	"errors"
	"fmt"
)

// Error represents a sender operation error with context about what failed.
// It wraps the underlying AWS SDK error (or local cause) with the operation,
// bucket, and object key involved.
type Error struct {
	// Op is the operation that failed (e.g., "upload", "createBucket")
	Op string

	// Bucket is the S3 bucket name (if applicable)
	Bucket string

	// Key is the S3 object key (if applicable)
	Key string

	// Err is the underlying error
	Err error
}

// Error implements the error interface by providing a formatted error message.
func (e *Error) Error() string {
	if e.Bucket != "" && e.Key != "" {
		return fmt.Sprintf("s3sender.%s %s/%s: %v", e.Op, e.Bucket, e.Key, e.Err)
	}
	if e.Bucket != "" {
		return fmt.Sprintf("s3sender.%s bucket %s: %v", e.Op, e.Bucket, e.Err)
	}
	if e.Key != "" {
		return fmt.Sprintf("s3sender.%s object %s: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("s3sender.%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error chaining support.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithBucket adds bucket context to an existing error.
func (e *Error) WithBucket(bucket string) *Error {
	e.Bucket = bucket
	return e
}

// WithKey adds object key context to an existing error.
func (e *Error) WithKey(key string) *Error {
	e.Key = key
	return e
}

// WithMessage wraps the underlying error with a custom message.
func (e *Error) WithMessage(message string) *Error {
	e.Err = fmt.Errorf("%s: %w", message, e.Err)
	return e
}

// NewError creates a new Error with the given operation and underlying error.
func NewError(op string, err error) *Error {
	return &Error{
		Op:  op,
		Err: err,
	}
}

// NewBucketError creates a new Error with bucket context.
func NewBucketError(op, bucket string, err error) *Error {
	return &Error{
		Op:     op,
		Bucket: bucket,
		Err:    err,
	}
}

// NewObjectError creates a new Error with bucket and key context.
func NewObjectError(op, bucket, key string, err error) *Error {
	return &Error{
		Op:     op,
		Bucket: bucket,
		Key:    key,
		Err:    err,
	}
}

// Sentinel errors for the sender's error taxonomy.
// These can be used with errors.Is() for error checking.
var (
	// ErrConfiguration indicates an invalid sender configuration; the sender
	// must not become usable after reporting it
	ErrConfiguration = errors.New("s3sender: invalid configuration")

	// ErrParameter indicates that resolving invocation parameters against the
	// message context failed
	ErrParameter = errors.New("s3sender: parameter resolution failed")

	// ErrBucketNotFound indicates that the requested bucket does not exist
	ErrBucketNotFound = errors.New("s3sender: bucket not found")

	// ErrObjectNotFound indicates that the requested object does not exist
	ErrObjectNotFound = errors.New("s3sender: object not found")

	// ErrBucketAlreadyExists indicates that the bucket already exists
	ErrBucketAlreadyExists = errors.New("s3sender: bucket already exists")

	// ErrObjectAlreadyExists indicates that an object already exists at the key
	ErrObjectAlreadyExists = errors.New("s3sender: object already exists")

	// ErrInvalidBucketName indicates that the bucket name is invalid
	ErrInvalidBucketName = errors.New("s3sender: invalid bucket name")

	// ErrInvalidObjectKey indicates that the object key is invalid
	ErrInvalidObjectKey = errors.New("s3sender: invalid object key")

	// ErrBucketCreationDisabled indicates an operation needed to create a
	// bucket while bucket creation is disabled in configuration
	ErrBucketCreationDisabled = errors.New("s3sender: bucket creation disabled")

	// ErrSenderNotConfigured indicates use of a sender whose configuration
	// was never validated successfully
	ErrSenderNotConfigured = errors.New("s3sender: sender not configured")

	// ErrSenderClosed indicates use of a sender after Close
	ErrSenderClosed = errors.New("s3sender: sender closed")

	// ErrTimeout indicates that the underlying client reported a timeout
	ErrTimeout = errors.New("s3sender: operation timeout")
)

// IsConfiguration checks if an error is a configuration error.
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// IsParameter checks if an error is a parameter resolution error.
func IsParameter(err error) bool {
	return errors.Is(err, ErrParameter)
}

// IsNotFound checks if an error indicates a missing bucket or object.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrBucketNotFound) || errors.Is(err, ErrObjectNotFound)
}

// IsAlreadyExists checks if an error indicates a bucket or object that is
// already present where absence was required.
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrBucketAlreadyExists) || errors.Is(err, ErrObjectAlreadyExists)
}

// IsTimeout checks if an error indicates a timeout surfaced by the client.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}
