// Package validation provides centralized input validation logic for the
// sender: bucket name and object key syntax checks performed before any
// request is sent to AWS.
package validation
