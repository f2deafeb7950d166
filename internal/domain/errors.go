/**
 * @description
 * Typed domain errors surfaced by the accounts-service. Each error carries
 * the offending resource and key so API handlers and logs can report what
 * exactly was missing or duplicated.
 */
package domain

import "fmt"

// AlreadyExistsError reports a create attempt that collides with an
// existing record on a unique business key.
type AlreadyExistsError struct {
	Resource string
	Field    string
	Value    string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s already registered with the given %s: %s", e.Resource, e.Field, e.Value)
}

// NotFoundError reports a lookup for a record that does not exist.
type NotFoundError struct {
	Resource string
	Field    string
	Value    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with the given %s: %s", e.Resource, e.Field, e.Value)
}

// ValidationError reports a request field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}
