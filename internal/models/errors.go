package models

import "fmt"

// ValidationError signals malformed or out-of-range input. Field names the
// offending attribute so the HTTP layer can echo it back to the client.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// BusinessRuleError signals a structurally valid request that breaks a
// domain invariant, such as completing an already-cancelled session.
type BusinessRuleError struct {
	Rule string
}

func (e *BusinessRuleError) Error() string { return e.Rule }

// NotFoundError covers both entities that do not exist and entities owned by
// another account. Callers cannot tell the two apart.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }
