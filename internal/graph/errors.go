package graph

import "fmt"

// Code identifies the structural invariant a record set violated.
type Code string

const (
	CodeDuplicateID                Code = "duplicate-id"
	CodeInvalidParent              Code = "invalid-parent"
	CodeInvalidPrecondition        Code = "invalid-precondition"
	CodeInvalidValidation          Code = "invalid-validation"
	CodeValidationNotRootValidator Code = "validation-not-root-validator"
	CodeCycleDetected              Code = "cycle-detected"
)

// Error reports the first structural violation found while forming a
// graph. ID names the offending task, Ref the reference that failed.
type Error struct {
	Code Code
	ID   string
	Ref  string
}

func (e *Error) Error() string {
	switch e.Code {
	case CodeDuplicateID:
		return fmt.Sprintf("duplicate task id %q, rename one of the records", e.ID)
	case CodeInvalidParent:
		return fmt.Sprintf("task %q lists %q in before, but no such task exists; remove the entry or create the task", e.ID, e.Ref)
	case CodeInvalidPrecondition:
		return fmt.Sprintf("task %q lists %q in after, but no such task exists; remove the entry or create the task", e.ID, e.Ref)
	case CodeInvalidValidation:
		return fmt.Sprintf("task %q lists %q in validations, but it does not resolve to a validator task", e.ID, e.Ref)
	case CodeValidationNotRootValidator:
		return fmt.Sprintf("task %q validates against %q, but %q is contained in another task; only root validators are reusable", e.ID, e.Ref, e.Ref)
	case CodeCycleDetected:
		return fmt.Sprintf("dependency cycle through task %q, break the cycle by removing one of its before/after edges", e.ID)
	}
	return fmt.Sprintf("task %q: invalid graph (%s)", e.ID, e.Code)
}
