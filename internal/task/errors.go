package task

import "fmt"

// ParseCode identifies the record-level rule a malformed file violated.
type ParseCode string

const (
	ParseMissingFrontmatter ParseCode = "missing-frontmatter"
	ParseInvalidYAML        ParseCode = "invalid-yaml"
	ParseEmptyID            ParseCode = "empty-id"
	ParseReservedID         ParseCode = "reserved-id"
	ParseInvalidID          ParseCode = "invalid-id"
	ParseInvalidKind        ParseCode = "invalid-kind"
	ParseInvalidGateStatus  ParseCode = "invalid-gate-status"
	ParseValidatorWithAfter ParseCode = "validator-with-after"
	ParseJotWithGates       ParseCode = "jot-with-gates"
	ParseJotComplete        ParseCode = "jot-complete"
)

// ParseError reports a malformed record. File is the source path when
// known, ID the record id when one could be read.
type ParseError struct {
	File   string
	ID     string
	Code   ParseCode
	Detail string
	Err    error
}

func (e *ParseError) Error() string {
	where := e.File
	if where == "" {
		where = e.ID
	}
	switch e.Code {
	case ParseMissingFrontmatter:
		return fmt.Sprintf("%s: missing frontmatter, records must open with a '---' fence", where)
	case ParseInvalidYAML:
		return fmt.Sprintf("%s: invalid frontmatter yaml: %v", where, e.Err)
	case ParseEmptyID:
		return fmt.Sprintf("%s: record has an empty id, set a non-empty 'id' field", where)
	case ParseReservedID:
		return fmt.Sprintf("id %q is reserved for the interactive picker, choose another id", e.ID)
	case ParseInvalidID:
		return fmt.Sprintf("id %q contains whitespace, ids must be single tokens", e.ID)
	case ParseInvalidKind:
		return fmt.Sprintf("%s: unknown type %q, expected jot, task, or validator", where, e.Detail)
	case ParseInvalidGateStatus:
		return fmt.Sprintf("%s: unknown gate status %q, expected pending, passed, failed, or skipped", where, e.Detail)
	case ParseValidatorWithAfter:
		return fmt.Sprintf("validator %q declares dependencies, remove its 'after' entries", e.ID)
	case ParseJotWithGates:
		return fmt.Sprintf("jot %q carries gates, distill it into a task before gating", e.ID)
	case ParseJotComplete:
		return fmt.Sprintf("jot %q is marked complete, jots must be distilled instead", e.ID)
	}
	return fmt.Sprintf("%s: malformed record (%s)", where, e.Code)
}

func (e *ParseError) Unwrap() error { return e.Err }
