package task

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const fence = "---"

// record is the frontmatter wire shape. Parent is a legacy field folded
// into Before on load; records are always written back in the new shape.
type record struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title,omitempty"`
	Kind        Kind     `yaml:"type,omitempty"`
	Before      []string `yaml:"before,omitempty"`
	After       []string `yaml:"after,omitempty"`
	Validations []string `yaml:"validations,omitempty"`
	Gates       []Gate   `yaml:"gates,omitempty"`
	Complete    bool     `yaml:"complete,omitempty"`
	InProgress  *int     `yaml:"in_progress,omitempty"`
	Stopped     bool     `yaml:"stopped,omitempty"`
	Priority    int      `yaml:"priority,omitempty"`
	Parent      string   `yaml:"parent,omitempty"`
}

// UnmarshalYAML accepts both gate shapes: a bare name (pending) and a
// single-entry `name: status` mapping. Every entry is normalized here so
// nothing downstream branches on shape.
func (g *Gate) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		g.Name = node.Value
		g.Status = GatePending
		return nil
	case yaml.MappingNode:
		if len(node.Content) != 2 {
			return fmt.Errorf("line %d: gate mapping must have exactly one entry", node.Line)
		}
		g.Name = node.Content[0].Value
		g.Status = GateStatus(node.Content[1].Value)
		return nil
	default:
		return fmt.Errorf("line %d: gate entry must be a name or a name: status pair", node.Line)
	}
}

// MarshalYAML writes pending gates back as bare names.
func (g Gate) MarshalYAML() (interface{}, error) {
	if g.Status == GatePending {
		return g.Name, nil
	}
	return map[string]GateStatus{g.Name: g.Status}, nil
}

// Parse reads one record from its on-disk form: a YAML frontmatter block
// between `---` fences followed by a markdown description body.
func Parse(path string, data []byte) (Task, error) {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	if !strings.HasPrefix(text, fence+"\n") {
		return Task{}, &ParseError{File: path, Code: ParseMissingFrontmatter}
	}
	rest := text[len(fence)+1:]
	head, body, found := strings.Cut(rest, "\n"+fence)
	if !found {
		return Task{}, &ParseError{File: path, Code: ParseMissingFrontmatter}
	}
	body = strings.TrimPrefix(body, "\n")

	var rec record
	if err := yaml.Unmarshal([]byte(head), &rec); err != nil {
		return Task{}, &ParseError{File: path, Code: ParseInvalidYAML, Err: err}
	}
	if rec.Kind == "" {
		rec.Kind = KindTask
	}
	if rec.Parent != "" && !contains(rec.Before, rec.Parent) {
		rec.Before = append(rec.Before, rec.Parent)
	}

	t := Task{
		ID:          rec.ID,
		Title:       rec.Title,
		Kind:        rec.Kind,
		Description: strings.TrimRight(body, "\n"),
		Before:      rec.Before,
		After:       rec.After,
		Validations: rec.Validations,
		Gates:       rec.Gates,
		Complete:    rec.Complete,
		InProgress:  rec.InProgress,
		Stopped:     rec.Stopped,
		Priority:    rec.Priority,
	}
	if err := t.Validate(); err != nil {
		var perr *ParseError
		if errors.As(err, &perr) && perr.File == "" {
			perr.File = path
		}
		return Task{}, err
	}
	return t, nil
}

// Markdown renders the record back to its on-disk form. Parsing the
// result yields a field-for-field equivalent task.
func (t *Task) Markdown() (string, error) {
	rec := record{
		ID:          t.ID,
		Title:       t.Title,
		Kind:        t.Kind,
		Before:      t.Before,
		After:       t.After,
		Validations: t.Validations,
		Gates:       t.Gates,
		Complete:    t.Complete,
		InProgress:  t.InProgress,
		Stopped:     t.Stopped,
		Priority:    t.Priority,
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(rec); err != nil {
		return "", fmt.Errorf("serializing %s: %w", t.ID, err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("serializing %s: %w", t.ID, err)
	}

	var out strings.Builder
	out.WriteString(fence + "\n")
	out.Write(buf.Bytes())
	out.WriteString(fence + "\n")
	if t.Description != "" {
		out.WriteString("\n")
		out.WriteString(t.Description)
		out.WriteString("\n")
	}
	return out.String(), nil
}

// ParseSet reads several records from one document, separated by lines
// containing only `===`. Blank chunks are skipped so trailing separators
// are harmless.
func ParseSet(path string, data []byte) ([]Task, error) {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	var tasks []Task
	for _, chunk := range strings.Split(text, "\n===\n") {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		t, err := Parse(path, []byte(chunk+"\n"))
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
