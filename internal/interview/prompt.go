// Package interview builds the interviewer instruction prompt from the state
// of a single coding-interview turn.
package interview

import (
	"fmt"
	"strings"
)

// Context is the input of one interview turn. It is built per request and
// never stored.
type Context struct {
	Problem           string
	CandidateCode     string
	CandidateThoughts string
}

// Template is a named interviewer persona. The zero value renders the
// standard persona.
type Template struct {
	name     string
	preamble string
}

var (
	// Standard is the full persona with rubric, problem catalog and canned
	// hint sequences.
	Standard = Template{name: "standard", preamble: standardPreamble}
	// Concise asks for short replies and forbids giving away the solution.
	Concise = Template{name: "concise", preamble: concisePreamble}
)

var templates = []Template{Standard, Concise}

// ParseTemplate resolves a template by name. An empty name selects Standard.
func ParseTemplate(name string) (Template, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return Standard, nil
	}
	for _, t := range templates {
		if t.name == n {
			return t, nil
		}
	}
	return Template{}, fmt.Errorf("unknown prompt template %q (expected %s)", name, strings.Join(TemplateNames(), ", "))
}

// TemplateNames lists the known template names in a stable order.
func TemplateNames() []string {
	names := make([]string, 0, len(templates))
	for _, t := range templates {
		names = append(names, t.name)
	}
	return names
}

// Name returns the template name.
func (t Template) Name() string {
	if t.preamble == "" {
		return Standard.name
	}
	return t.name
}

// Render writes the persona followed by the interview status block. Values
// are copied verbatim; nothing in them is interpreted.
func (t Template) Render(c Context) string {
	preamble := t.preamble
	if preamble == "" {
		preamble = standardPreamble
	}

	var b strings.Builder
	b.Grow(len(preamble) + len(statusProblem) + len(statusCode) + len(statusThoughts) + len(statusTail) +
		len(c.Problem) + len(c.CandidateCode) + len(c.CandidateThoughts))
	b.WriteString(preamble)
	b.WriteString(statusProblem)
	b.WriteString(c.Problem)
	b.WriteString(statusCode)
	b.WriteString(c.CandidateCode)
	b.WriteString(statusThoughts)
	b.WriteString(c.CandidateThoughts)
	b.WriteString(statusTail)
	return b.String()
}

// Prompt renders c with the standard template.
func (c Context) Prompt() string {
	return Standard.Render(c)
}

// BuildPrompt renders the standard interviewer prompt. candidateThoughts is
// commonly empty.
func BuildPrompt(problem, candidateCode, candidateThoughts string) string {
	return Context{
		Problem:           problem,
		CandidateCode:     candidateCode,
		CandidateThoughts: candidateThoughts,
	}.Prompt()
}
