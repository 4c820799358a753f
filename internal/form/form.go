// Package form is the terminal front end: three text areas whose contents
// become an interviewer prompt, and a pane showing the interviewer's reply.
package form

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/samcharles93/interviewer/internal/generation"
	"github.com/samcharles93/interviewer/internal/interview"
)

const (
	fieldProblem = iota
	fieldCode
	fieldThoughts
	fieldCount
)

var labels = [fieldCount]string{
	"Problem Description",
	"Your Code",
	"Your Thoughts",
}

var placeholders = [fieldCount]string{
	"Paste the problem statement...",
	"Your current solution...",
	"Explain your approach...",
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	labelStyle  = lipgloss.NewStyle().Bold(true)
	activeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	replyStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
)

// Options configures a Model. Zero values select the standard template and
// the interactive sampling policy.
type Options struct {
	Template interview.Template
	Params   *generation.Params
	Loader   string
}

type resultMsg struct {
	res generation.Result
	err error
}

type Model struct {
	ctx     context.Context
	gen     generation.Generator
	tmpl    interview.Template
	params  generation.Params
	loader  string
	fields  [fieldCount]textarea.Model
	focus   int
	spinner spinner.Model
	busy    bool
	reply   string
	err     error
	width   int
}

func New(ctx context.Context, gen generation.Generator, opts Options) Model {
	params := generation.InteractiveParams()
	if opts.Params != nil {
		params = *opts.Params
	}
	m := Model{
		ctx:     ctx,
		gen:     gen,
		tmpl:    opts.Template,
		params:  params,
		loader:  opts.Loader,
		spinner: spinner.New(),
		width:   80,
	}
	m.spinner.Spinner = spinner.Dot
	for i := range m.fields {
		ta := textarea.New()
		ta.Placeholder = placeholders[i]
		ta.ShowLineNumbers = i == fieldCode
		ta.CharLimit = 0
		ta.SetHeight(5)
		ta.SetWidth(m.width)
		m.fields[i] = ta
	}
	m.fields[fieldProblem].Focus()
	return m
}

func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = max(msg.Width-2, 20)
		for i := range m.fields {
			m.fields[i].SetWidth(m.width)
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			return m.setFocus((m.focus + 1) % fieldCount), nil
		case "shift+tab":
			return m.setFocus((m.focus + fieldCount - 1) % fieldCount), nil
		case "ctrl+s":
			if m.busy {
				return m, nil
			}
			m.busy = true
			m.err = nil
			return m, tea.Batch(m.spinner.Tick, m.generate(m.Prompt()))
		}
	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case resultMsg:
		m.busy = false
		m.err = msg.err
		if msg.err == nil {
			m.reply = msg.res.Text
		}
		return m, nil
	}

	if m.busy {
		return m, nil
	}
	var cmd tea.Cmd
	m.fields[m.focus], cmd = m.fields[m.focus].Update(msg)
	return m, cmd
}

func (m Model) setFocus(i int) Model {
	m.fields[m.focus].Blur()
	m.focus = i
	m.fields[m.focus].Focus()
	return m
}

// Prompt renders the current field values with the configured template.
func (m Model) Prompt() string {
	return m.tmpl.Render(interview.Context{
		Problem:           m.fields[fieldProblem].Value(),
		CandidateCode:     m.fields[fieldCode].Value(),
		CandidateThoughts: m.fields[fieldThoughts].Value(),
	})
}

// generate runs one synchronous generation call; failures are shown, never
// retried.
func (m Model) generate(prompt string) tea.Cmd {
	ctx, gen, params := m.ctx, m.gen, m.params
	return func() tea.Msg {
		res, err := gen.Generate(ctx, prompt, params)
		return resultMsg{res: res, err: err}
	}
}

// Reply is the last successful response.
func (m Model) Reply() string {
	return m.reply
}

func (m Model) Err() error {
	return m.err
}

func (m Model) View() string {
	var b strings.Builder
	title := "Technical Interview Simulator"
	if m.loader != "" {
		title += " (" + m.loader + ")"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	for i := range m.fields {
		style := labelStyle
		if i == m.focus {
			style = activeStyle
		}
		b.WriteString(style.Render(labels[i]))
		b.WriteByte('\n')
		b.WriteString(m.fields[i].View())
		b.WriteString("\n\n")
	}

	switch {
	case m.busy:
		b.WriteString(m.spinner.View() + " Waiting for the interviewer...")
		b.WriteString("\n\n")
	case m.err != nil:
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n\n")
	}
	if m.reply != "" {
		b.WriteString(labelStyle.Render("Interviewer Response"))
		b.WriteByte('\n')
		b.WriteString(replyStyle.Width(m.width).Render(m.reply))
		b.WriteString("\n\n")
	}
	b.WriteString(hintStyle.Render("tab/shift+tab: switch field  ctrl+s: get response  esc: quit"))
	b.WriteByte('\n')
	return b.String()
}

// Run shows the form until the user quits.
func Run(ctx context.Context, gen generation.Generator, opts Options) error {
	p := tea.NewProgram(New(ctx, gen, opts), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
