// Package console implements the interactive line-based todo app.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"

	"todoapp/internal/tasklist"
)

const helpText = `Available commands:
  add <description>      - Add a new task
  delete <index>         - Delete a task by index
  update <index> <desc>  - Update a task's description
  complete <index>       - Toggle task completion
  list                   - Show all tasks
  search <keyword>       - Search tasks by keyword
  help                   - Show this message
  quit                   - Exit the application`

type styles struct {
	title   lipgloss.Style
	success lipgloss.Style
	err     lipgloss.Style
	muted   lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		success: r.NewStyle().Foreground(lipgloss.Color("42")),
		err:     r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		muted:   r.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// Session owns one task list and prints the outcome of every command to out.
// Colors are only emitted when out is a terminal.
type Session struct {
	list   *tasklist.List
	out    io.Writer
	styles styles
}

func NewSession(out io.Writer) *Session {
	return &Session{
		list:   tasklist.New(),
		out:    out,
		styles: newStyles(lipgloss.NewRenderer(out)),
	}
}

// Run prints the welcome banner and processes lines from in until quit, end of
// input, or ctx is cancelled.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	s.println(s.styles.title.Render("Welcome to Todo Console App!"))
	s.println(helpText)

	lines := make(chan string)
	readErr := make(chan error, 1)
	// The reader may stay blocked on in after ctx is done; it exits with the process.
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		fmt.Fprint(s.out, "> ")
		select {
		case <-ctx.Done():
			s.println("")
			s.goodbye()
			return nil
		case line, ok := <-lines:
			if !ok {
				s.println("")
				s.goodbye()
				select {
				case err := <-readErr:
					return err
				default:
					return nil
				}
			}
			if s.Dispatch(line) {
				return nil
			}
		}
	}
}

// Dispatch executes one input line and reports whether the session should end.
func (s *Session) Dispatch(line string) bool {
	command, rest := cut(line)
	command = strings.ToLower(command)

	switch command {
	case "":
	case "add":
		s.add(rest)
	case "delete":
		index, _ := cut(rest)
		s.delete(index)
	case "update":
		index, desc := cut(rest)
		if desc == "" {
			s.fail("Missing arguments. Usage: update <index> <description>")
			return false
		}
		s.update(index, desc)
	case "complete":
		index, _ := cut(rest)
		s.toggle(index)
	case "list":
		s.listAll()
	case "search":
		s.search(rest)
	case "help":
		s.println(helpText)
	case "quit":
		s.goodbye()
		return true
	default:
		s.fail(fmt.Sprintf("Unknown command '%s'. Type 'help' for available commands.", command))
	}
	return false
}

func (s *Session) add(description string) {
	task, err := s.list.Add(description)
	if err != nil {
		s.fail(err.Error())
		return
	}
	s.ok(fmt.Sprintf("Task added: %s (ID: %d)", task.Description, task.ID))
}

func (s *Session) delete(index string) {
	task, err := s.list.Delete(index)
	if err != nil {
		s.fail(err.Error())
		return
	}
	s.ok(fmt.Sprintf("Task %d deleted.", task.ID))
}

func (s *Session) update(index, description string) {
	task, err := s.list.Update(index, description)
	if err != nil {
		s.fail(err.Error())
		return
	}
	s.ok(fmt.Sprintf("Task %d updated.", task.ID))
}

func (s *Session) toggle(index string) {
	task, err := s.list.Toggle(index)
	if err != nil {
		s.fail(err.Error())
		return
	}
	status := "uncompleted"
	if task.Completed {
		status = "completed"
	}
	s.ok(fmt.Sprintf("Task %d marked as %s.", task.ID, status))
}

func (s *Session) listAll() {
	tasks := s.list.All()
	if len(tasks) == 0 {
		s.println(s.styles.muted.Render("No tasks yet. Add one with 'add <description>'."))
		return
	}
	for _, task := range tasks {
		s.println(task.String())
	}
}

func (s *Session) search(keyword string) {
	matches, err := s.list.Search(keyword)
	if err != nil {
		s.fail(err.Error())
		return
	}
	if len(matches) == 0 {
		s.println(s.styles.muted.Render(fmt.Sprintf("No tasks found matching '%s'.", strings.TrimSpace(keyword))))
		return
	}
	for _, task := range matches {
		s.println(task.String())
	}
}

func (s *Session) goodbye() {
	s.println("Goodbye!")
}

func (s *Session) ok(msg string) {
	s.println(s.styles.success.Render(msg))
}

func (s *Session) fail(msg string) {
	s.println(s.styles.err.Render("Error: " + msg))
}

func (s *Session) println(msg string) {
	fmt.Fprintln(s.out, msg)
}

// cut splits off the first whitespace-delimited word; rest is trimmed.
func cut(s string) (head, rest string) {
	s = strings.TrimSpace(s)
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i:])
}
