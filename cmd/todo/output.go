package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/nhle/todo/internal/markdown"
	"github.com/nhle/todo/internal/model"
	"github.com/nhle/todo/internal/todos"
)

const (
	timeLayout       = "2006-01-02 15:04:05"
	defaultLineWidth = 80
)

// formatTodoLine renders one todo for `todo list`.
func formatTodoLine(t model.Todo, now time.Time) string {
	check := "[ ]"
	if t.Completed {
		check = "[x]"
	}
	line := fmt.Sprintf("%s %d %-6s %s", check, t.ID, t.Priority, t.Title)
	if due := model.FormatDueDate(t.DueDate); due != "" {
		line += " (due " + due + ")"
		if t.IsOverdue(now) {
			line += " OVERDUE"
		}
	}
	return line
}

// formatSummary renders the counts footer.
func formatSummary(active, completed int) string {
	noun := "items"
	if active == 1 {
		noun = "item"
	}
	return fmt.Sprintf("%d %s left · %d completed", active, noun, completed)
}

func showTodo(cmd *cobra.Command, raw string) error {
	ctx := cmd.Context()
	d := todos.NewDetail(env.repo)
	if err := loadDetail(cmd, d, raw); err != nil {
		return err
	}
	t, _ := d.Todo()

	out := cmd.OutOrStdout()
	printTodoDetail(out, t)

	desc := t.DescriptionText()
	if strings.TrimSpace(desc) == "" {
		return nil
	}
	var body string
	if isTerminal() {
		theme, err := env.repo.Theme(ctx, env.cfg.DefaultTheme())
		if err != nil {
			return err
		}
		body = markdown.Render(desc, terminalWidth(), markdown.StyleFor(theme))
	} else {
		body = markdown.Wrap(desc, defaultLineWidth)
	}
	fmt.Fprintf(out, "\nDescription:\n%s\n", body)
	return nil
}

func printTodoDetail(w io.Writer, t model.Todo) {
	status := "active"
	if t.Completed {
		status = "completed"
	}
	fmt.Fprintf(w, "ID:       %d\n", t.ID)
	fmt.Fprintf(w, "Title:    %s\n", t.Title)
	fmt.Fprintf(w, "Status:   %s\n", status)
	fmt.Fprintf(w, "Priority: %s\n", t.Priority)
	if due := model.FormatDueDate(t.DueDate); due != "" {
		fmt.Fprintf(w, "Due:      %s\n", due)
	}
	fmt.Fprintf(w, "Created:  %s\n", t.CreatedAt.Local().Format(timeLayout))
	fmt.Fprintf(w, "Updated:  %s\n", t.UpdatedAt.Local().Format(timeLayout))
}

func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return defaultLineWidth
	}
	return w
}
