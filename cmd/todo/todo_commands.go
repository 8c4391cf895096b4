package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nhle/todo/internal/model"
	"github.com/nhle/todo/internal/todos"
)

// todo list
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List todos",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		f, err := model.ParseFilter(listFilter)
		if err != nil {
			return err
		}
		return listTodos(cmd, f)
	},
}

var listFilter string

// todo add
var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a todo",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdd,
}

var (
	addPriority string
	addDue      string
)

// todo toggle
var toggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Flip a todo between active and completed",
	Args:  cobra.ExactArgs(1),
	RunE:  runToggle,
}

// todo done
var doneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Toggle completion from the detail view",
	Args:  cobra.ExactArgs(1),
	RunE:  runDone,
}

// todo rm
var rmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a todo",
	Args:    cobra.ExactArgs(1),
	RunE:    runRemove,
}

// todo clear
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every completed todo",
	Args:  cobra.NoArgs,
	RunE:  runClear,
}

// todo show
var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a todo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return showTodo(cmd, args[0])
	},
}

// todo edit
var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a todo",
	Long: `Edit a todo.

Only the given flags change. An empty --description clears the
description; --no-due clears the due date.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

var (
	editTitle       string
	editDescription string
	editPriority    string
	editDue         string
	editNoDue       bool
)

// todo theme
var themeCmd = &cobra.Command{
	Use:       "theme [dark|light|toggle]",
	Short:     "Show or change the color theme",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"dark", "light", "toggle"},
	RunE:      runTheme,
}

func init() {
	listCmd.Flags().StringVarP(&listFilter, "filter", "f", "all", "all, active or completed")

	addCmd.Flags().StringVarP(&addPriority, "priority", "p", "medium", "high, medium or low")
	addCmd.Flags().StringVar(&addDue, "due", "", "due date (YYYY-MM-DD)")

	editCmd.Flags().StringVar(&editTitle, "title", "", "new title")
	editCmd.Flags().StringVar(&editDescription, "description", "", "new description (markdown)")
	editCmd.Flags().StringVarP(&editPriority, "priority", "p", "", "high, medium or low")
	editCmd.Flags().StringVar(&editDue, "due", "", "due date (YYYY-MM-DD)")
	editCmd.Flags().BoolVar(&editNoDue, "no-due", false, "clear the due date")
	editCmd.MarkFlagsMutuallyExclusive("due", "no-due")

	rootCmd.AddCommand(listCmd, addCmd, toggleCmd, doneCmd, rmCmd, clearCmd, showCmd, editCmd, themeCmd)
}

func listTodos(cmd *cobra.Command, f model.Filter) error {
	ctx := cmd.Context()
	ctrl := todos.NewList(env.repo, env.cfg.DefaultTheme())
	if err := ctrl.Mount(ctx); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	visible := ctrl.Filter(f)
	if len(visible) == 0 {
		if f == model.FilterAll {
			fmt.Fprintln(out, "No todos.")
		} else {
			fmt.Fprintf(out, "No %s todos.\n", f)
		}
	}
	now := env.repo.Now()
	for _, t := range visible {
		fmt.Fprintln(out, formatTodoLine(t, now))
	}
	fmt.Fprintln(out, formatSummary(ctrl.ActiveCount(), ctrl.CompletedCount()))
	return nil
}

func runAdd(cmd *cobra.Command, args []string) error {
	priority, err := model.ParsePriority(addPriority)
	if err != nil {
		return err
	}
	due, err := model.ParseDueDate(addDue)
	if err != nil {
		return err
	}

	ctrl := todos.NewList(env.repo, env.cfg.DefaultTheme())
	added, err := ctrl.Add(cmd.Context(), args[0], priority, due)
	if err != nil {
		return err
	}
	if !added {
		return fmt.Errorf("title must not be blank")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added todo %d\n", ctrl.Todos()[0].ID)
	return nil
}

func runToggle(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	id, err := requireTodo(cmd, args[0])
	if err != nil {
		return err
	}

	ctrl := todos.NewList(env.repo, env.cfg.DefaultTheme())
	if err := ctrl.Toggle(ctx, id); err != nil {
		return err
	}
	return reportCompletion(ctx, cmd, id)
}

func runDone(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	d := todos.NewDetail(env.repo)
	if err := loadDetail(cmd, d, args[0]); err != nil {
		return err
	}
	if err := d.ToggleComplete(ctx); err != nil {
		return err
	}
	if d.State() != todos.DetailLoaded {
		return notFound(cmd)
	}
	return reportCompletion(ctx, cmd, d.ID())
}

func runRemove(cmd *cobra.Command, args []string) error {
	id, err := requireTodo(cmd, args[0])
	if err != nil {
		return err
	}

	ctrl := todos.NewList(env.repo, env.cfg.DefaultTheme())
	if err := ctrl.Delete(cmd.Context(), id); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed todo %d\n", id)
	return nil
}

func runClear(cmd *cobra.Command, _ []string) error {
	ctrl := todos.NewList(env.repo, env.cfg.DefaultTheme())
	n, err := ctrl.ClearCompleted(cmd.Context())
	if err != nil {
		return err
	}
	noun := "todos"
	if n == 1 {
		noun = "todo"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d completed %s\n", n, noun)
	return nil
}

func runEdit(cmd *cobra.Command, args []string) error {
	patch, err := editPatch(cmd)
	if err != nil {
		return err
	}

	d := todos.NewDetail(env.repo)
	if err := loadDetail(cmd, d, args[0]); err != nil {
		return err
	}
	if err := d.Update(cmd.Context(), patch); err != nil {
		return err
	}
	if d.State() != todos.DetailLoaded {
		return notFound(cmd)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated todo %d\n", d.ID())
	return nil
}

// editPatch builds a patch from the flags that were set.
func editPatch(cmd *cobra.Command) (model.TodoPatch, error) {
	var patch model.TodoPatch
	flags := cmd.Flags()

	if flags.Changed("title") {
		title := editTitle
		patch.Title = &title
	}
	if flags.Changed("description") {
		desc := editDescription
		patch.Description = &desc
	}
	if flags.Changed("priority") {
		p, err := model.ParsePriority(editPriority)
		if err != nil {
			return patch, err
		}
		patch.Priority = &p
	}
	if flags.Changed("due") {
		due, err := model.ParseDueDate(editDue)
		if err != nil {
			return patch, err
		}
		patch.DueDate = due
		patch.ClearDueDate = due == nil
	}
	if editNoDue {
		patch.ClearDueDate = true
	}
	return patch, nil
}

func runTheme(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		t, err := env.repo.Theme(ctx, env.cfg.DefaultTheme())
		if err != nil {
			return err
		}
		fmt.Fprintln(out, t)
		return nil
	}

	if args[0] == "toggle" {
		ctrl := todos.NewList(env.repo, env.cfg.DefaultTheme())
		if err := ctrl.Mount(ctx); err != nil {
			return err
		}
		t, err := ctrl.ToggleTheme(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, t)
		return nil
	}

	t, err := model.ParseTheme(args[0])
	if err != nil {
		return err
	}
	if err := env.repo.SetTheme(ctx, t); err != nil {
		return err
	}
	fmt.Fprintln(out, t)
	return nil
}

// requireTodo resolves raw to the id of a stored todo, reporting a miss
// the same way show does.
func requireTodo(cmd *cobra.Command, raw string) (int64, error) {
	d := todos.NewDetail(env.repo)
	if err := loadDetail(cmd, d, raw); err != nil {
		return 0, err
	}
	return d.ID(), nil
}

// loadDetail loads raw into d and fails with "Todo not found" on a miss.
func loadDetail(cmd *cobra.Command, d *todos.Detail, raw string) error {
	if err := d.LoadByID(cmd.Context(), raw); err != nil {
		return err
	}
	if d.State() != todos.DetailLoaded {
		return notFound(cmd)
	}
	return nil
}

func notFound(cmd *cobra.Command) error {
	fmt.Fprintln(cmd.ErrOrStderr(), "Todo not found")
	return exitError{code: 1}
}

func reportCompletion(ctx context.Context, cmd *cobra.Command, id int64) error {
	t, err := env.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	verb := "Reopened"
	if t.Completed {
		verb = "Completed"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s todo %d\n", verb, id)
	return nil
}
