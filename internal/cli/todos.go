package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gqtodo/gqtodo/internal/model"
	"github.com/gqtodo/gqtodo/internal/ui"
)

func newLsCmd() *cobra.Command {
	var group bool
	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List todos",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			todos, err := a.client.Todos(cmd.Context())
			if err != nil {
				return err
			}
			renderList(todos, group)
			return nil
		},
	}
	cmd.Flags().BoolVar(&group, "group", false, "group output by pending/done")
	return cmd
}

func renderList(todos []model.Todo, group bool) {
	t := ui.Current()
	done := 0
	for _, td := range todos {
		if td.Done {
			done++
		}
	}

	lines := []string{ui.C(t.Title, "Todos"), ""}
	if group {
		for _, td := range todos {
			if !td.Done {
				lines = append(lines, ui.TodoLine(td))
			}
		}
		lines = append(lines, "")
		for _, td := range todos {
			if td.Done {
				lines = append(lines, ui.TodoLine(td))
			}
		}
	} else {
		for _, td := range todos {
			lines = append(lines, ui.TodoLine(td))
		}
	}
	lines = append(lines, "", ui.ProgressBar(done, len(todos), 28))
	ui.Panel(lines)
}

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a todo (title can be multiple words)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			title := strings.TrimSpace(strings.Join(args, " "))
			if title == "" {
				return fmt.Errorf("add: empty title")
			}
			td, err := a.client.CreateTodo(cmd.Context(), title)
			if err != nil {
				return err
			}
			ui.OK(fmt.Sprintf("added #%d", td.ID))
			return nil
		},
	}
}

func newDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle done for a todo by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("done: not a number: %s", args[0])
			}
			a, err := newApp()
			if err != nil {
				return err
			}
			// the update mutation needs the current title, so fetch first
			todos, err := a.client.Todos(cmd.Context())
			if err != nil {
				return err
			}
			for _, td := range todos {
				if td.ID == id {
					if _, err := a.client.UpdateTodo(cmd.Context(), td.ID, td.Title, !td.Done); err != nil {
						return err
					}
					ui.OK(fmt.Sprintf("toggled #%d", id))
					return nil
				}
			}
			return fmt.Errorf("no todo with id %d (run `gqtodo ls`)", id)
		},
	}
}

func newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a todo by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("rm: not a number: %s", args[0])
			}
			a, err := newApp()
			if err != nil {
				return err
			}
			if _, err := a.client.DeleteTodo(cmd.Context(), id); err != nil {
				return err
			}
			ui.OK(fmt.Sprintf("removed #%d", id))
			return nil
		},
	}
}
