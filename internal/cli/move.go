package cli

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"taskboard/internal/reorder"
)

func newMoveCmd(opts *globalOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "move <project-id> <index> <up|down>",
		Short: "Swap a task with its neighbour and persist both priorities",
		Long: `Move the task at <index> (0-based, as shown by "tasks") one place up or
down. The two tasks exchange priorities and both changes are sent to the
server. If there is no neighbour in that direction nothing happens.

The direction may also be given as +1 or -1. A leading dash is read as a
flag, so end the flags first: taskboard move <project-id> 2 -- -1`,
		Example: `  taskboard move 3f2c... 0 down
  taskboard move -o json 3f2c... 2 -- -1`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid index %q: %w", args[1], err)
			}
			direction, err := parseDirection(args[2])
			if err != nil {
				return err
			}
			if err := checkOutputFormat(output); err != nil {
				return err
			}

			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			c, err := newClient(cfg, args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			tasks, err := c.ListTasks(ctx)
			if err != nil {
				return err
			}

			d := reorder.NewDispatcher(c,
				reorder.WithTimeout(cfg.Client.Timeout),
				reorder.WithLogger(log.New(cmd.ErrOrStderr(), "", log.LstdFlags)),
			)
			list := reorder.NewList(d, tasks)

			move := list.MoveTask(index, direction)

			// The process must not exit before queued updates are sent.
			var waitErr error
			if move != nil {
				waitErr = move.Wait(ctx)
			}
			if err := d.Close(context.WithoutCancel(ctx)); err != nil {
				return err
			}

			if move == nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "task %d has no neighbour in that direction; nothing moved\n", index)
			}
			if err := writeTasks(cmd.OutOrStdout(), list.Tasks(), output); err != nil {
				return err
			}
			if waitErr != nil {
				return fmt.Errorf("server did not accept the new order (run \"tasks\" to see the stored order): %w", waitErr)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format (table, json, yaml)")

	return cmd
}

func parseDirection(s string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "-1":
		return reorder.Up, nil
	case "down", "+1", "1":
		return reorder.Down, nil
	default:
		return 0, fmt.Errorf("invalid direction %q (want up or down)", s)
	}
}
