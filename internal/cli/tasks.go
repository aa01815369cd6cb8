package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"taskboard/internal/models"
)

const deadlineDisplay = "2006-01-02 15:04"

func newProjectsCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "List your projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			c, err := newClient(cfg, "")
			if err != nil {
				return err
			}

			projects, err := c.ListProjects(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME")
			for _, p := range projects {
				fmt.Fprintf(w, "%s\t%s\n", p.ID, p.Name)
			}
			return w.Flush()
		},
	}
}

func newTasksCmd(opts *globalOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "tasks <project-id>",
		Short: "List a project's tasks in priority order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			tasks, err := c.ListTasks(cmd.Context())
			if err != nil {
				return err
			}

			return writeTasks(cmd.OutOrStdout(), tasks, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format (table, json, yaml)")

	return cmd
}

func checkOutputFormat(format string) error {
	switch strings.ToLower(format) {
	case "json", "yaml", "table", "":
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want table, json or yaml)", format)
	}
}

// writeTasks renders tasks in the requested format.
func writeTasks(out io.Writer, tasks []models.Task, format string) error {
	if err := checkOutputFormat(format); err != nil {
		return err
	}
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(tasks)
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(tasks); err != nil {
			return err
		}
		return enc.Close()
	case "table", "":
		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "#\tPRIORITY\tDONE\tDEADLINE\tNAME\tID")
		for i, t := range tasks {
			done := " "
			if t.Completed {
				done = "x"
			}
			deadline := "-"
			if t.Deadline != nil {
				deadline = t.Deadline.Format(deadlineDisplay)
			}
			fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\t%s\n", i, t.Priority, done, deadline, t.Name, t.ID)
		}
		return w.Flush()
	}
	return nil
}
