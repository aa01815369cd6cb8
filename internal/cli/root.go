// Package cli implements the taskboard command line.
package cli

import (
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"

	"taskboard/internal/client"
	"taskboard/internal/config"
)

type globalOptions struct {
	configPath string
	user       string
	server     string
}

// NewRootCommand builds the command tree.
func NewRootCommand(version string) *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:           "taskboard",
		Short:         "Projects and prioritised task lists",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default ./taskboard.yaml or ~/.taskboard/taskboard.yaml)")
	rootCmd.PersistentFlags().StringVarP(&opts.user, "user", "u", "", "User to act as (overrides client.user)")
	rootCmd.PersistentFlags().StringVar(&opts.server, "server", "", "Server base URL (overrides client.base_url)")

	rootCmd.AddCommand(newServeCmd(opts))
	rootCmd.AddCommand(newProjectsCmd(opts))
	rootCmd.AddCommand(newTasksCmd(opts))
	rootCmd.AddCommand(newMoveCmd(opts))

	return rootCmd
}

// Execute runs the root command and returns the process exit code.
func Execute(version string, args []string, stdout, stderr io.Writer) int {
	rootCmd := NewRootCommand(version)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	return 0
}

// loadConfig reads the config file and applies flag overrides.
func (o *globalOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.user != "" {
		cfg.Client.User = o.user
	}
	if o.server != "" {
		cfg.Client.BaseURL = o.server
	}
	return cfg, nil
}

// newClient returns a client for projectID built from cfg.
func newClient(cfg *config.Config, projectID string) (*client.Client, error) {
	if cfg.Client.User == "" {
		return nil, fmt.Errorf("no user configured: pass --user or set TASKBOARD_CLIENT_USER")
	}
	return client.New(cfg.Client.BaseURL, projectID,
		client.WithUser(cfg.Client.User),
		client.WithHTTPClient(&http.Client{Timeout: cfg.Client.Timeout}),
	), nil
}

