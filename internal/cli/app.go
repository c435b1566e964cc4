// Package cli provides the vacuum command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/AaronLay10/vacuumworld/internal/config"
	"github.com/AaronLay10/vacuumworld/internal/search"
	"github.com/AaronLay10/vacuumworld/internal/version"
)

// App represents the CLI application.
type App struct {
	root   *cobra.Command
	stdout io.Writer
	stderr io.Writer
}

func New() *App {
	app := &App{
		stdout: os.Stdout,
		stderr: os.Stderr,
	}

	app.root = &cobra.Command{
		Use:   "vacuum",
		Short: "Search for cleaning plans in the vacuum world",
		Long: `vacuum finds action sequences that let a vacuum agent clean every dirty
cell of a small grid. It runs iterative deepening, uniform-cost tree search
and uniform-cost graph search, and reports expansion counts, timing and the
solution path for each.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	app.root.AddCommand(
		app.newVersionCmd(),
		app.newStrategiesCmd(),
		app.newValidateCmd(),
		app.newRunCmd(),
	)

	return app
}

// WithOutput sets custom output writers.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	a.root.SetOut(stdout)
	a.root.SetErr(stderr)
	return a
}

// Execute runs the CLI until it finishes or receives SIGINT/SIGTERM.
func (a *App) Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return a.root.ExecuteContext(ctx)
}

// ExecuteWithArgs runs the CLI with specific arguments (useful for testing).
func (a *App) ExecuteWithArgs(ctx context.Context, args []string) error {
	a.root.SetArgs(args)
	return a.Execute(ctx)
}

func (a *App) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.stdout, "vacuum version %s\n", version.Version)
		},
	}
}

func (a *App) newStrategiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "List the available search strategies",
		Run: func(cmd *cobra.Command, args []string) {
			for _, s := range search.Strategies() {
				fmt.Fprintf(a.stdout, "%-10s %s\n", s, s.Describe())
			}
		},
	}
}

// loadConfig reads path, or returns the built-in reference configuration
// when path is empty.
func loadConfig(path string) (*config.File, error) {
	if path == "" {
		return config.Default(), nil
	}
	f, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return f, nil
}
