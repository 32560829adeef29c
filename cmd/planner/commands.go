package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/contrib/envconfig"
	"go.temporal.io/sdk/worker"
	"golang.org/x/term"

	"github.com/mfateev/agent-planner/internal/activities"
	"github.com/mfateev/agent-planner/internal/agent"
	"github.com/mfateev/agent-planner/internal/cli"
	"github.com/mfateev/agent-planner/internal/config"
	"github.com/mfateev/agent-planner/internal/dataanalysis"
	"github.com/mfateev/agent-planner/internal/llm"
	"github.com/mfateev/agent-planner/internal/log"
	"github.com/mfateev/agent-planner/internal/mcpserver"
	"github.com/mfateev/agent-planner/internal/planner"
	"github.com/mfateev/agent-planner/internal/tabular"
	"github.com/mfateev/agent-planner/internal/workflow"
)

type rootOptions struct {
	configPath   string
	verbose      bool
	dataAnalysis bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "planner",
		Short: "Plan multi-agent task execution with an LLM",
		Long: `Planner breaks a natural-language task down into an ordered list of subtasks,
each assigned to one of the configured worker agents. It prompts a language model
once per task and parses the answer into a structured plan.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.verbose {
				log.SetLevel(charmlog.DebugLevel)
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", os.Getenv("PLANNER_CONFIG"),
		"Path to the TOML config file (default: $PLANNER_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&opts.dataAnalysis, "data-analysis", "d", false,
		"Describe the data file named in backticks in the task to the planner")

	rootCmd.AddCommand(planCmd(opts), workerCmd(opts), mcpCmd(opts), versionCmd())
	return rootCmd
}

func planCmd(opts *rootOptions) *cobra.Command {
	var (
		jsonOut     bool
		noColor     bool
		noMarkdown  bool
		useTemporal bool
		traceID     string
		timeout     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "plan <task>",
		Short: "Create a plan for a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFromPath(opts.configPath)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var p planner.PlanCreator
			if useTemporal {
				c, err := dialTemporal(cfg.Temporal)
				if err != nil {
					return err
				}
				defer c.Close()
				p = cli.NewWorkflowPlanner(c, cfg.Temporal.TaskQueue, timeout)
			} else {
				local, err := buildPlanner(cfg, opts.dataAnalysis)
				if err != nil {
					return err
				}
				defer releasePlanner(local)
				p = local
				if timeout > 0 {
					var cancel context.CancelFunc
					ctx, cancel = context.WithTimeout(ctx, timeout)
					defer cancel()
				}
			}

			fd := int(os.Stdout.Fd())
			width := cli.DefaultWidth
			if w, _, err := term.GetSize(fd); err == nil && w > 0 {
				width = w
			}
			app := cli.NewApp(cli.Config{
				Task:       strings.Join(args, " "),
				TraceID:    traceID,
				JSON:       jsonOut,
				NoColor:    noColor || !term.IsTerminal(fd),
				NoMarkdown: noMarkdown,
				Width:      width,
			}, p, os.Stdout)
			return app.Run(ctx)
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the plan as JSON")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	cmd.Flags().BoolVar(&noMarkdown, "no-markdown", false, "Disable markdown rendering")
	cmd.Flags().BoolVar(&useTemporal, "temporal", false, "Plan through a running planning worker")
	cmd.Flags().StringVar(&traceID, "trace-id", "", "Trace ID for the planning call (default: random)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Abort planning after this long (0 = no limit)")
	return cmd
}

func workerCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Run the Temporal planning worker",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFromPath(opts.configPath)
			if err != nil {
				return err
			}
			p, err := buildPlanner(cfg, opts.dataAnalysis)
			if err != nil {
				return err
			}
			defer releasePlanner(p)

			c, err := dialTemporal(cfg.Temporal)
			if err != nil {
				return err
			}
			defer c.Close()

			w := worker.New(c, cfg.Temporal.TaskQueue, worker.Options{})
			w.RegisterWorkflow(workflow.PlanningWorkflow)
			w.RegisterActivity(activities.NewPlannerActivities(p))

			log.Info("planning worker started",
				"task_queue", cfg.Temporal.TaskQueue, "planner", p.Name(), "workers", agentNames(p))
			if err := w.Run(worker.InterruptCh()); err != nil {
				return fmt.Errorf("worker stopped: %w", err)
			}
			return nil
		},
	}
}

func mcpCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the create_plan tool over MCP stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFromPath(opts.configPath)
			if err != nil {
				return err
			}
			p, err := buildPlanner(cfg, opts.dataAnalysis)
			if err != nil {
				return err
			}
			defer releasePlanner(p)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			// stdout carries the MCP stream; the logger writes to stderr.
			log.Info("serving MCP on stdio",
				"tool", mcpserver.ToolName, "planner", p.Name(), "workers", agentNames(p))
			return mcpserver.Serve(ctx, p, version)
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the planner version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}

// buildPlanner creates the base planner, or the data-analysis planner when
// requested, and runs its setup hook.
func buildPlanner(cfg *config.Config, dataAnalysis bool) (*planner.Planner, error) {
	client := llm.NewMultiProviderClient()

	var (
		p   *planner.Planner
		err error
	)
	if dataAnalysis {
		p, err = dataanalysis.NewPlanner(cfg, client, tabular.NewInspector())
	} else {
		p, err = planner.New(cfg, client)
	}
	if err != nil {
		return nil, err
	}
	if err := agent.Build(context.Background(), p); err != nil {
		return nil, fmt.Errorf("failed to set up planner: %w", err)
	}
	return p, nil
}

// agentNames lists the worker agents the planner can assign subtasks to.
func agentNames(p *planner.Planner) []string {
	agents := p.Agents()
	names := make([]string, 0, len(agents))
	for _, a := range agents {
		names = append(names, a.Name)
	}
	return names
}

// releasePlanner runs the planner's teardown hook.
func releasePlanner(p *planner.Planner) {
	if err := agent.Cleanup(context.Background(), p); err != nil {
		log.Warn("planner cleanup failed", "planner", p.Name(), "error", err)
	}
}

// dialTemporal connects using the Temporal environment configuration,
// overridden by the config file.
func dialTemporal(cfg config.TemporalConfig) (client.Client, error) {
	opts, err := envconfig.LoadDefaultClientOptions()
	if err != nil {
		return nil, fmt.Errorf("failed to load Temporal client options: %w", err)
	}
	if cfg.HostPort != "" {
		opts.HostPort = cfg.HostPort
	}
	if cfg.Namespace != "" {
		opts.Namespace = cfg.Namespace
	}
	opts.Logger = log.TemporalLogger{}

	c, err := client.Dial(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Temporal: %w", err)
	}
	return c, nil
}
