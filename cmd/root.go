// Package cmd wires up the CLI commands and dispatches to the core
// modes.
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"tcpsock/config"
	"tcpsock/internal/core"
	"tcpsock/internal/metrics"
	"tcpsock/util"
)

// version is overridable at link time:
//
//	go build -ldflags "-X tcpsock/cmd.version=2.0.0"
var version = "1.0.0" //nolint:gochecknoglobals

// stdinIsTerminal reports whether stdin is interactive.  Piped stdin
// is forwarded to the peer in connect mode.
var stdinIsTerminal = func() bool { //nolint:gochecknoglobals
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	verbose    int
	configFile string
	stats      bool
	dryRun     bool
}

// Execute parses args and runs the selected tcpsock command.
func Execute(ctx context.Context, args []string) error {
	root := newRootCommand()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func newRootCommand() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "tcpsock",
		Short:   "tcpsock: a small IPv4 TCP socket toolkit",
		Version: version,
		Example: `  Serve one client on port 8080:
  $ tcpsock listen

  Serve three clients on the loopback address with a custom greeting:
  $ tcpsock listen 127.0.0.1 -p 9000 --count 3 --message "welcome"

  Talk to a server:
  $ tcpsock connect 127.0.0.1 8080 --message "Hello, server!"
  $ echo "hello" | tcpsock connect 127.0.0.1 8080

  Start the client first and let it wait for the server:
  $ tcpsock connect 127.0.0.1 8080 --wait 10s`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.CountVarP(&opts.verbose, "verbose", "v", "Increase verbosity (repeatable)")
	pf.StringVar(&opts.configFile, "config", "", "YAML config file")
	pf.BoolVar(&opts.stats, "stats", false, "Print connection metrics as JSON to stderr on exit")
	pf.BoolVar(&opts.dryRun, "dry-run", false, "Validate and print the resolved config, then exit")

	rootCmd.AddCommand(
		newListenCommand(opts),
		newConnectCommand(opts),
		newVersionCommand(),
	)
	return rootCmd
}

func newListenCommand(opts *globalOptions) *cobra.Command {
	var (
		port    int
		count   int
		message string
	)
	listenCmd := &cobra.Command{
		Use:   "listen [HOST]",
		Short: "Accept connections and greet each client",
		Long: `Bind HOST (every local IPv4 address by default) and accept --count
connections one after another.  Each client is sent the greeting and
whatever it sends back is printed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Flags(), opts)
			if err != nil {
				return err
			}
			cfg.Listen = true
			if len(args) == 1 {
				cfg.Host = args[0]
			}
			f := cmd.Flags()
			if f.Changed("port") {
				cfg.Port = port
			}
			if f.Changed("count") {
				cfg.Count = count
			}
			if f.Changed("message") {
				cfg.Message = message
			}
			return run(cmd, cfg, opts)
		},
	}
	listenCmd.Flags().IntVarP(&port, "port", "p", config.DefaultPort, "Port to listen on (0 picks one)")
	listenCmd.Flags().IntVar(&count, "count", config.DefaultCount, "Connections to serve before stopping")
	listenCmd.Flags().StringVar(&message, "message", config.DefaultGreeting, "Greeting sent to each client")
	return listenCmd
}

func newConnectCommand(opts *globalOptions) *cobra.Command {
	var (
		message    string
		wait       time.Duration
		sourcePort int
	)
	connectCmd := &cobra.Command{
		Use:   "connect HOST PORT",
		Short: "Connect to a server, send a message and print the reply",
		Long: `Connect to HOST:PORT, where HOST is an IPv4 address.  The --message
text is sent first; without it, piped stdin is sent instead.  One
reply is read and written to stdout.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Flags(), opts)
			if err != nil {
				return err
			}
			cfg.Listen = false
			cfg.Host = args[0]
			cfg.Port, err = config.ParsePort(args[1])
			if err != nil {
				return fmt.Errorf("port: %w", err)
			}
			f := cmd.Flags()
			if f.Changed("message") {
				cfg.Message = message
			}
			if f.Changed("wait") {
				cfg.Wait = wait
			}
			if f.Changed("source-port") {
				cfg.SourcePort = sourcePort
			}
			return run(cmd, cfg, opts)
		},
	}
	connectCmd.Flags().StringVar(&message, "message", "", "Text to send (default: piped stdin)")
	connectCmd.Flags().DurationVar(&wait, "wait", 0, "Keep retrying a refused connection for this long (e.g. 5s)")
	connectCmd.Flags().IntVar(&sourcePort, "source-port", 0, "Local port to connect from (default: any)")
	return connectCmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tcpsock %s\n", version)
		},
	}
}

// ── helpers ──────────────────────────────────────────────────────────

// loadConfig layers defaults, the config file, the environment and the
// global flags, lowest precedence first.  Command flags are applied by
// the caller.
func loadConfig(f *flag.FlagSet, opts *globalOptions) (*config.Config, error) {
	cfg := config.Default()
	if opts.configFile != "" {
		if err := config.LoadFile(cfg, opts.configFile); err != nil {
			return nil, err
		}
		cfg.ConfigFile = opts.configFile
	}
	config.LoadFromEnv(cfg)

	if f.Changed("verbose") {
		cfg.Verbose = opts.verbose
	}
	if f.Changed("stats") {
		cfg.Stats = opts.stats
	}
	return cfg, nil
}

func run(cmd *cobra.Command, cfg *config.Config, opts *globalOptions) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	if opts.dryRun {
		out, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	}

	logger := util.NewLogger(cfg.Verbose)
	logger.SetOutput(cmd.ErrOrStderr())

	var stats *metrics.Collector
	if cfg.Stats {
		stats = metrics.New()
		defer func() {
			fmt.Fprintln(cmd.ErrOrStderr(), stats.JSON())
		}()
	}

	stdio := core.IO{Stdout: cmd.OutOrStdout()}
	if !cfg.Listen && cfg.Message == "" {
		if stdinIsTerminal() {
			logger.Warn("no --message and stdin is a terminal, sending nothing")
		} else {
			stdio.Stdin = cmd.InOrStdin()
		}
	}

	mode, err := core.Build(cfg, logger, stats, stdio)
	if err != nil {
		return err
	}
	return mode.Run(cmd.Context())
}
