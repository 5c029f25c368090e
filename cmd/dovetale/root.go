package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"dovetale/pkg/auth"
	"dovetale/pkg/config"
	"dovetale/pkg/logger"
	"dovetale/pkg/ui"
)

var (
	// Version information
	version   = "1.0.0"
	gitCommit = "unknown"
	buildDate = "unknown"
)

// globalOptions holds the persistent flags shared by every command
type globalOptions struct {
	configFile   string
	logLevel     string
	clientID     string
	clientSecret string
	baseURL      string
	authURL      string
	timeout      time.Duration
	paramsInBody bool
	save         string
	account      string
	raw          bool
	query        string
	quiet        bool
	noColor      bool
}

// app carries the state a command run needs
type app struct {
	opts       globalOptions
	cfg        *config.Config
	in         io.Reader
	out        io.Writer
	errOut     io.Writer
	printer    *ui.Printer
	log        logger.Logger
	newManager func() (*auth.Manager, error)
}

func newApp(in io.Reader, out, errOut io.Writer) *app {
	return &app{
		in:         in,
		out:        out,
		errOut:     errOut,
		newManager: auth.NewManager,
	}
}

// newRootCmd builds the command tree
func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dovetale",
		Short: "Query the Dovetale social media data API",
		Long: `dovetale is a command-line client for the Dovetale API.

It looks up Instagram, Twitter, YouTube, Facebook and Twitch profiles by URL,
username or platform id, and manages the lists of profiles your account tracks.

Credentials are read from, in order:
  - --client-id and --client-secret flags
  - DOVETALE_CLIENT_ID and DOVETALE_CLIENT_SECRET
  - the configuration file
  - credentials stored with 'dovetale auth login'`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.SetIn(a.in)
	rootCmd.SetOut(a.out)
	rootCmd.SetErr(a.errOut)

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.opts.configFile, "config", "c", "", "config file (default is ./.dovetale.yaml or ~/.config/dovetale/config.yaml)")
	flags.StringVar(&a.opts.logLevel, "log-level", "", "log level (debug, info, warn, error, disabled)")
	flags.StringVar(&a.opts.clientID, "client-id", "", "API client ID")
	flags.StringVar(&a.opts.clientSecret, "client-secret", "", "API client secret")
	flags.StringVar(&a.opts.baseURL, "base-url", "", "API base URL")
	flags.StringVar(&a.opts.authURL, "auth-url", "", "OAuth token URL")
	flags.DurationVar(&a.opts.timeout, "timeout", 0, "per-request timeout, e.g. 30s")
	flags.BoolVar(&a.opts.paramsInBody, "params-in-body", false, "send GET parameters as a form body instead of the query string")
	flags.StringVar(&a.opts.save, "save", "", "directory to save response snapshots in")
	flags.StringVarP(&a.opts.account, "account", "a", "", "use specific stored credentials")
	flags.BoolVar(&a.opts.raw, "raw", false, "print response bodies exactly as received")
	flags.StringVar(&a.opts.query, "query", "", "print only the value at this gjson path, e.g. profiles.#.username")
	flags.BoolVarP(&a.opts.quiet, "quiet", "q", false, "suppress all output except results and errors")
	flags.BoolVar(&a.opts.noColor, "no-color", false, "disable colored output")
	_ = flags.MarkHidden("base-url")
	_ = flags.MarkHidden("auth-url")

	rootCmd.SetVersionTemplate(`dovetale {{.Version}}
Go Version: ` + runtime.Version() + `
OS/Arch: ` + runtime.GOOS + `/` + runtime.GOARCH + `
`)

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(
		newAuthCmd(a),
		newConfigCmd(a),
		newProfileCmd(a),
		newListCmd(a),
	)

	return rootCmd
}

// setup loads configuration and initializes logging and output
func (a *app) setup(cmd *cobra.Command) error {
	a.printer = ui.NewPrinter(a.out, a.errOut)
	if a.opts.noColor {
		a.printer.SetColor(false)
	}
	a.printer.SetQuiet(a.opts.quiet)

	cfg, err := config.Load(a.opts.configFile, a.changedFlags(cmd))
	if err != nil {
		return err
	}
	a.cfg = cfg

	if err := logger.Initialize(&cfg.Logging); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.log = logger.GetLogger().WithField("command", cmd.CommandPath())

	return nil
}

// changedFlags collects the flags set on the command line for config merging
func (a *app) changedFlags(cmd *cobra.Command) map[string]interface{} {
	flags := make(map[string]interface{})
	changed := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}

	if changed("client-id") {
		flags["client-id"] = a.opts.clientID
	}
	if changed("client-secret") {
		flags["client-secret"] = a.opts.clientSecret
	}
	if changed("base-url") {
		flags["base-url"] = a.opts.baseURL
	}
	if changed("auth-url") {
		flags["auth-url"] = a.opts.authURL
	}
	if changed("timeout") {
		flags["timeout"] = a.opts.timeout
	}
	if changed("params-in-body") {
		flags["params-in-body"] = a.opts.paramsInBody
	}
	if changed("save") {
		flags["save"] = a.opts.save
	}
	if changed("log-level") {
		flags["log-level"] = a.opts.logLevel
	}
	return flags
}

// Execute runs the CLI and exits non-zero on failure
func Execute(ctx context.Context) {
	a := newApp(os.Stdin, os.Stdout, os.Stderr)
	if err := newRootCmd(a).ExecuteContext(ctx); err != nil {
		ui.PrintError("Error", err)
		os.Exit(exitCode(err))
	}
}
