package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"pkt.systems/psi"
	"pkt.systems/pslog"

	"ikill/cmd/ikill/corpus"
	"ikill/cmd/ikill/finder"
	"ikill/cmd/ikill/notify"
	"ikill/cmd/ikill/snapshot"
	"ikill/pkg/lib"
)

// runFlags are the root command flags. Each one overrides the config file.
type runFlags struct {
	config  string
	finder  string
	signal  string
	notify  string
	options string
	confirm bool
	noTUI   bool
}

func (f *runFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.finder, "finder", "", "selection surface ("+finder.KindNames()+")")
	fs.StringVar(&f.signal, "signal", "", "signal to send: term or kill")
	fs.StringVar(&f.notify, "notify", "", "summary destination: desktop, stdout or none")
	fs.StringVar(&f.options, "options", "", "selection options, same syntax as $"+finder.EnvOptions)
	fs.BoolVar(&f.confirm, "confirm", false, "ask before killing the selected processes")
	fs.BoolVar(&f.noTUI, "no-tui", false, "print the process list and exit")
}

// apply overlays the flags the user actually set on cfg.
func (f *runFlags) apply(cfg *Config, fs *pflag.FlagSet) error {
	if fs.Changed("finder") {
		cfg.Finder = f.finder
	}
	if fs.Changed("signal") {
		cfg.Signal = f.signal
	}
	if fs.Changed("notify") {
		cfg.Notify = f.notify
	}
	if fs.Changed("confirm") {
		cfg.Confirm = f.confirm
	}
	return cfg.validate()
}

func main() {
	psi.Run(submain)
}

func submain(ctx context.Context) int {
	logger := pslog.LoggerFromEnv(
		pslog.WithEnvWriter(os.Stderr),
		pslog.WithEnvOptions(pslog.Options{Mode: pslog.ModeConsole}),
	)
	ctx = pslog.ContextWithLogger(ctx, logger)

	return lib.Report(os.Stderr, newRootCmd().ExecuteContext(ctx))
}

func newRootCmd() *cobra.Command {
	var flags runFlags

	root := &cobra.Command{
		Use:   appName,
		Short: "Interactively pick running processes and kill them",
		Long: appName + ` lists the running processes, lets you fuzzy-search and mark
several of them, sends each one a termination signal and reports the
result as a desktop notification.

Selection options are read from $` + finder.EnvOptions + `, the --options
flag and the config file (` + configFileName + ` in $` + envConfigDir + `,
$XDG_CONFIG_HOME/` + appName + ` or ~/.config/` + appName + `).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags.config)
			if err != nil {
				return err
			}
			if err := flags.apply(&cfg, cmd.Flags()); err != nil {
				return err
			}
			if flags.noTUI {
				return printCorpus(cmd, snapshot.System{})
			}
			p, err := newPipeline(cfg, flags.options)
			if err != nil {
				return err
			}
			return p.run(cmd.Context())
		},
	}
	root.SilenceErrors = true
	root.SilenceUsage = true

	root.PersistentFlags().StringVar(&flags.config, "config", "", "config file (default: <config dir>/"+configFileName+")")
	flags.register(root.Flags())

	root.AddCommand(newListCommand())
	root.AddCommand(newConfigCommand(&flags))
	return root
}

// newPipeline builds the production pipeline from the effective config.
func newPipeline(cfg Config, flagOptions string) (pipeline, error) {
	tokens, err := overrideTokens(flagOptions, os.Getenv(finder.EnvOptions), cfg.Options)
	if err != nil {
		return pipeline{}, err
	}
	kind, err := finder.ParseKind(cfg.Finder)
	if err != nil {
		return pipeline{}, err
	}
	surface, err := finder.New(kind, finder.Resolve(tokens))
	if err != nil {
		return pipeline{}, err
	}
	sig, err := snapshot.ParseSignal(cfg.Signal)
	if err != nil {
		return pipeline{}, err
	}

	p := pipeline{
		source:  snapshot.System{},
		surface: surface,
		sink:    newSink(cfg.Notify),
		signal:  sig,
		timeout: cfg.NotifyTimeout,
		stderr:  os.Stderr,
	}
	if cfg.Confirm {
		p.confirm = confirmKill
	}
	return p, nil
}

func newSink(mode string) notify.Sink {
	switch mode {
	case notifyStdout:
		return notify.Writer{W: os.Stdout}
	case notifyNone:
		return notify.Discard{}
	default:
		return notify.Desktop{}
	}
}

// printCorpus writes the uncolored process list to the command's output.
func printCorpus(cmd *cobra.Command, src snapshot.Source) error {
	ctx := cmd.Context()
	c := corpus.Render(ctx, snapshot.Capture(ctx, src))
	out := cmd.OutOrStdout()
	if c.Len() == 0 {
		fmt.Fprintln(out, "no processes found")
		return nil
	}
	for _, line := range c.Plain() {
		fmt.Fprintln(out, line)
	}
	return nil
}
