// Command kfbx inspects binary FBX files.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/twinfer/kfbx/pkg/combinator"
	"github.com/twinfer/kfbx/pkg/fbx"
	"github.com/twinfer/kfbx/pkg/kfbx"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		report(os.Stderr, err)
		os.Exit(1)
	}
}

// app holds what every sub-command shares once the persistent flags have
// been processed.
type app struct {
	stdout, stderr io.Writer

	configFile string
	debug      bool

	config  config
	logger  *slog.Logger
	decoder *kfbx.Decoder
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}
	addFlags := func(cmd *cobra.Command) error {
		cmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "log debugging information")
		cmd.PersistentFlags().StringVar(&a.configFile, "config", "", "load configuration from YAML file")
		return nil
	}
	var cmdRoot = &cobra.Command{
		Use:           "kfbx",
		Short:         "Binary FBX inspection utility",
		Long:          `Decode binary FBX files and dump, query or graph their node trees`,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	cmdRoot.SetOut(stdout)
	cmdRoot.SetErr(stderr)
	cmdRoot.AddCommand(a.cmdDump())
	cmdRoot.AddCommand(a.cmdHeader())
	cmdRoot.AddCommand(a.cmdFind())
	cmdRoot.AddCommand(a.cmdGraph())
	cmdRoot.AddCommand(a.cmdVersion())
	if err := addFlags(cmdRoot); err != nil {
		log.Fatal(err)
	}
	return cmdRoot
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := loadConfig(a.configFile)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("debug") {
		cfg.Debug = a.debug
	}
	a.config = cfg

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))

	opts := []kfbx.Option{kfbx.WithLogger(a.logger), kfbx.WithDebugMode(cfg.Debug)}
	if cfg.MaxInputSize > 0 {
		opts = append(opts, kfbx.WithMaxInputSize(cfg.MaxInputSize))
	}
	if cfg.QueryCacheSize > 0 {
		opts = append(opts, kfbx.WithQueryCacheSize(cfg.QueryCacheSize))
	}
	a.decoder = kfbx.NewDecoder(opts...)
	return nil
}

// report writes err to w. Decoding failures also get their label path and
// byte offset on separate lines.
func report(w io.Writer, err error) {
	fmt.Fprintf(w, "kfbx: %v\n", err)
	var f *combinator.Failure[fbx.Format]
	if errors.As(err, &f) {
		fmt.Fprintf(w, "  path:   %s\n", strings.Join(f.Path(), " > "))
		fmt.Fprintf(w, "  offset: %d\n", f.Offset())
	}
}
