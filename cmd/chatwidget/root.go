package main

import (
	"context"
	"fmt"
	"time"

	"github.com/matheus3301/chatwidget/internal/app"
	"github.com/matheus3301/chatwidget/internal/profile"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

const headlessTimeout = 10 * time.Second

type rootOptions struct {
	profile    string
	configPath string
	verbose    bool
}

// params resolves the profile and builds the fx params for it.
func (o *rootOptions) params() (app.Params, error) {
	name := profile.Resolve(o.profile)
	if err := profile.ValidateName(name); err != nil {
		return app.Params{}, err
	}
	return app.Params{Profile: name, ConfigPath: o.configPath, Console: o.verbose}, nil
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "chatwidget",
		Short: "Floating community chat panel for the terminal",
		Long: `chatwidget mounts the community chat widget: a contacts sidebar, a
message thread and a composer in a panel that can be opened, minimized and
closed. Without a subcommand it runs the terminal UI.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.profile, "profile", "", "profile name (overrides config default)")
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "widget config path (defaults to the profile's widget.toml)")

	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "also log to stderr (ignored by the terminal UI)")

	root.AddCommand(
		newContactsCmd(opts),
		newThreadCmd(opts),
		newSendCmd(opts),
		newConfigCmd(opts),
	)
	return root
}

func runTUI(ctx context.Context, opts *rootOptions) error {
	p, err := opts.params()
	if err != nil {
		return err
	}
	p.Console = false

	fxApp := fx.New(
		app.Module(p),
		app.TUIModule(),
	)
	if err := fxApp.Err(); err != nil {
		return err
	}

	startCtx, cancel := context.WithTimeout(ctx, fxApp.StartTimeout())
	defer cancel()
	if err := fxApp.Start(startCtx); err != nil {
		return err
	}

	sig := <-fxApp.Wait()

	stopCtx, cancel := context.WithTimeout(context.Background(), fxApp.StopTimeout())
	defer cancel()
	if err := fxApp.Stop(stopCtx); err != nil {
		return err
	}
	if sig.ExitCode != 0 {
		return fmt.Errorf("terminal UI exited with code %d", sig.ExitCode)
	}
	return nil
}
