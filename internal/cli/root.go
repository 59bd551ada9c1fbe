package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/cra-labs/create-react-app/internal/bootstrap"
	"github.com/cra-labs/create-react-app/internal/branding"
	"github.com/cra-labs/create-react-app/internal/config"
	"github.com/cra-labs/create-react-app/internal/issue"
	"github.com/cra-labs/create-react-app/internal/runtime"
	"github.com/cra-labs/create-react-app/internal/ui"
	"github.com/cra-labs/create-react-app/internal/updater"
	"github.com/spf13/cobra"
)

var (
	buildVersion = updater.DevVersion
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	return fang.Execute(
		context.Background(),
		newRootCmd(),
		fang.WithVersion(versionString()),
		fang.WithErrorHandler(handleError),
		fang.WithNotifySignal(os.Interrupt),
	)
}

func versionString() string {
	if buildVersion == updater.DevVersion {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", buildVersion, buildCommit, buildDate)
}

func newRootCmd() *cobra.Command {
	var opts bootstrap.Options

	cmd := &cobra.Command{
		Use:   branding.CLIName() + " <project-directory>",
		Short: branding.Description(),
		Long: branding.DisplayName() + ` creates a new React project in <project-directory>.

It installs react, react-dom and the scripts package with yarn (or npm),
then hands over to the scripts package to generate the project from a
template.`,
		Example: `  ` + branding.CLIName() + ` my-app
  ` + branding.CLIName() + ` my-app --template typescript
  ` + branding.CLIName() + ` my-app --scripts-version 4.0.3 --use-npm`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if opts.Verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), level)))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				printMissingDirectory(ui.NewPrinter(cmd.ErrOrStderr()))
				return issue.Exit(1, nil)
			}
			return runCreate(cmd, args[0], opts)
		},
	}

	f := cmd.Flags()
	f.BoolVar(&opts.Verbose, "verbose", false, "print additional logs")
	f.StringVar(&opts.ScriptsVersion, "scripts-version", "", "use a non-standard version of react-scripts")
	f.StringVar(&opts.Template, "template", "", "specify a template for the created project")
	f.BoolVar(&opts.UseNpm, "use-npm", false, "use npm even if yarn is available")
	f.BoolVar(&opts.UsePnp, "use-pnp", false, "install with yarn Plug'n'Play")

	return cmd
}

func printMissingDirectory(p *ui.Printer) {
	name := branding.CLIName()
	p.Error("Please specify the project directory:")
	p.Command(name + " <project-directory>")
	p.Blank()
	p.Plain("For example:")
	p.Command(name + " my-react-app")
	p.Blank()
	p.Plain("Run %s to see all options.", ui.StyleCommand.Render(name+" --help"))
}

// runCreate loads settings, refuses outdated binaries and bootstraps the
// project in dir.
func runCreate(cmd *cobra.Command, dir string, opts bootstrap.Options) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	settings, err := config.Load()
	if err != nil {
		return err
	}
	opts.CachedLockfile = settings.CachedLockfile
	opts.YarnRegistry = settings.YarnRegistry

	runner := &runtime.ExecRunner{Stdout: cmd.OutOrStdout(), Stderr: cmd.ErrOrStderr()}

	if settings.UpdateCheck {
		u := updater.New(buildVersion,
			updater.WithRegistry(settings.NpmRegistry),
			updater.WithRunner(runner),
			updater.WithCache(config.Dir(), settings.UpdateCacheTTL),
			updater.WithLogger(logger),
		)
		if err := u.Check(ctx); err != nil {
			return err
		}
	}

	originalDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}

	b := bootstrap.New(opts, runner, ui.NewPrinter(cmd.OutOrStdout()), logger)
	b.Checker.YarnHost = settings.YarnHost
	return b.Create(ctx, originalDir, dir)
}
