package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/cra-labs/create-react-app/internal/branding"
	"github.com/cra-labs/create-react-app/internal/issue"
	"github.com/cra-labs/create-react-app/internal/manifest"
	"github.com/cra-labs/create-react-app/internal/naming"
	"github.com/cra-labs/create-react-app/internal/pkginfo"
	"github.com/cra-labs/create-react-app/internal/pkgmanager"
	"github.com/cra-labs/create-react-app/internal/preflight"
	"github.com/cra-labs/create-react-app/internal/resolve"
	"github.com/cra-labs/create-react-app/internal/runtime"
	"github.com/cra-labs/create-react-app/internal/ui"
	"golang.org/x/sync/errgroup"
)

// Options are the user's choices for one run.
type Options struct {
	Verbose        bool
	UseNpm         bool
	UsePnp         bool
	ScriptsVersion string
	Template       string
	// CachedLockfile is copied to yarn.lock when yarn uses YarnRegistry.
	CachedLockfile string
	YarnRegistry   string
}

// Initializer runs the installed scripts package's init entry point.
// *runtime.Node satisfies it.
type Initializer interface {
	RunInit(ctx context.Context, packageName string, args runtime.InitArgs) error
}

// Bootstrapper creates projects.
type Bootstrapper struct {
	Options   Options
	Runner    runtime.Runner
	Checker   *preflight.Checker
	Extractor *pkginfo.Extractor
	Installer pkgmanager.Installer
	Init      Initializer
	Printer   *ui.Printer
	Logger    *log.Logger
	// Confirm is asked before continuing with a deprecated scripts
	// package. Nil declines.
	Confirm ConfirmFunc
}

// New wires a Bootstrapper to real processes and the network.
func New(opts Options, runner runtime.Runner, printer *ui.Printer, logger *log.Logger) *Bootstrapper {
	return &Bootstrapper{
		Options:   opts,
		Runner:    runner,
		Checker:   preflight.New(runner, printer, logger),
		Extractor: &pkginfo.Extractor{Logger: logger},
		Installer: &pkgmanager.RunnerInstaller{Runner: runner},
		Init:      &runtime.Node{Runner: runner},
		Printer:   printer,
		Logger:    logger,
		Confirm:   TerminalConfirm(os.Stdin, printer.Writer()),
	}
}

func (b *Bootstrapper) logger() *log.Logger {
	if b.Logger == nil {
		return log.Default()
	}
	return b.Logger
}

// install is the state carried from preflight into installation.
type install struct {
	manager    pkgmanager.Kind
	scriptsRef string
	legacy     bool
	usePnp     bool
	offline    bool
	node       string
}

// Create bootstraps the project name, relative to originalDir. Failures
// that were already explained to the user come back as *issue.ExitError;
// a declined deprecation prompt returns issue.ErrCancelled.
func (b *Bootstrapper) Create(ctx context.Context, originalDir, name string) error {
	wc := NewWorkingContext(originalDir, name)
	appName := wc.AppName()
	b.logger().Debug("creating project", "root", wc.RootDir, "original", wc.OriginalDir)

	if err := b.checkAppName(appName); err != nil {
		return issue.Exit(1, err)
	}

	scriptsRef, templateRef := b.resolveRefs(ctx, wc)
	if err := b.confirmDeprecated(scriptsRef); err != nil {
		return err
	}

	manager, err := b.establishRoot(ctx, wc, name)
	if err != nil {
		return err
	}

	if err := b.run(ctx, wc, manager, scriptsRef, templateRef); err != nil {
		b.Rollback(wc, err)
		return issue.Exit(1, err)
	}
	return nil
}

// checkAppName rejects names npm would refuse and names that shadow a
// dependency of the project.
func (b *Bootstrapper) checkAppName(appName string) error {
	p := b.Printer

	if r := naming.Validate(appName); !r.ValidForNewPackages() {
		p.Error("Cannot create a project named %s because of npm naming restrictions:", ui.StyleHighlight.Render(`"`+appName+`"`))
		p.Blank()
		for _, problem := range r.Problems() {
			p.Plain("  %s", ui.StyleError.Render("* "+problem))
		}
		p.Blank()
		p.Plain("%s", ui.StyleError.Render("Please choose a different project name."))
		return issue.New(issue.KindValidation, "invalid project name %q", appName)
	}

	reserved, deps := naming.Reserved(appName, append(branding.RuntimeDependencies(), branding.DefaultPackage()))
	if reserved {
		p.Error("Cannot create a project named %s because a dependency with the same name exists.", ui.StyleHighlight.Render(`"`+appName+`"`))
		p.Plain("%s", ui.StyleError.Render("Due to the way npm works, the following names are not allowed:"))
		p.Blank()
		for _, dep := range deps {
			p.Plain("  %s", ui.StyleHighlight.Render(dep))
		}
		p.Blank()
		p.Plain("%s", ui.StyleError.Render("Please choose a different project name."))
		return issue.New(issue.KindValidation, "project name %q is reserved", appName)
	}
	return nil
}

// resolveRefs turns the version and template options into install
// references. Both resolve against the original directory.
func (b *Bootstrapper) resolveRefs(ctx context.Context, wc WorkingContext) (scriptsRef, templateRef string) {
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		scriptsRef = resolve.Scripts(b.Options.ScriptsVersion, wc.OriginalDir)
		return nil
	})
	g.Go(func() error {
		templateRef = resolve.Template(b.Options.Template, wc.OriginalDir)
		return nil
	})
	_ = g.Wait()
	b.logger().Debug("resolved references",
		"scripts", scriptsRef, "scripts_kind", resolve.Classify(scriptsRef),
		"template", templateRef, "template_kind", resolve.Classify(templateRef))
	return scriptsRef, templateRef
}

func (b *Bootstrapper) confirmDeprecated(scriptsRef string) error {
	d, ok := resolve.Deprecated(scriptsRef)
	if !ok {
		return nil
	}
	if b.Confirm == nil {
		return issue.ErrCancelled
	}
	proceed, err := b.Confirm(d.Message())
	if err != nil {
		return err
	}
	if !proceed {
		return issue.ErrCancelled
	}
	return nil
}

// establishRoot creates the project directory, verifies it is safe to use,
// writes the initial package.json and picks the package manager. Nothing
// here is rolled back.
func (b *Bootstrapper) establishRoot(ctx context.Context, wc WorkingContext, name string) (pkgmanager.Kind, error) {
	if err := os.MkdirAll(wc.RootDir, 0o755); err != nil {
		return 0, fmt.Errorf("creating %s: %w", wc.RootDir, err)
	}

	res, err := b.Checker.CheckDirectory(wc.RootDir, name)
	if err != nil {
		return 0, err
	}
	if !res.OK {
		return 0, issue.Exit(1, issue.New(issue.KindPreflight, "%s contains conflicting files", wc.RootDir))
	}

	b.Printer.Blank()
	b.Printer.Plain("Creating a new React app in %s.", ui.StyleHighlight.Render(wc.RootDir))
	b.Printer.Blank()

	if err := manifest.WriteFile(wc.Path(manifest.FileName), manifest.NewRoot(wc.AppName())); err != nil {
		return 0, err
	}

	return pkgmanager.Detect(ctx, b.Runner, b.Options.UseNpm), nil
}

// run covers every step that is rolled back on failure.
func (b *Bootstrapper) run(ctx context.Context, wc WorkingContext, manager pkgmanager.Kind, scriptsRef, templateRef string) error {
	st, err := b.preflight(ctx, wc, manager, scriptsRef)
	if err != nil {
		return err
	}

	b.Printer.Info("Installing packages. This might take a couple of minutes.")

	pkg, template, err := b.Extractor.ExtractBoth(ctx, st.scriptsRef, templateRef, wc.OriginalDir)
	if err != nil {
		return err
	}
	plan := b.negotiate(st.scriptsRef, templateRef, pkg, template)

	if st.offline {
		b.Printer.Warning("You appear to be offline.")
		b.Printer.Warning("Falling back to the local Yarn cache.")
		b.Printer.Blank()
	}
	err = b.Installer.Install(ctx, pkgmanager.Request{
		Manager:      st.manager,
		Root:         wc.RootDir,
		Dependencies: plan.Dependencies,
		UsePnp:       st.usePnp,
		Offline:      st.offline,
		Verbose:      b.Options.Verbose,
	})
	if err != nil {
		return err
	}

	if err := b.postInstall(ctx, wc, plan, st); err != nil {
		return err
	}

	if st.legacy {
		b.Printer.Blank()
		b.Printer.Warning("Note: the project was bootstrapped with an old unsupported version of tools.")
		b.Printer.Warning("Please update to Node >=10 and npm >=6 to get supported tools in new projects.")
		b.Printer.Blank()
	}
	return nil
}

// preflight runs the checks for the chosen manager and settles the legacy
// fallback, Plug'n'Play and offline mode.
func (b *Bootstrapper) preflight(ctx context.Context, wc WorkingContext, manager pkgmanager.Kind, scriptsRef string) (install, error) {
	st := install{manager: manager, scriptsRef: scriptsRef, usePnp: b.Options.UsePnp}
	c := b.Checker

	if manager == pkgmanager.Yarn {
		if st.usePnp && !c.CheckYarnPnp(ctx).OK {
			st.usePnp = false
		}
		st.offline = !c.CheckOnline(ctx, true)
		copied, err := pkgmanager.CopyCachedLockfile(ctx, b.Runner, b.Options.CachedLockfile, wc.RootDir, b.Options.YarnRegistry)
		if err != nil {
			return st, err
		}
		if copied {
			b.logger().Debug("copied cached lockfile", "from", b.Options.CachedLockfile)
		}
	} else {
		if !c.CheckNpmCwd(ctx, wc.RootDir).OK {
			return st, issue.New(issue.KindPreflight, "npm does not start in %s", wc.RootDir)
		}
		if c.CheckNpm(ctx).Fallback {
			st.legacy = true
		}
		if st.usePnp {
			b.Printer.Warning("NPM doesn't support PnP.")
			b.Printer.Warning("Falling back to the regular installs.")
			b.Printer.Blank()
			st.usePnp = false
		}
	}

	node, err := c.CheckNode(ctx)
	if err != nil {
		return st, err
	}
	st.node = node.Version
	if node.Fallback {
		st.legacy = true
	}

	if st.legacy {
		st.scriptsRef = branding.LegacyPackage()
	}
	b.logger().Debug("preflight complete", "manager", manager, "pnp", st.usePnp, "offline", st.offline, "legacy", st.legacy)
	return st, nil
}

// negotiate builds the install plan and tells the user what is installed.
func (b *Bootstrapper) negotiate(scriptsRef, templateRef string, pkg, template pkginfo.Info) InstallPlan {
	plan := NewInstallPlan(scriptsRef, templateRef, pkg, template)
	p := b.Printer

	if !plan.TemplateSupported && b.Options.Template != "" {
		verb := "may not be"
		if pkg.Name == branding.DefaultPackage() {
			verb = "is not"
		}
		p.Blank()
		p.Plain("The %s version you're using %s compatible with the %s option.",
			ui.StyleHighlight.Render(pkg.Name), verb, ui.StyleHighlight.Render("--template"))
		p.Blank()
	}

	with := ""
	if plan.TemplateSupported {
		with = " with " + ui.StyleHighlight.Render(template.Name)
	}
	p.Info("Installing %s, %s, and %s%s...",
		ui.StyleHighlight.Render("react"), ui.StyleHighlight.Render("react-dom"),
		ui.StyleHighlight.Render(pkg.Name), with)
	p.Blank()
	return plan
}

// postInstall loosens the runtime dependency pins, verifies the installed
// scripts package accepts the host Node.js and runs its init script.
func (b *Bootstrapper) postInstall(ctx context.Context, wc WorkingContext, plan InstallPlan, st install) error {
	packageName := plan.Package.Name

	err := manifest.UpdateFile(wc.Path(manifest.FileName), func(doc *manifest.Document) error {
		pkg, err := doc.Typed()
		if err != nil {
			return err
		}
		if pkg.Dependencies == nil {
			return manifest.ErrNoDependencies
		}
		if _, ok := pkg.Dependencies[packageName]; !ok {
			return fmt.Errorf("unable to find %s in package.json", packageName)
		}
		unpatched, err := manifest.SetCaretRanges(doc, branding.RuntimeDependencies()...)
		for _, u := range unpatched {
			b.Printer.Error("%s", u)
		}
		return err
	})
	if err != nil {
		return err
	}

	if err := b.checkEngines(wc, packageName, st.node); err != nil {
		return err
	}

	return b.Init.RunInit(ctx, packageName, runtime.InitArgs{
		Root:        wc.RootDir,
		AppName:     wc.AppName(),
		Verbose:     b.Options.Verbose,
		OriginalDir: wc.OriginalDir,
		Template:    plan.TemplateName(),
	})
}

// checkEngines compares the host Node.js with the engines.node range of the
// installed scripts package. Under Plug'n'Play there is no node_modules
// copy to read and the check is skipped.
func (b *Bootstrapper) checkEngines(wc WorkingContext, packageName, nodeVersion string) error {
	path := wc.Path("node_modules", packageName, manifest.FileName)
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	err := manifest.CheckNodeEngine(path, nodeVersion)
	var mismatch *manifest.EngineMismatch
	if errors.As(err, &mismatch) {
		b.Printer.Error("You are running Node %s.", nodeVersion)
		b.Printer.Error("%s requires Node %s or higher.", branding.DisplayName(), mismatch.Required)
		b.Printer.Error("Please update your version of Node.")
		return issue.Wrap(issue.KindPreflight, err, "unsupported Node.js version")
	}
	return err
}
