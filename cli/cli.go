package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/luastd/cli/cmd"
	"github.com/ardnew/luastd/pkg"
)

// CLI is the top-level command-line interface for luastd.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Std           string            `help:"Standard library the analyzed code targets."                     placeholder:"NAME" short:"s"`
	Library       map[string]string `help:"Register a custom library source (YAML, JSON, or TOML)."          placeholder:"NAME=FILE" short:"l"`
	Extension     string            `help:"Registered library describing host-specific globals."            placeholder:"NAME"`
	ExtensionRoot []string          `help:"Root identifier always attributed to the extension library."     placeholder:"ROOT"`
	Version       kong.VersionFlag  `help:"Print version and exit."`

	Init    cmd.Init    `cmd:"" help:"Write the current flags to the configuration file."`
	List    cmd.List    `cmd:"" help:"List registered standard libraries."`
	Show    cmd.Show    `cmd:"" help:"Print an inflated standard library."`
	Find    cmd.Find    `cmd:"" help:"Resolve a dotted path in the selected standard library."`
	Suggest cmd.Suggest `cmd:"" help:"Explain which standard libraries define a path."`
	Check   cmd.Check   `cmd:"" help:"Validate custom standard library files."`
}

// Run executes the luastd CLI with args. The exit function is called by
// kong for --help, --version, and usage errors.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	if err := mkdirAllRequired(); err != nil {
		return err
	}

	vars := kong.Vars{
		cmd.ConfigIdentifier: configFile(),
		cmd.CacheIdentifier:  cacheDir(),
		"version":            pkg.Name + " " + pkg.Version,
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Apply logging flags before kong reports any parse error.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(resolve, configFile()),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cli.Log.start(ctx)

	// No-op unless built with the pprof tag and a mode is selected.
	defer cli.Pprof.start(ctx)()

	session, err := cmd.NewSession(ctx, cmd.Options{
		Std:            cli.Std,
		Libraries:      cli.Library,
		Extension:      cli.Extension,
		ExtensionRoots: cli.ExtensionRoot,
	})
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithSession(ctx, session)

	return ktx.Run()
}
