package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/pathfinder/cli/cmd"
	"github.com/ardnew/pathfinder/pkg"
)

// CLI is the top-level command-line interface for pathfinder.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	File    string           `default:"${paths}" help:"Paths document to load." name:"file" short:"f" type:"path"`
	Version kong.VersionFlag `help:"Print version information and exit." short:"V"`

	Get    cmd.Get    `cmd:"" help:"Print the path of each key."`
	List   cmd.List   `cmd:"" default:"withargs" help:"List all named paths."`
	Env    cmd.Env    `cmd:"" help:"Print shell commands exporting all named paths."`
	Check  cmd.Check  `cmd:"" help:"Check paths documents for problems."`
	Init   cmd.Init   `cmd:"" help:"Write a starter paths document and configuration file."`
	Browse cmd.Browse `cmd:"" help:"Browse named paths interactively."`
}

// Run executes the pathfinder CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	if err := mkdirAllRequired(); err != nil {
		return err
	}

	configFilePath := pkg.ConfigPath(baseConfig)

	vars := kong.Vars{
		cmd.ConfigIdentifier: configFilePath,
		cmd.PathsIdentifier:  pkg.ConfigPath(basePaths),
		"version":            pkg.Summary(),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Apply logger flags before kong reports anything.
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
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configFilePath+".json"),
		kong.Configuration(resolve(ctx, baseConfig), configFilePath),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithFile(ctx, cli.File)

	defer cli.Log.start(ctx)()

	// No-op unless built with the pprof tag and a mode is selected.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}
