package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
)

type CLI struct {
	Verbose bool `help:"Log generator progress to stderr." short:"v"`

	Version VersionCmd `cmd:"" help:"Print version information."`
	Gen     GenCmd     `cmd:"" help:"Generate proxies for annotated interfaces."`
	Check   CheckCmd   `cmd:"" help:"Report diagnostics without writing files."`
}

// Globals are bound into every command's Run method.
type Globals struct {
	Logger  *slog.Logger
	Version string
	Stdout  io.Writer
	Stderr  io.Writer
}

func newLogger(verbose bool, w io.Writer) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func newParser(cli *CLI, stdout, stderr io.Writer) (*kong.Kong, error) {
	return kong.New(cli,
		kong.Name("apiproxy"),
		kong.Description("Generate HTTP proxies for Go interfaces annotated with //apiproxy: directives."),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
	)
}

// run parses args and runs the selected command.
func run(cli *CLI, parser *kong.Kong, args []string) error {
	ctx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	return ctx.Run(&Globals{
		Logger:  newLogger(cli.Verbose, parser.Stderr),
		Version: Version(),
		Stdout:  parser.Stdout,
		Stderr:  parser.Stderr,
	})
}

func main() {
	cli := &CLI{}
	parser, err := newParser(cli, os.Stdout, os.Stderr)
	if err != nil {
		panic(err)
	}
	parser.FatalIfErrorf(run(cli, parser, os.Args[1:]))
}
