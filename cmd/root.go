package cmd

import (
	"errors"
	"os"

	"github.com/fatih/color"
	"github.com/masmgr/commitgraph-go/internal/command"
	"github.com/masmgr/commitgraph-go/internal/output"
	"github.com/urfave/cli/v2"
)

// errUsage is returned when the program is not given exactly one argument.
var errUsage = errors.New("usage: commitgraph <path to configuration file>")

// App creates the CLI application.
func App() *cli.App {
	return newApp(command.ExecRunner{})
}

// newApp builds the application around runner, which executes git and graphviz.
func newApp(runner command.Runner) *cli.App {
	return &cli.App{
		Name:      "commitgraph",
		Usage:     "Render the commit ancestry of a git tag as an image",
		ArgsUsage: "<config file>",
		Version:   "1.0.0",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Print progress for each pipeline step",
			},
			&cli.StringFlag{
				Name:  "backend",
				Usage: "Repository backend (cli, gogit); overrides the configuration file",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Summary format (console, json)",
				Value:   "console",
			},
		},
		Action: func(c *cli.Context) error {
			return visualizeAction(c, runner)
		},
		HideHelpCommand: true,
	}
}

// parseArgs returns the configuration path, the only positional argument.
func parseArgs(c *cli.Context) (string, error) {
	if c.NArg() != 1 {
		_ = cli.ShowAppHelp(c)
		return "", errUsage
	}
	return c.Args().First(), nil
}

// Main runs the application with args and returns the process exit status.
func Main(args []string) int {
	return exitCode(App().Run(args))
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	color.Red("error: %s", err)
	return 1
}

// Run executes the CLI application.
func Run() {
	os.Exit(Main(os.Args))
}

func summaryFormat(c *cli.Context) output.OutputFormat {
	return output.ParseOutputFormat(c.String("format"))
}
