// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// app builds the root command.
func (r *Runner) app() *cli.Command {
	return &cli.Command{
		Name:    "dcx",
		Usage:   "Mirror storefront design content from a remote node into a local tree",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.StringFlag{
				Name:    "base",
				Aliases: []string{"b"},
				Usage:   "Root of the local mirror tree (overrides workspace.base_dir)",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable debug logging",
			},
		},
		Before:   r.Before,
		Commands: r.register(),
	}
}

// grabCommand mirrors everything the node offers.
func grabCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "grab",
		Usage: "Grab all content from the node into the mirror tree",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "node",
				Aliases: []string{"n"},
				Usage:   "Admin URL of the node (overrides node.url and CC_NODE)",
			},
			&cli.BoolFlag{
				Name:  "clean",
				Usage: "Remove the tracked directories before grabbing",
			},
			&cli.BoolFlag{
				Name:  "tui",
				Usage: "Show progress in an interactive terminal UI",
			},
		},
		Action: r.Grab,
	}
}

// refreshCommand syncs a single path.
func refreshCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "refresh",
		Usage:     "Refresh one file or directory of the mirror tree from the node",
		ArgsUsage: "<path>",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "path"},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "node",
				Aliases: []string{"n"},
				Usage:   "Admin URL of the node (overrides node.url and CC_NODE)",
			},
		},
		Action: r.Refresh,
	}
}

// classifyCommand reports the content type of a path without contacting the node.
func classifyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "classify",
		Usage:     "Print the content type of a path in the mirror tree",
		ArgsUsage: "<path>",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "path"},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Classify,
	}
}

// statusCommand shows the session recorded in the mirror tree.
func statusCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "status",
		Usage:  "Show the last grab recorded in the mirror tree and the journal",
		Action: r.Status,
	}
}

// historyCommand lists journaled grabs.
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List previous grab sessions",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text, csv or markdown",
				Value:   "text",
			},
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"l"},
				Usage:   "Maximum number of sessions to show",
				Value:   20,
			},
			&cli.StringFlag{
				Name:  "node",
				Usage: "Only show sessions against this node",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write to this file instead of stdout",
			},
		},
		Action: r.History,
	}
}

// setupCommand handles setup operations for configuration and the session journal.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "config",
				Usage:  "Write a config.toml from the built-in template",
				Action: r.SetupConfig,
			},
			{
				Name:   "database",
				Usage:  "Initialize the session journal and run migrations",
				Action: r.SetupDatabase,
			},
		},
	}
}
