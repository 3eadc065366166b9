// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// authFlags identify the user for watchlist commands.
func authFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "user",
			Aliases: []string{"u"},
			Usage:   "Username",
			Sources: cli.EnvVars("MVX_USER"),
		},
		&cli.StringFlag{
			Name:    "password",
			Aliases: []string{"p"},
			Usage:   "Password",
			Sources: cli.EnvVars("MVX_PASSWORD"),
		},
	}
}

func jsonFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "json",
		Usage: "Output JSON",
	}
}

// setupCommand handles first-run setup
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create a config file or initialize the catalog mirror database",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Write the example configuration",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Path of the config file to create",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
			{
				Name:   "database",
				Usage:  "Create the SQLite mirror and run migrations",
				Action: r.SetupDatabase,
			},
		},
	}
}

// catalogCommand handles catalog browsing and editing
func catalogCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "catalog",
		Aliases: []string{"movies"},
		Usage:   "Browse and edit the movie catalog",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List every movie",
				Flags:  []cli.Flag{jsonFlag()},
				Action: r.CatalogList,
			},
			{
				Name:      "search",
				Usage:     "Find movies by title or director",
				Arguments: []cli.Argument{&cli.StringArg{Name: "query"}},
				Flags:     []cli.Flag{jsonFlag()},
				Action:    r.CatalogSearch,
			},
			{
				Name:  "add",
				Usage: "Append a movie to the catalog file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "title",
						Usage:    "Movie title",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "director",
						Usage: "Director name",
					},
					&cli.IntFlag{
						Name:     "year",
						Usage:    "Release year",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "runtime",
						Usage: "Running time in minutes",
					},
				},
				Action: r.CatalogAdd,
			},
			{
				Name:      "remove",
				Aliases:   []string{"rm"},
				Usage:     "Delete a movie from the catalog file by title",
				Arguments: []cli.Argument{&cli.StringArg{Name: "title"}},
				Action:    r.CatalogRemove,
			},
			{
				Name:   "sync",
				Usage:  "Rebuild the SQLite mirror from the catalog file",
				Action: r.CatalogSync,
			},
			{
				Name:  "query",
				Usage: "Filter the SQLite mirror",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "director",
						Usage: "Director name contains",
					},
					&cli.StringFlag{
						Name:  "title",
						Usage: "Title contains",
					},
					&cli.IntFlag{
						Name:  "year",
						Usage: "Release year",
					},
					&cli.StringFlag{
						Name:  "exact",
						Usage: "Look up one exact title, ignoring the other filters",
					},
					jsonFlag(),
				},
				Action: r.CatalogQuery,
			},
			{
				Name:  "export",
				Usage: "Write the catalog as CSV",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (default standard output)",
					},
				},
				Action: r.CatalogExport,
			},
		},
	}
}

// userCommand handles account management
func userCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "user",
		Usage: "Register and log in",
		Commands: []*cli.Command{
			{
				Name:  "register",
				Usage: "Create an account",
				Flags: append(authFlags(), &cli.StringFlag{
					Name:  "confirm",
					Usage: "Repeat the password",
				}),
				Action: r.UserRegister,
			},
			{
				Name:   "login",
				Usage:  "Check a username and password",
				Flags:  authFlags(),
				Action: r.UserLogin,
			},
			{
				Name:   "list",
				Usage:  "List registered usernames",
				Flags:  []cli.Flag{jsonFlag()},
				Action: r.UserList,
			},
		},
	}
}

// watchlistCommand handles per-user watchlists
func watchlistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "watchlist",
		Aliases: []string{"wl"},
		Usage:   "Manage your watchlist",
		Commands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Add a catalog movie to your watchlist",
				Arguments: []cli.Argument{&cli.StringArg{Name: "title"}},
				Flags:     authFlags(),
				Action:    r.WatchlistAdd,
			},
			{
				Name:      "remove",
				Aliases:   []string{"rm"},
				Usage:     "Remove a movie from your watchlist",
				Arguments: []cli.Argument{&cli.StringArg{Name: "title"}},
				Flags:     authFlags(),
				Action:    r.WatchlistRemove,
			},
			{
				Name:   "list",
				Usage:  "Show your watchlist",
				Flags:  authFlags(),
				Action: r.WatchlistList,
			},
			{
				Name:  "export",
				Usage: "Export your watchlist to a file",
				Flags: append(authFlags(),
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: csv, md or txt",
						Value:   "txt",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (default {user}_watchlist.{format})",
					},
				),
				Action: r.WatchlistExport,
			},
			{
				Name:  "export-all",
				Usage: "Export every user's watchlist with a JSON manifest",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: csv, md or txt",
						Value:   "txt",
					},
					&cli.StringFlag{
						Name:    "output-dir",
						Aliases: []string{"o"},
						Usage:   "Output directory (default watchlist_export_{epoch})",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent export workers",
						Value: 4,
					},
					&cli.FloatFlag{
						Name:  "rate",
						Usage: "Maximum files written per second (0 is unlimited)",
					},
					jsonFlag(),
				},
				Action: r.WatchlistExportAll,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "File that receives log output while the TUI is running",
				Value: "./tmp/mvx-tui.log",
			},
		},
		Action: r.TUI,
	}
}
