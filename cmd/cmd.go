// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand handles setup operations for database and configuration.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
			{
				Name:  "config",
				Usage: "Create a config.toml from the embedded template",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
		},
	}
}

// authCommand handles account registration and login against the backend.
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage authentication",
		Commands: []*cli.Command{
			{
				Name:  "register",
				Usage: "Register a new account",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Usage: "Full name", Required: true},
					&cli.StringFlag{Name: "email", Usage: "Email address", Required: true},
					&cli.StringFlag{Name: "phone", Usage: "Phone number", Required: true},
					&cli.StringFlag{Name: "password", Usage: "Password", Required: true},
				},
				Action: r.AuthRegister,
			},
			{
				Name:  "verify",
				Usage: "Verify the one-time code sent after registration",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Usage: "Email address", Required: true},
					&cli.StringFlag{Name: "otp", Usage: "One-time code", Required: true},
				},
				Action: r.AuthVerify,
			},
			{
				Name:  "login",
				Usage: "Log in and store the session token",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Usage: "Email address", Required: true},
					&cli.StringFlag{Name: "password", Usage: "Password", Required: true},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "whoami",
				Usage:  "Show the logged-in user",
				Action: r.AuthWhoami,
			},
			{
				Name:   "logout",
				Usage:  "Clear the stored session",
				Action: r.AuthLogout,
			},
		},
	}
}

// accountCommand handles platform connection operations.
func accountCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "account",
		Aliases: []string{"acct"},
		Usage:   "Manage connected social platforms",
		Commands: []*cli.Command{
			{
				Name:  "status",
				Usage: "Check connection state of every platform",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.AccountStatus,
			},
			{
				Name:  "connect",
				Usage: "Connect a platform via browser authorization",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "platform"},
				},
				Action: r.AccountConnect,
			},
			{
				Name:  "disconnect",
				Usage: "Disconnect a platform",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "platform"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "yes",
						Aliases: []string{"y"},
						Usage:   "Skip the confirmation prompt",
					},
				},
				Action: r.AccountDisconnect,
			},
			{
				Name:  "pages",
				Usage: "List Facebook pages available for posting",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.AccountPages,
			},
			{
				Name:  "metrics",
				Usage: "Show engagement metrics for a Facebook page",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "page",
						Usage:    "Facebook page ID",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.AccountMetrics,
			},
			{
				Name:  "ig-metrics",
				Usage: "Show Instagram account metrics",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.AccountInstagramMetrics,
			},
		},
	}
}

// postCommand handles publishing and post history.
func postCommand(r *Runner) *cli.Command {
	scheduleFlag := &cli.StringFlag{
		Name:  "schedule",
		Usage: "Schedule time (YYYY-MM-DDTHH:MM, at least 10 minutes out)",
	}
	aiFlag := &cli.StringFlag{
		Name:  "ai",
		Usage: "Generate the post text from this prompt",
	}

	return &cli.Command{
		Name:  "post",
		Usage: "Publish posts and browse history",
		Commands: []*cli.Command{
			{
				Name:  "tweet",
				Usage: "Publish a tweet",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "message"},
				},
				Flags:  []cli.Flag{aiFlag},
				Action: r.PostTwitter,
			},
			{
				Name:  "linkedin",
				Usage: "Publish a LinkedIn post",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "message"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "visibility",
						Usage: "Post visibility (public or connections)",
						Value: "public",
					},
					aiFlag,
				},
				Action: r.PostLinkedIn,
			},
			{
				Name:  "facebook",
				Usage: "Publish to a Facebook page",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "message"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "page",
						Usage:    "Facebook page ID",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "image",
						Aliases: []string{"i"},
						Usage:   "Path to an image to attach",
					},
					scheduleFlag,
					aiFlag,
				},
				Action: r.PostFacebook,
			},
			{
				Name:  "instagram",
				Usage: "Publish an Instagram post",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "message"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "image",
						Aliases:  []string{"i"},
						Usage:    "Path to the image to post",
						Required: true,
					},
					scheduleFlag,
					aiFlag,
				},
				Action: r.PostInstagram,
			},
			{
				Name:  "generate",
				Usage: "Generate post text from a prompt",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "prompt"},
				},
				Action: r.PostGenerate,
			},
			{
				Name:  "list",
				Usage: "List posts recorded by the backend",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "csv",
						Usage: "Output CSV",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.PostList,
			},
		},
	}
}

// apiCommand handles direct calls against the posting backend.
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct API calls to the posting backend",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Direct GET to the backend, prints raw JSON",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.APIGet,
			},
			{
				Name:  "post",
				Usage: "Direct POST with JSON body",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "JSON body to send",
						Required: true,
					},
				},
				Action: r.APIPost,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive posting.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for platform status and posting",
		Action:  r.TUI,
	}
}
