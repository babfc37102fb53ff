package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	s.app = cli.NewApp()
	s.app.Action = cli.ShowAppHelp
	s.app.Name = "Gamification"
	s.app.Usage = "Quest slots, rewards and shop of the chatter gamification"
	s.app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path of the toml config file",
			EnvVars: []string{"GAMIFICATION_CONFIG"},
		},
	}
	s.app.Before = s.setup
	s.app.After = s.teardown
	s.app.Commands = []*cli.Command{
		{
			Action:      s.startApi,
			Name:        "api",
			Usage:       "Start service api",
			Category:    "Api",
			Description: `Used for start service api, it main service included all apis.`,
		},
		{
			Action:      s.startCron,
			Name:        "cron",
			Usage:       "Start cron jobs",
			Category:    "Worker",
			Description: `Used to populate quest slots every day and refresh the leaderboard.`,
		},
		{
			Action:      s.startSubscriber,
			Name:        "subscriber",
			Usage:       "Start service subscriber",
			Category:    "Worker",
			Description: `Used to consume the gamification events from the message queue.`,
		},
		{
			Action:      s.startMigrate,
			Name:        "migrate",
			Usage:       "Migrate the database",
			Category:    "Database",
			Description: `Used to apply every migration which has not been applied yet.`,
		},
		{
			Action:    s.createUser,
			Name:      "user",
			Usage:     "Create a user and print its access token",
			Category:  "Database",
			ArgsUsage: "<name>",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "admin",
					Usage: "Give the admin role to the user",
				},
			},
		},
	}
}
