package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	s := &srv{}

	app := &cli.App{
		Name:  "sidequest",
		Usage: "State synchronizer of the SideQuest impact-tourism marketplace",
		Commands: []*cli.Command{
			{
				Name:   "sync",
				Usage:  "Boot the state snapshot and mirror realtime changes",
				Action: s.runSync,
			},
			{
				Name:   "migrate",
				Usage:  "Create or update the database tables",
				Action: s.runMigrate,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
