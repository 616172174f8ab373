package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/df07/go-bidirectional-renderer/cmd"
	"github.com/df07/go-bidirectional-renderer/pkg/log"
)

func main() {
	app := cli.NewApp()
	app.Name = "bdpt-film"
	app.Usage = "inspect, merge and export bidirectional path tracer work results"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Before = func(ctx *cli.Context) error {
		switch {
		case ctx.Bool("vv"):
			log.SetLevel(log.Debug)
		case ctx.Bool("v"):
			log.SetLevel(log.Info)
		default:
			log.SetLevel(log.Notice)
		}
		return nil
	}
	app.Commands = []cli.Command{
		{
			Name:  "inspect",
			Usage: "print a serialized work result's configuration and plane summary",
			Description: `
Read a work result produced by a rendering worker or coordinator and
print its configuration header together with a per-plane summary,
including every non-zero sampling-strategy slot.`,
			ArgsUsage: "result_file",
			Action:    cmd.Inspect,
		},
		{
			Name:      "merge",
			Usage:     "merge partial work results of identical configuration",
			ArgsUsage: "result_file1 result_file2 ...",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "out, o",
					Value: "merged.wr",
					Usage: "output filename for the merged result",
				},
			},
			Action: cmd.Merge,
		},
		{
			Name:      "dump",
			Usage:     "export per-strategy decomposition images",
			ArgsUsage: "result_file",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "dir, d",
					Value: ".",
					Usage: "output directory for the decomposition images",
				},
				cli.StringFlag{
					Name:  "stem, s",
					Value: "render",
					Usage: "filename stem for the decomposition images",
				},
			},
			Action: cmd.Dump,
		},
		{
			Name:      "develop",
			Usage:     "export the combined camera and light planes as a PNG",
			ArgsUsage: "result_file",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "out, o",
					Value: "render.png",
					Usage: "image filename for the developed result",
				},
			},
			Action: cmd.Develop,
		},
	}

	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}
