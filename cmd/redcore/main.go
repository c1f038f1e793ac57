// Command redcore is a thin driver over the core simulation library: it
// reads one or more Redcode warriors, loads them into a MARS instance,
// and either runs the match to completion or drops into the interactive
// console. The file-reading, flag-parsing front end is itself outside
// the simulation engine's scope -- this is the external collaborator the
// library proper does not depend on.
package main

import (
	"fmt"
	"os"

	"gopkg.in/urfave/cli.v2"

	"riddick.net/corewar/asm"
	"riddick.net/corewar/core"
	"riddick.net/corewar/host"
)

func main() {
	app := &cli.App{
		Name:    "redcore",
		Usage:   "run or debug a Core War match",
		Version: "v0.1.0",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "coresize", Value: 8000, Usage: "core size in cells"},
			&cli.IntFlag{Name: "maxcycles", Value: 80000, Usage: "cycle limit before declaring a draw"},
			&cli.IntFlag{Name: "maxprocesses", Value: 8000, Usage: "per-warrior process cap"},
			&cli.IntFlag{Name: "maxlength", Value: 100, Usage: "max warrior length"},
			&cli.IntFlag{Name: "mindistance", Value: 100, Usage: "minimum separation between warriors"},
		},
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "assemble and run warriors to completion",
				ArgsUsage: "<warrior.red> [warrior.red...]",
				Action:    runCommand,
			},
			{
				Name:   "debug",
				Usage:  "start the interactive console",
				Action: debugCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "redcore: %v\n", err)
		os.Exit(1)
	}
}

func propsFromFlags(c *cli.Context) core.MarsProperties {
	return core.MarsProperties{
		CoreSize:     c.Int("coresize"),
		MaxCycles:    c.Int("maxcycles"),
		MaxProcesses: c.Int("maxprocesses"),
		MaxLength:    c.Int("maxlength"),
		MinDistance:  c.Int("mindistance"),
	}
}

func runCommand(c *cli.Context) error {
	if c.Args().Len() == 0 {
		cli.ShowCommandHelp(c, "run")
		return cli.Exit("no warriors given", 1)
	}

	props := propsFromFlags(c)
	mars := core.NewMars(props)

	for _, path := range c.Args().Slice() {
		src, err := os.ReadFile(path)
		if err != nil {
			return cli.Exit(fmt.Sprintf("%s: %v", path, err), 1)
		}
		res, err := asm.Assemble(string(src), props)
		if err != nil {
			return cli.Exit(fmt.Sprintf("%s: %v", path, err), 1)
		}
		name := res.WarriorName
		if name == "" {
			name = path
		}
		mars.Load(core.NewWarrior(name, res.Author, res.Program, res.Origin))
	}

	rounds := mars.Run()
	survivors := mars.Warriors()
	fmt.Printf("ran %d round(s)\n", rounds)
	for _, w := range survivors {
		fmt.Printf("%s survives\n", w.Name)
	}
	return nil
}

func debugCommand(c *cli.Context) error {
	console := host.New(propsFromFlags(c))
	return console.Run(os.Stdin, os.Stdout)
}
