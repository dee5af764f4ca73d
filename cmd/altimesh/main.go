package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gruppe-adler/altimesh/internal/hypsometry"
	"github.com/gruppe-adler/altimesh/internal/pipeline"
	"github.com/gruppe-adler/altimesh/internal/preview"
	"github.com/gruppe-adler/altimesh/internal/synth"
	"github.com/gruppe-adler/altimesh/internal/terrainrgb"
)

type command struct {
	name        string
	description string
	run         func(*flag.FlagSet, []string)
}

var subCommands []command

func init() {
	subCommands = []command{
		{"convert", "Convert an elevation grid into a VTK structured grid.", pipeline.RunConvert},
		{"render", "Render a VTK structured grid to PNG.", pipeline.RunRender},
		{"build", "Convert, render and export everything into one directory.", pipeline.RunBuild},
		{"terrainrgb", "Encode an elevation grid as Terrain-RGB PNG.", terrainrgb.Run},
		{"preview", "Build resolutions for preview image.", preview.Run},
		{"hypsometry", "Plot the altitude distribution of a VTK structured grid.", hypsometry.Run},
		{"synth", "Generate a synthetic elevation grid.", synth.Run},
		{"help", "Print this message.", func(*flag.FlagSet, []string) { printUsage() }},
	}
}

func printUsage() {
	fmt.Printf("USAGE:\n    %s [SUBCOMMAND] [SUBCOMMAND FLAGS]\n\n", os.Args[0])
	fmt.Print("SUBCOMMANDS: \n")

	for _, c := range subCommands {
		fmt.Printf("%12s    %s\n", c.name, c.description)
	}

	fmt.Printf("\nUse -h as SUBCOMMAND FLAG to print help for each subcommand.\n\n")
}

func lookup(name string) (command, bool) {
	for _, c := range subCommands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func main() {
	if len(os.Args) < 2 {
		fmt.Printf("\nERROR: No subcommand was provided.\n\n")
		printUsage()
		os.Exit(1)
	}

	name := os.Args[1]
	c, ok := lookup(name)
	if !ok {
		fmt.Printf("\nERROR: Subcommand '%s' was not found.\n\n", name)
		printUsage()
		os.Exit(1)
	}

	c.run(flag.NewFlagSet(name, flag.ExitOnError), os.Args[2:])
}
