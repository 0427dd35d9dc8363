// Static table generator: writes the canonical tables the dataset loader
// expects, for datasets scraped without them.
//
// Usage:
//
//	go run ./cmd/gendata all                  # generate everything
//	go run ./cmd/gendata -out data typechart  # generate only specified tables
//	go run ./cmd/gendata --list               # list available generators
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/udisondev/pkmbattle/internal/data"
)

const outputDir = "data"

type generator struct {
	name     string
	desc     string
	generate func(outDir string, sep rune) error
}

var generators []generator

func registerGenerator(name, desc string, fn func(outDir string, sep rune) error) {
	generators = append(generators, generator{name: name, desc: desc, generate: fn})
}

func init() {
	registerGenerator("typechart", "Single-type chart ("+data.StatsDir+"/"+data.TypeChartFileName+")", generateTypeChart)
	registerGenerator("natures", "Nature stat factors ("+data.StatsDir+"/"+data.NaturesFileName+")", generateNatures)
}

func main() {
	fs := flag.NewFlagSet("gendata", flag.ExitOnError)
	out := fs.String("out", outputDir, "dataset root directory")
	sep := fs.String("sep", string(data.DefaultSeparator), "field separator")
	list := fs.Bool("list", false, "list available generators")
	fs.Usage = printUsage
	_ = fs.Parse(os.Args[1:])
	args := fs.Args()

	if *list {
		printList()
		return
	}
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	if utf8.RuneCountInString(*sep) != 1 {
		fmt.Fprintf(os.Stderr, "separator must be a single character, got %q\n", *sep)
		os.Exit(1)
	}
	comma, _ := utf8.DecodeRuneInString(*sep)

	toRun, err := selectGenerators(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		printList()
		os.Exit(1)
	}

	totalStart := time.Now()
	for _, g := range toRun {
		start := time.Now()
		fmt.Printf("[gendata] running %s...\n", g.name)
		if err := g.generate(*out, comma); err != nil {
			fmt.Fprintf(os.Stderr, "[gendata] FAILED %s: %v\n", g.name, err)
			os.Exit(1)
		}
		fmt.Printf("[gendata] %s done (%s)\n", g.name, time.Since(start).Round(time.Millisecond))
	}
	fmt.Printf("[gendata] all done (%s)\n", time.Since(totalStart).Round(time.Millisecond))
}

func selectGenerators(args []string) ([]generator, error) {
	if len(args) == 1 && args[0] == "all" {
		return generators, nil
	}

	genMap := make(map[string]generator, len(generators))
	for _, g := range generators {
		genMap[g.name] = g
	}
	var toRun []generator
	for _, name := range args {
		g, ok := genMap[name]
		if !ok {
			return nil, fmt.Errorf("unknown generator: %s", name)
		}
		toRun = append(toRun, g)
	}
	return toRun, nil
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: go run ./cmd/gendata [-out dir] [-sep ;] <all | name1 name2 ...>")
	fmt.Fprintln(os.Stderr, "       go run ./cmd/gendata --list")
}

func printList() {
	sorted := append([]generator(nil), generators...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].name < sorted[j].name })

	maxLen := 0
	for _, g := range sorted {
		maxLen = max(maxLen, len(g.name))
	}

	fmt.Println("Available generators:")
	for _, g := range sorted {
		padding := strings.Repeat(" ", maxLen-len(g.name)+2)
		fmt.Printf("  %s%s%s\n", g.name, padding, g.desc)
	}
}
