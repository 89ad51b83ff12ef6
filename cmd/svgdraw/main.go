package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/tdewolff/argp"

	"github.com/pxlcanvas/svgdraw"
)

type Convert struct {
	Palette   string  `short:"p" desc:"Path to a palette file, one #rrggbb hex color per line"`
	Tolerance float64 `short:"t" default:"0.05" desc:"Cubic/arc subdivision tolerance in drawing units"`
	Output    string  `short:"o" desc:"Output JSON file, defaults to stdout"`
	Input     string  `index:"0" desc:"Input SVG file"`
}

func main() {
	root := argp.NewCmd(&Convert{}, "Convert an SVG document into a pixel-art editor drawing document")
	root.Parse()
	root.PrintHelp()
}

func (cmd *Convert) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}

	src, err := os.ReadFile(cmd.Input)
	if err != nil {
		return err
	}

	var paletteHex []string
	if cmd.Palette != "" {
		paletteHex, err = readPalette(cmd.Palette)
		if err != nil {
			return err
		}
	}

	doc, _, warnings, err := svgdraw.Build(string(src), paletteHex, nil, cmd.Tolerance)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		fmt.Fprintln(os.Stderr, "warning:", w)
	}

	out, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	if cmd.Output == "" || cmd.Output == "-" {
		_, err = os.Stdout.Write(out)
		return err
	}
	return os.WriteFile(cmd.Output, out, 0644)
}

func readPalette(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var hex []string
	for _, line := range strings.Split(string(b), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		hex = append(hex, strings.ToLower(line))
	}
	return hex, nil
}
