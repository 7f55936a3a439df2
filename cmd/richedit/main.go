package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/net/html"

	"github.com/nimblecms/richedit/htmlcodec"
	"github.com/nimblecms/richedit/markdown"
)

const (
	presetBalanced = "balanced"
	presetStrict   = "strict"
	presetLossy    = "lossy"
)

func presetConfig(preset string) (markdown.Config, error) {
	switch strings.ToLower(strings.TrimSpace(preset)) {
	case "", presetBalanced:
		return markdown.Config{}, nil
	case presetStrict:
		return markdown.Config{
			UnknownElements: markdown.UnknownError,
		}, nil
	case presetLossy:
		return markdown.Config{
			UnknownElements: markdown.UnknownSkip,
		}, nil
	default:
		return markdown.Config{}, fmt.Errorf("unknown preset %q (allowed: balanced, strict, lossy)", preset)
	}
}

func resolveConfig(preset string, strict bool, bullet string) (markdown.Config, error) {
	cfg, err := presetConfig(preset)
	if err != nil {
		return markdown.Config{}, err
	}

	if strict {
		cfg.UnknownElements = markdown.UnknownError
	}
	if bullet != "" {
		runes := []rune(bullet)
		if len(runes) != 1 {
			return markdown.Config{}, fmt.Errorf("bullet marker must be a single character, got %q", bullet)
		}
		cfg.BulletMarker = runes[0]
	}

	return cfg, nil
}

func main() {
	toHTML := flag.Bool("to-html", false, "Emit the rendered element tree instead of markdown")
	strict := flag.Bool("strict", false, "Return error on unknown elements")
	preset := flag.String("preset", presetBalanced, "Preset: balanced|strict|lossy")
	bullet := flag.String("bullet", "", "Bullet list marker character")
	quiet := flag.Bool("quiet", false, "Suppress warnings")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: richedit [options] <input-file>\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		flag.Usage()
		os.Exit(1)
	}
	inputFile := args[0]

	data, err := os.ReadFile(inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}

	cfg, err := resolveConfig(*preset, *strict, *bullet)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	root, err := markdown.FromMarkdown(string(data))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing file: %v\n", err)
		os.Exit(1)
	}

	codec := htmlcodec.New(htmlcodec.Config{})
	deserialized := codec.Deserialize(root)
	serialized := codec.Serialize(deserialized.Doc)

	warnings := append(deserialized.Warnings, serialized.Warnings...)

	if *toHTML {
		var sb strings.Builder
		for child := serialized.Root.FirstChild; child != nil; child = child.NextSibling {
			if err := html.Render(&sb, child); err != nil {
				fmt.Fprintf(os.Stderr, "Error rendering tree: %v\n", err)
				os.Exit(1)
			}
		}
		printWarnings(warnings, *quiet)
		fmt.Println(sb.String())
		return
	}

	s, err := markdown.NewSerializer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	result, err := s.Serialize(serialized.Root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error converting file: %v\n", err)
		os.Exit(1)
	}

	printWarnings(append(warnings, result.Warnings...), *quiet)
	fmt.Print(result.Markdown)
}

func printWarnings(warnings []htmlcodec.Warning, quiet bool) {
	if quiet {
		return
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "Warning [%s] %s: %s\n", w.Type, w.Element, w.Message)
	}
}
