package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/1broseidon/frametile/internal/config"
	"github.com/1broseidon/frametile/internal/tiling"
)

func printConfigUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  frametile config validate [--path PATH]")
	fmt.Fprintln(os.Stderr, "  frametile config print [--path PATH] [--defaults] [--toml]")
	fmt.Fprintln(os.Stderr, "  frametile config init [--path PATH] [--force]")
}

func runConfig(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printConfigUsage()
		return 2
	}

	switch args[0] {
	case "validate":
		return runConfigValidate(args[1:])
	case "print":
		return runConfigPrint(args[1:])
	case "init":
		return runConfigInit(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown config command: %s\n\n", args[0])
		printConfigUsage()
		return 2
	}
}

func runConfigValidate(args []string) int {
	fs := newFlagSet("validate", "Usage: frametile config validate [--path PATH]")
	path := fs.String("path", "", "Config file path (default: ~/.config/frametile/config.yaml)")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	res, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := tiling.ValidateBindings(res.Config.Bindings); err != nil {
		if res.File != "" {
			err = fmt.Errorf("%s: %w", res.File, err)
		}
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	source := res.File
	if source == "" {
		source = "defaults"
	}
	fmt.Printf("%s %s\n", success("config: ok"), dim("("+source+")"))
	return 0
}

func runConfigPrint(args []string) int {
	fs := newFlagSet("print", "Usage: frametile config print [--path PATH] [--defaults] [--toml]")
	path := fs.String("path", "", "Config file path (default: ~/.config/frametile/config.yaml)")
	defaults := fs.Bool("defaults", false, "Print built-in defaults (no files)")
	asTOML := fs.Bool("toml", false, "Print TOML instead of YAML")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	cfg := config.DefaultConfig()
	if !*defaults {
		res, err := loadConfig(*path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		cfg = res.Config
	}

	format := config.FormatYAML
	if *asTOML {
		format = config.FormatTOML
	}
	if err := config.Encode(os.Stdout, cfg, format); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runConfigInit(args []string) int {
	fs := newFlagSet("init", "Usage: frametile config init [--path PATH] [--force]\n\nWrite the default configuration. A .toml path is written as TOML.")
	path := fs.String("path", "", "Config file path (default: ~/.config/frametile/config.yaml)")
	force := fs.Bool("force", false, "Overwrite an existing file")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	target := *path
	if target == "" {
		var err error
		target, err = config.DefaultConfigPath()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}
	if !*force {
		if _, err := os.Stat(target); err == nil {
			fmt.Fprintf(os.Stderr, "%s already exists (use --force to overwrite)\n", target)
			return 1
		} else if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}

	if err := config.DefaultConfig().Save(target); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println(success("wrote " + target))
	return 0
}

func runBindings(args []string) int {
	fs := newFlagSet("bindings", "Usage: frametile bindings [--path PATH]\n\nList key bindings and their actions.")
	path := fs.String("path", "", "Config file path (default: ~/.config/frametile/config.yaml)")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	res, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	width := 0
	keys := res.Config.SortedBindings()
	for _, key := range keys {
		width = max(width, len(key))
	}
	for _, key := range keys {
		action := res.Config.Bindings[key]
		if action == "" {
			action = dim("(disabled)")
		}
		fmt.Printf("%s  %s\n", heading(fmt.Sprintf("%-*s", width, key)), action)
	}
	return 0
}
