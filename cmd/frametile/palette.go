package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/1broseidon/frametile/internal/ipc"
	"github.com/1broseidon/frametile/internal/palette"
)

func runPalette(args []string) int {
	fs := newFlagSet("palette", `Usage: frametile palette [--backend NAME]

Pick an action or a stashed frame in rofi, fuzzel, wofi or dmenu and run it
in the daemon. Bind it to a key in your desktop's launcher settings.`)
	backendName := fs.String("backend", "auto", "Launcher to use (auto, rofi, fuzzel, wofi, dmenu)")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	backend, err := palette.NewBackend(*backendName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	client := ipc.NewClient()
	tree, err := client.GetTree()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	action, err := palette.NewMenu(backend, palette.BuildMenu(*tree)).Show()
	if errors.Is(err, palette.ErrCancelled) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if _, err := client.Do(action); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
