package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/1broseidon/frametile/internal/config"
	"github.com/1broseidon/frametile/internal/daemon"
	"github.com/1broseidon/frametile/internal/ipc"
	"github.com/1broseidon/frametile/internal/logging"
	"github.com/1broseidon/frametile/internal/platform"
	"github.com/1broseidon/frametile/internal/tiling"
	"github.com/1broseidon/frametile/internal/tui"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "daemon":
		os.Exit(runDaemon(os.Args[2:]))
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "tree":
		os.Exit(runTree(os.Args[2:]))
	case "monitors":
		os.Exit(runMonitors(os.Args[2:]))
	case "do":
		os.Exit(runDo(os.Args[2:]))
	case "actions":
		os.Exit(runActions(os.Args[2:]))
	case "reload":
		os.Exit(runReload(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "bindings":
		os.Exit(runBindings(os.Args[2:]))
	case "palette":
		os.Exit(runPalette(os.Args[2:]))
	case "sandbox":
		os.Exit(runSandbox(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: frametile <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  daemon              Start the frametile daemon (foreground)")
	fmt.Fprintln(w, "  status              Show daemon status")
	fmt.Fprintln(w, "  tree                Show the frame trees and the stash")
	fmt.Fprintln(w, "  monitors            List displays known to the daemon")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  do <action>         Run an action on the focused frame")
	fmt.Fprintln(w, "  actions             List the available actions")
	fmt.Fprintln(w, "  reload              Reload the daemon configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "  config init         Write the default configuration")
	fmt.Fprintln(w, "  bindings            List key bindings")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  palette             Pick an action in rofi/fuzzel/wofi/dmenu")
	fmt.Fprintln(w, "  sandbox             Try layouts on a simulated display")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'frametile <command> --help' for command-specific options.")
}

// newFlagSet returns a flag set whose usage prints usage and the flags.
func newFlagSet(name, usage string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, usage)
		if fs.HasFlags() {
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Options:")
			fs.PrintDefaults()
		}
	}
	return fs
}

// parseFlags parses args and returns the exit code to use when parsing
// should stop the command.
func parseFlags(fs *pflag.FlagSet, args []string) (int, bool) {
	if err := fs.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return 0, false
		}
		return 2, false
	}
	return 0, true
}

func loadConfig(path string) (*config.LoadResult, error) {
	if path == "" {
		return config.LoadWithSource()
	}
	return config.LoadFromPath(path)
}

func printJSON(v any) int {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println(string(data))
	return 0
}

func runDaemon(args []string) int {
	fs := newFlagSet("daemon", "Usage: frametile daemon [--config PATH]")
	path := fs.StringP("config", "c", "", "Config file path (default: ~/.config/frametile/config.yaml)")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "daemon takes no arguments")
		fs.Usage()
		return 2
	}

	res, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return 1
	}
	cfg := res.Config
	if err := tiling.ValidateBindings(cfg.Bindings); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		return 1
	}

	logger := logging.NewLeveled(os.Stderr, cfg.LogLevel, "frametile")
	source := res.File
	if source == "" {
		source = "defaults"
	}
	logger.Info("configuration loaded", "source", source, "minimum_frame_size", cfg.MinimumFrameSize)

	backend, err := platform.NewLinuxBackendFromDisplay(cfg.Display)
	if err != nil {
		logger.Error("failed to connect to display", "error", err)
		return 1
	}
	defer backend.Disconnect()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = daemon.Run(ctx, daemon.Options{
		Config:     cfg,
		ConfigPath: *path,
		Backend:    backend,
		Logger:     logger,
	})
	if err != nil {
		logger.Error("daemon failed", "error", err)
		return 1
	}
	return 0
}

func runStatus(args []string) int {
	fs := newFlagSet("status", "Usage: frametile status [--json]\n\nShow daemon status via IPC.")
	asJSON := fs.Bool("json", false, "Print JSON")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		fs.Usage()
		return 2
	}

	status, err := ipc.NewClient().GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if *asJSON {
		return printJSON(status)
	}

	printField("daemon_running", fmt.Sprint(status.DaemonRunning))
	printField("uptime_seconds", fmt.Sprint(status.UptimeSeconds))
	printField("displays", fmt.Sprint(status.Displays))
	printField("frames", fmt.Sprint(status.Frames))
	printField("windows", fmt.Sprint(status.Windows))
	printField("voids", fmt.Sprint(status.Voids))
	printField("stashed", fmt.Sprint(status.Stashed))
	if r := status.FocusedRect; r != nil {
		focus := fmt.Sprintf("%dx%d+%d+%d", r.Width, r.Height, r.X, r.Y)
		if status.FocusedWindow != 0 {
			focus += fmt.Sprintf(" window 0x%x", uint32(status.FocusedWindow))
		}
		if status.FocusedNumber != 0 {
			focus += fmt.Sprintf(" #%d", status.FocusedNumber)
		}
		printField("focused", focus)
	}
	return 0
}

func runTree(args []string) int {
	fs := newFlagSet("tree", "Usage: frametile tree [--json]\n\nShow every display's frame tree and the stash. The focused frame is marked with *.")
	asJSON := fs.Bool("json", false, "Print JSON")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "tree takes no arguments")
		fs.Usage()
		return 2
	}

	tree, err := ipc.NewClient().GetTree()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if *asJSON {
		return printJSON(tree)
	}

	for _, d := range tree.Displays {
		b := d.Display.Bounds
		fmt.Println(heading(fmt.Sprintf("%s %dx%d+%d+%d", d.Display.Name, b.Width, b.Height, b.X, b.Y)))
		if err := d.Root.WriteTree(os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}
	if len(tree.Stash) > 0 {
		fmt.Println(heading("stash"))
		for _, entry := range tree.Stash {
			if err := entry.WriteTree(os.Stdout); err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
		}
	}
	return 0
}

func runMonitors(args []string) int {
	fs := newFlagSet("monitors", "Usage: frametile monitors [--json]")
	asJSON := fs.Bool("json", false, "Print JSON")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	data, err := ipc.NewClient().GetMonitors()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if *asJSON {
		return printJSON(data)
	}
	for _, m := range data.Monitors {
		u := m.Usable
		fmt.Printf("%s %s %dx%d+%d+%d %s\n",
			heading(fmt.Sprintf("%d", m.ID)), m.Name, m.Width, m.Height, m.X, m.Y,
			dim(fmt.Sprintf("usable %dx%d+%d+%d", u.Width, u.Height, u.X, u.Y)))
	}
	return 0
}

func runDo(args []string) int {
	fs := newFlagSet("do", "Usage: frametile do <action> [argument]\n\nRun an action on the focused frame. See 'frametile actions'.")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	action, err := tiling.ParseAction(strings.Join(fs.Args(), " "))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	data, err := ipc.NewClient().Do(action.String())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if !data.Changed {
		fmt.Println(dim(data.Action + ": nothing to do"))
	}
	return 0
}

func runActions(args []string) int {
	fs := newFlagSet("actions", "Usage: frametile actions")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	for _, name := range tiling.ActionNames {
		fmt.Println(name)
	}
	return 0
}

func runReload(args []string) int {
	fs := newFlagSet("reload", "Usage: frametile reload\n\nAsk the daemon to reread its configuration.")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if err := ipc.NewClient().Reload(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println(success("config reloaded"))
	return 0
}

func runSandbox(args []string) int {
	fs := newFlagSet("sandbox", `Usage: frametile sandbox [--path PATH]

Try the tiling engine on a simulated 1920x1080 display. Windows are opened
with o and every action has a key; press ? for the full list.`)
	path := fs.String("path", "", "Config file path (default: ~/.config/frametile/config.yaml)")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	res, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := tui.Run(res.Config); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
