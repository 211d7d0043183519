// Command uasat-shell is an interactive runner for the uasat library.
//
// The library ships as a precompiled WebAssembly module exposing a single
// string-to-string entry point. The shell loads it, takes input text, and
// displays the returned text together with the elapsed wall-clock time.
//
//	uasat-shell -wasm uasat.wasm -i            interactive TUI
//	uasat-shell -wasm uasat.wasm -arg "1+1"    one-shot run
//	uasat-shell -wasm uasat.wasm -list         list exported functions
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/uasat/shell/config"
	"github.com/uasat/shell/engine"
	"github.com/uasat/shell/session"
)

func main() {
	var (
		wasmFile    = flag.String("wasm", "", "Path to the uasat wasm file (overrides config)")
		configPath  = flag.String("config", "", "Path to configuration file")
		funcName    = flag.String("func", "", "Entry function to call (overrides config)")
		strArg      = flag.String("arg", "", "Input text for a one-shot run")
		list        = flag.Bool("list", false, "List exported functions and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: load config: %v\n", err)
		os.Exit(1)
	}
	if *wasmFile != "" {
		cfg.WasmPath = *wasmFile
	}
	if *funcName != "" {
		cfg.EntryFunc = *funcName
	}

	// The TUI owns the terminal; keep the engine quiet there.
	if !*interactive {
		logger := zap.NewNop()
		if cfg.LogLevel == "debug" {
			logger, _ = zap.NewDevelopment()
		}
		engine.SetLogger(logger)
		defer logger.Sync()
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode requires a terminal")
			os.Exit(1)
		}
		if err := runInteractive(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(cfg, *strArg, *list); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.ShellConfig, input string, listOnly bool) error {
	ctx := context.Background()

	data, err := os.ReadFile(cfg.WasmPath)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	eng, err := engine.New(ctx, engine.Config{
		MemoryLimitPages: cfg.Wasm.MemoryPages,
		CloseOnCancel:    cfg.Wasm.CloseOnCancel,
		EntryFunc:        cfg.EntryFunc,
	})
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}
	defer eng.Close(ctx)

	mod, err := eng.Load(ctx, data)
	if err != nil {
		return fmt.Errorf("load module: %w", err)
	}

	if listOnly {
		fmt.Printf("Module: %s\n\nExported functions:\n", cfg.WasmPath)
		for _, name := range mod.ExportNames() {
			fmt.Printf("  %s\n", name)
		}
		return nil
	}

	runner := engine.NewRunner(mod)
	defer runner.Close(ctx)

	sess := session.New(nil)
	sess.Attach(runner)

	res, err := sess.Run(ctx, input)
	if err != nil {
		return fmt.Errorf("run %s(%q): %w", cfg.EntryFunc, truncate(input, 40), err)
	}

	fmt.Println(res.Render())
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return strings.TrimSpace(s[:n]) + "..."
}
