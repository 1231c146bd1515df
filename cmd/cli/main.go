package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/specialistvlad/burstplan/internal/app"
	"github.com/specialistvlad/burstplan/internal/cli"
	"github.com/specialistvlad/burstplan/internal/config"
	"github.com/specialistvlad/burstplan/internal/fsutil"
	"github.com/specialistvlad/burstplan/internal/hcl_adapter"
	"github.com/specialistvlad/burstplan/internal/yaml_adapter"
)

// main is the entrypoint for the burstplan application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error
// handling. The report goes to outW, logs to logW.
func run(outW, logW io.Writer, args []string) (err error) {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application startup panicked: %v", r)
		}
	}()

	loader, err := loaderFor(appConfig.Format, appConfig.ProblemPath)
	if err != nil {
		return err
	}
	burstplanApp := app.NewApp(outW, appConfig, loader, app.WithLogWriter(logW))

	return burstplanApp.Run(context.Background())
}

// loaderFor picks the loader for format. In auto mode a file is judged by
// its extension and a directory by whether it holds any .hcl file.
func loaderFor(format, path string) (config.Loader, error) {
	switch format {
	case app.FormatHCL:
		return hcl_adapter.NewLoader(), nil
	case app.FormatYAML:
		return yaml_adapter.NewLoader(), nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing path %s: %w", path, err)
	}
	if !info.IsDir() {
		switch filepath.Ext(path) {
		case hcl_adapter.Extension:
			return hcl_adapter.NewLoader(), nil
		case ".yaml", ".yml":
			return yaml_adapter.NewLoader(), nil
		default:
			return nil, fmt.Errorf("cannot tell the format of %s, use --format", path)
		}
	}

	hclFiles, err := fsutil.FindFilesByExtension(path, hcl_adapter.Extension)
	if err != nil {
		return nil, err
	}
	if len(hclFiles) > 0 {
		return hcl_adapter.NewLoader(), nil
	}
	return yaml_adapter.NewLoader(), nil
}
