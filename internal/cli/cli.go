package cli

import (
	"io"
	"log/slog"

	"github.com/specialistvlad/burstplan/internal/app"
	"github.com/specialistvlad/burstplan/internal/config"
	"gopkg.in/alecthomas/kingpin.v2"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	exited := false
	cmd := kingpin.New("burstplan", "Plans workflow tasks onto heterogeneous resources and matches ready tasks to idle ones.")
	cmd.UsageWriter(output)
	cmd.ErrorWriter(output)
	cmd.Terminate(func(int) { exited = true })
	cmd.HelpFlag.Short('h')

	path := cmd.Arg("path", "Problem file or directory (.hcl, .yaml, .yml).").String()
	logLevel := cmd.Flag("log-level", "Logging level (set $BURSTPLAN_LOG_LEVEL to override)").
		Default("info").Envar("BURSTPLAN_LOG_LEVEL").Enum("debug", "info", "warn", "error")
	logFormat := cmd.Flag("log-format", "Log output format (set $BURSTPLAN_LOG_FORMAT to override)").
		Default("text").Envar("BURSTPLAN_LOG_FORMAT").Enum("text", "json")
	format := cmd.Flag("format", "Problem file format; auto picks it from the file extensions").
		Short('f').Default(app.FormatAuto).Enum(app.FormatAuto, app.FormatHCL, app.FormatYAML)
	planner := cmd.Flag("planner", "Planner to run (settings.planner override)").
		Short('p').Enum(config.PlannerHEFT, config.PlannerNone)
	matcher := cmd.Flag("matcher", "Matcher to run on the ready tasks (settings.matcher override)").
		Short('m').Enum(config.MatcherMinMin, config.MatcherStatic, config.MatcherNone)
	report := cmd.Flag("report", "Report rendering").
		Short('r').Default(app.ReportText).Enum(app.ReportText, app.ReportYAML)

	_, err := cmd.Parse(args)
	if exited {
		return nil, true, nil
	}
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if *path == "" {
		slog.Debug("No problem path provided, printing usage and exiting.")
		cmd.Usage(nil)
		return nil, true, nil
	}

	cfg, err := app.NewConfig(app.Config{
		ProblemPath: *path,
		Format:      *format,
		Planner:     *planner,
		Matcher:     *matcher,
		Report:      *report,
		LogFormat:   *logFormat,
		LogLevel:    *logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", cfg)
	return cfg, false, nil
}
