package app

import (
	"errors"
	"fmt"
)

// Input formats accepted in Config.Format.
const (
	FormatAuto = "auto"
	FormatHCL  = "hcl"
	FormatYAML = "yaml"
)

// Report renderings accepted in Config.Report.
const (
	ReportText = "text"
	ReportYAML = "yaml"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ProblemPath string // problem file or directory
	Format      string

	// Planner and Matcher override the problem's settings when non-empty.
	Planner string
	Matcher string

	Report    string
	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.ProblemPath == "" {
		return nil, errors.New("ProblemPath is a required configuration field and cannot be empty")
	}

	if cfg.Format == "" {
		cfg.Format = FormatAuto
	}
	switch cfg.Format {
	case FormatAuto, FormatHCL, FormatYAML:
	default:
		return nil, fmt.Errorf("invalid format '%s': must be '%s', '%s' or '%s'", cfg.Format, FormatAuto, FormatHCL, FormatYAML)
	}

	if cfg.Report == "" {
		cfg.Report = ReportText
	}
	if cfg.Report != ReportText && cfg.Report != ReportYAML {
		return nil, fmt.Errorf("invalid report '%s': must be '%s' or '%s'", cfg.Report, ReportText, ReportYAML)
	}

	return &cfg, nil
}
