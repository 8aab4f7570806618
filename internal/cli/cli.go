package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/plancreator/internal/app"
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

// stringList collects the values of a repeatable flag.
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("plancreator", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
plancreator - expands a pipeline definition into an execution plan.

Usage:
  plancreator [options] [PIPELINE_PATH]

Arguments:
  PIPELINE_PATH
    Path to the pipeline YAML file. The plan is written to stdout as JSON.

Options:
`)
		flagSet.PrintDefaults()
	}

	var configPaths stringList
	flagSet.Var(&configPaths, "config", "Path to an HCL config file or directory. May be repeated.")
	pipelineFlag := flagSet.String("pipeline", "", "Path to the pipeline YAML file.")
	pFlag := flagSet.String("p", "", "Path to the pipeline YAML file (shorthand).")
	workersFlag := flagSet.Int("workers", 0, "Number of creators run concurrently within a round. 0 uses the config file or 2.")
	roundTimeoutFlag := flagSet.Duration("round-timeout", 0, "Maximum duration of one expansion round. 0 uses the config file or 60s.")
	maxRoundsFlag := flagSet.Int("max-rounds", 0, "Maximum number of expansion rounds. 0 uses the config file or no limit.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check and metrics server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "", "Log output format. Options: 'text' or 'json'. Defaults to the config file or 'json'.")
	logLevelFlag := flagSet.String("log-level", "", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'. Defaults to the config file or 'info'.")
	accountFlag := flagSet.String("account-id", "", "Account scope passed to every creator.")
	orgFlag := flagSet.String("org-id", "", "Organization scope passed to every creator.")
	projectFlag := flagSet.String("project-id", "", "Project scope passed to every creator.")
	pipelineIDFlag := flagSet.String("pipeline-id", "", "Pipeline id passed to every creator; overrides the pipeline identifier.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *pipelineFlag != "" {
		path = *pipelineFlag
	} else if *pFlag != "" {
		path = *pFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Pipeline path determined.", "path", path)

	if path == "" {
		slog.Debug("No pipeline path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	switch logFormat {
	case "", "text", "json":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "", "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		PipelinePath:    path,
		ConfigPaths:     configPaths,
		Workers:         *workersFlag,
		RoundTimeout:    *roundTimeoutFlag,
		MaxRounds:       *maxRoundsFlag,
		HealthcheckPort: *healthPortFlag,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
		AccountID:       *accountFlag,
		OrgID:           *orgFlag,
		ProjectID:       *projectFlag,
		PipelineID:      *pipelineIDFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
