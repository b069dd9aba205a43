package main

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/alfazet/amusing/internal/app"
	"github.com/alfazet/amusing/internal/config"
	"github.com/alfazet/amusing/internal/logging"
	"github.com/alfazet/amusing/internal/logging/events"
)

func main() {
	runtimeCfg := config.MustLoad()
	if err := config.Validate(runtimeCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	if runtimeCfg.FileErr != nil {
		logging.Error(runtimeCfg.FileErr)
		fmt.Fprintf(os.Stderr, "Configuration error: %v (using defaults)\n", runtimeCfg.FileErr)
	}

	traceStartup(runtimeCfg)

	if err := app.Run(context.Background(), runtimeCfg.App); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func traceStartup(cfg config.Config) {
	events.App.Start(startupTracePayload(cfg))
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":    cfg.Args,
		"flags":   flags,
		"addr":    cfg.App.Addr,
		"file":    cfg.File,
		"logPath": logging.Path(),
	}
	if cfg.FileErr != nil {
		payload["fileError"] = cfg.FileErr.Error()
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	payload["tty"] = collectTTYDetails()
	return payload
}

type ttyDetails struct {
	Detected *ttyProbe  `json:"detected,omitempty"`
	Probes   []ttyProbe `json:"probes"`
}

type ttyProbe struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// collectTTYDetails reports which standard descriptors are terminals and the
// size of the first one that is.
func collectTTYDetails() ttyDetails {
	files := []*os.File{os.Stdin, os.Stdout, os.Stderr}
	names := []string{"stdin", "stdout", "stderr"}
	details := ttyDetails{Probes: make([]ttyProbe, 0, len(files))}
	for i, f := range files {
		probe := ttyProbe{Name: names[i]}
		fd := int(f.Fd())
		if fd >= 0 && term.IsTerminal(fd) {
			probe.IsTerminal = true
			probe.Width, probe.Height, _ = term.GetSize(fd)
			if probe.Width == 0 {
				probe.Error = "size unavailable"
			} else if details.Detected == nil {
				detected := probe
				details.Detected = &detected
			}
		}
		details.Probes = append(details.Probes, probe)
	}
	return details
}
