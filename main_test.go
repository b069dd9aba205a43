package main

import (
	"errors"
	"testing"

	"github.com/alfazet/amusing/internal/app"
	"github.com/alfazet/amusing/internal/config"
	"github.com/alfazet/amusing/internal/logging"
)

func TestCollectTTYDetailsIncludesStandardDescriptors(t *testing.T) {
	info := collectTTYDetails()
	if len(info.Probes) != 3 {
		t.Fatalf("expected 3 probe entries, got %d", len(info.Probes))
	}
	expected := []string{"stdin", "stdout", "stderr"}
	for i, name := range expected {
		if info.Probes[i].Name != name {
			t.Fatalf("expected probe %d name %q, got %q", i, name, info.Probes[i].Name)
		}
	}
}

func TestStartupTracePayloadIncludesFlags(t *testing.T) {
	cfg := config.Config{
		App: app.Config{Addr: "music.local:2137"},
		Logging: config.Logging{
			FilePath: "trace.log",
			Trace:    true,
		},
		File:    "/etc/amusing.toml",
		FileErr: errors.New("invalid key volume"),
		Flags: map[string]string{
			"host": "music.local",
			"port": "0",
		},
		Args: []string{"--host", "music.local"},
	}

	payload := startupTracePayload(cfg)

	flagsValue, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	if flagsValue["host"] != "music.local" {
		t.Fatalf("expected host flag %q, got %v", "music.local", flagsValue["host"])
	}
	if flagsValue["trace"] != true {
		t.Fatalf("expected trace flag true, got %v", flagsValue["trace"])
	}
	if flagsValue["logFile"] != "trace.log" {
		t.Fatalf("expected log file trace.log, got %v", flagsValue["logFile"])
	}
	if payload["logPath"] != logging.Path() {
		t.Fatalf("expected resolved log path, got %v", payload["logPath"])
	}
	if payload["addr"] != "music.local:2137" {
		t.Fatalf("expected addr in payload, got %v", payload["addr"])
	}
	if payload["fileError"] != "invalid key volume" {
		t.Fatalf("expected file error in payload, got %v", payload["fileError"])
	}
	if _, ok := payload["tty"].(ttyDetails); !ok {
		t.Fatalf("expected tty details in payload")
	}
}
