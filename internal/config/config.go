package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"net"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"

	"github.com/alfazet/amusing/internal/app"
	"github.com/alfazet/amusing/internal/keybind"
	"github.com/alfazet/amusing/internal/theme"
)

const (
	DefaultHost = "127.0.0.1"
	DefaultPort = 2137

	configDir  = "amusing"
	configFile = "amusing.toml"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	// File is the config file that was read, if any.
	File string
	// FileErr is set when the config file was rejected. Settings then hold
	// the defaults.
	FileErr error
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envConfig  = "AMUSING_CONFIG"
	envHost    = "AMUSING_HOST"
	envPort    = "AMUSING_PORT"
	envTrace   = "AMUSING_TRACE"
	envLogFile = "AMUSING_LOG_FILE"
)

// userConfigDir is replaced in tests.
var userConfigDir = os.UserConfigDir

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	set := pflag.NewFlagSet("amusing", pflag.ContinueOnError)
	set.SetOutput(new(strings.Builder))

	path := set.StringP("config", "c", envOrDefault(env, envConfig, ""), "path to the config file (default <config dir>/amusing/amusing.toml)")
	host := set.String("host", envOrDefault(env, envHost, ""), "musing host (overrides the config file)")
	port := set.IntP("port", "p", envOrInt(env, envPort, 0), "musing port (0 uses the config file)")
	trace := set.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := set.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := set.Parse(args); err != nil {
		return Config{}, err
	}
	if *port < 0 || *port > math.MaxUint16 {
		return Config{}, fmt.Errorf("port must be between 0 and %d (got %d)", math.MaxUint16, *port)
	}

	explicit := *path != ""
	if !explicit {
		if dir, err := userConfigDir(); err == nil {
			*path = filepath.Join(dir, configDir, configFile)
		}
	}

	cfg := Config{
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"config":  *path,
			"host":    *host,
			"port":    strconv.Itoa(*port),
			"trace":   strconv.FormatBool(*trace),
			"logFile": *logFile,
		},
		Args: append([]string(nil), args...),
	}

	file := defaultFile()
	if *path != "" {
		loaded, err := ReadFile(*path)
		switch {
		case err == nil:
			file = loaded
			cfg.File = *path
		case !explicit && errors.Is(err, fs.ErrNotExist):
		default:
			cfg.FileErr = err
		}
	}
	if *host != "" {
		file.Host = *host
	}
	if *port != 0 {
		file.Port = *port
	}
	cfg.App = app.Config{
		Addr:      net.JoinHostPort(file.Host, strconv.Itoa(file.Port)),
		Settings:  file.Settings,
		AltScreen: true,
	}
	return cfg, nil
}

// File is a decoded config file.
type File struct {
	Host     string
	Port     int
	Settings app.Settings
}

func defaultFile() File {
	return File{Host: DefaultHost, Port: DefaultPort, Settings: app.DefaultSettings()}
}

type fileKeys struct {
	Port           *int64            `toml:"port"`
	Host           *string           `toml:"host"`
	SeekStep       *int64            `toml:"seek_step"`
	VolumeStep     *int64            `toml:"volume_step"`
	SpeedStep      *int64            `toml:"speed_step"`
	LibraryGroupBy []string          `toml:"library_group_by"`
	QueueTags      []string          `toml:"queue_tags"`
	Keybind        map[string]any    `toml:"keybind"`
	Theme          map[string]string `toml:"theme"`
}

// ReadFile decodes the TOML file at path on top of the defaults. Any unknown
// key, out-of-range number, bad keybind or bad colour rejects the whole file.
func ReadFile(path string) (File, error) {
	var keys fileKeys
	md, err := toml.DecodeFile(path, &keys)
	if err != nil {
		return defaultFile(), fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		names := make([]string, len(undecoded))
		for i, key := range undecoded {
			names[i] = key.String()
		}
		return defaultFile(), fmt.Errorf("config %s: invalid key %s", path, strings.Join(names, ", "))
	}
	file, err := keys.apply(defaultFile())
	if err != nil {
		return defaultFile(), fmt.Errorf("config %s: %w", path, err)
	}
	return file, nil
}

func (k fileKeys) apply(file File) (File, error) {
	if k.Port != nil {
		if *k.Port <= 0 || *k.Port > math.MaxUint16 {
			return file, fmt.Errorf("port %d out of range", *k.Port)
		}
		file.Port = int(*k.Port)
	}
	if k.Host != nil {
		if *k.Host == "" {
			return file, errors.New("host must not be empty")
		}
		file.Host = *k.Host
	}
	s := &file.Settings
	// Steps must be positive.
	if k.SeekStep != nil {
		if *k.SeekStep < 1 {
			return file, fmt.Errorf("seek_step %d out of range (1..%d)", *k.SeekStep, int64(math.MaxInt64))
		}
		s.SeekStep = *k.SeekStep
	}
	if k.VolumeStep != nil {
		if *k.VolumeStep < 1 || *k.VolumeStep > math.MaxInt8 {
			return file, fmt.Errorf("volume_step %d out of range (1..%d)", *k.VolumeStep, math.MaxInt8)
		}
		s.VolumeStep = int8(*k.VolumeStep)
	}
	if k.SpeedStep != nil {
		if *k.SpeedStep < 1 || *k.SpeedStep > math.MaxInt16 {
			return file, fmt.Errorf("speed_step %d out of range (1..%d)", *k.SpeedStep, math.MaxInt16)
		}
		s.SpeedStep = int16(*k.SpeedStep)
	}
	if k.LibraryGroupBy != nil {
		if len(k.LibraryGroupBy) == 0 {
			return file, errors.New("library_group_by must name at least one tag")
		}
		s.GroupBy = k.LibraryGroupBy
	}
	if k.QueueTags != nil {
		if len(k.QueueTags) == 0 {
			return file, errors.New("queue_tags must name at least one tag")
		}
		s.QueueTags = k.QueueTags
	}
	if len(k.Keybind) > 0 {
		overrides, err := keybindOverrides(k.Keybind)
		if err != nil {
			return file, err
		}
		km, err := keybind.Load(overrides)
		if err != nil {
			return file, err
		}
		s.Keymap = km
	}
	if len(k.Theme) > 0 {
		styles, err := theme.WithColors(k.Theme)
		if err != nil {
			return file, err
		}
		s.Styles = styles
	}
	return file, nil
}

// keybindOverrides accepts a single sequence or a list of sequences per
// binding.
func keybindOverrides(raw map[string]any) (keybind.Overrides, error) {
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	overrides := make(keybind.Overrides, len(raw))
	for _, name := range names {
		switch v := raw[name].(type) {
		case string:
			overrides[name] = []string{v}
		case []any:
			seqs := make([]string, 0, len(v))
			for _, item := range v {
				s, ok := item.(string)
				if !ok {
					return nil, fmt.Errorf("keybind %s: expected strings, got %T", name, item)
				}
				seqs = append(seqs, s)
			}
			overrides[name] = seqs
		default:
			return nil, fmt.Errorf("keybind %s: expected a string or a list of strings, got %T", name, v)
		}
	}
	return overrides, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if _, _, err := net.SplitHostPort(cfg.App.Addr); err != nil {
		return fmt.Errorf("address %q: %w", cfg.App.Addr, err)
	}
	return nil
}
