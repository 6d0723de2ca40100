package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	configName = "nshor_config"
	envPrefix  = "NSHOR"
)

// DefaultTargets is the list the driver factors when none is given.
var DefaultTargets = []string{"15", "21", "33", "35", "51"}

type Settings struct {
	Targets          []string
	Attempts         int
	Oracle           string
	Shots            int
	Seed             int64
	Refine           bool
	FallbackOnReject bool
	MaxQubits        int
	Parallel         int
	Timeout          time.Duration
	Listen           string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("targets", DefaultTargets)
	v.SetDefault("attempts", 5)
	v.SetDefault("oracle", "simulated,classical")
	v.SetDefault("shots", 1024)
	v.SetDefault("seed", 0)
	v.SetDefault("refine", false)
	v.SetDefault("fallback_on_reject", false)
	v.SetDefault("max_qubits", 0)
	v.SetDefault("parallel", 1)
	v.SetDefault("timeout", "0s")
	v.SetDefault("listen", ":1080")
}

func searchPaths() []string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfigHome == "" && homeDir != "" {
		xdgConfigHome = filepath.Join(homeDir, ".config")
	}

	paths := []string{
		"/etc/nshor",
		"/usr/local/etc/nshor",
	}
	if runtime.GOOS == "darwin" {
		paths = append(paths, "/opt/homebrew/etc/nshor")
	}
	if xdgConfigHome != "" {
		paths = append(paths, filepath.Join(xdgConfigHome, "nshor"))
	}
	if homeDir != "" {
		paths = append(paths,
			filepath.Join(homeDir, ".nshor"),
			homeDir,
		)
	}
	return append(paths, ".")
}

// New builds a viper instance with defaults and NSHOR_* env overrides.
// Extra paths are searched before the standard locations.
func New(paths ...string) *viper.Viper {
	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	for _, p := range searchPaths() {
		v.AddConfigPath(p)
	}
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// InitConfig reads the first nshor_config.yaml found. A missing file is
// not an error; the defaults apply.
func InitConfig(paths ...string) (*viper.Viper, error) {
	v := New(paths...)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return v, err
	}
	return v, nil
}

// Generate writes the current settings to path unless it already exists.
func Generate(v *viper.Viper, path string) error {
	return v.SafeWriteConfigAs(path)
}

func Load(v *viper.Viper) Settings {
	return Settings{
		Targets:          v.GetStringSlice("targets"),
		Attempts:         v.GetInt("attempts"),
		Oracle:           v.GetString("oracle"),
		Shots:            v.GetInt("shots"),
		Seed:             v.GetInt64("seed"),
		Refine:           v.GetBool("refine"),
		FallbackOnReject: v.GetBool("fallback_on_reject"),
		MaxQubits:        v.GetInt("max_qubits"),
		Parallel:         v.GetInt("parallel"),
		Timeout:          v.GetDuration("timeout"),
		Listen:           v.GetString("listen"),
	}
}
