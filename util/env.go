package util

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// envLog echoes detected variables while NSHOR_DEBUG is set. Env switches
// are read during package init, before any configured logger exists.
var envLog = sync.OnceValue(func() *zap.Logger {
	l, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return l
})

var (
	EnvDebug     = GetEnvBool("NSHOR_DEBUG", false)
	EnvNoColor   = GetEnvBool("NSHOR_NOCOLOR", false)
	EnvDevMode   = GetEnvBool("NSHOR_DEVMODE", false)
	EnvConfigDir = GetEnvDefault("NSHOR_CONFIG_DIR", "")
	EnvWorkers   = GetEnvInt("NSHOR_WORKERS", 0)
)

func GetEnvTrimmed(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	val := strings.TrimSpace(v)
	if os.Getenv("NSHOR_DEBUG") != "" {
		envLog().Debug("env detected", zap.String("key", key), zap.String("value", val))
	}
	return val, true
}

func GetEnvBool(key string, def bool) bool {
	if val, ok := GetEnvTrimmed(key); ok {
		switch val {
		case "1":
			return true
		case "0":
			return false
		default:
			return def
		}
	}
	return def
}

func GetEnvDefault(key string, def string) string {
	if val, ok := GetEnvTrimmed(key); ok {
		return val
	}
	return def
}

func GetEnvInt(key string, def int) int {
	if val, ok := GetEnvTrimmed(key); ok {
		num, err := strconv.Atoi(val)
		if err != nil {
			return def
		}
		return num
	}
	return def
}
