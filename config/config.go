// Package config reads settings from the process environment, optionally
// overlaid with AWS SSM parameters. Values live in a plain map so handlers can
// be built from a literal map in tests.
package config

import (
	"os"
	"strconv"
	"strings"
)

func New() map[string]string {
	environ := os.Environ()
	envAsMap := make(map[string]string, len(environ))
	for _, entry := range environ {
		key, value, _ := strings.Cut(entry, "=")
		if key != "" {
			envAsMap[key] = value
		}
	}
	return envAsMap
}

func GetString(config map[string]string, key string, defaultValue string) string {
	if val, ok := config[key]; ok {
		return val
	}
	return defaultValue
}

// lookup parses config[key], falling back to defaultValue when the key is
// absent or does not parse.
func lookup[T any](config map[string]string, key string, defaultValue T, parse func(string) (T, error)) T {
	s, ok := config[key]
	if !ok {
		return defaultValue
	}
	v, err := parse(strings.TrimSpace(s))
	if err != nil {
		return defaultValue
	}
	return v
}

func GetInt(config map[string]string, key string, defaultValue int) int {
	return lookup(config, key, defaultValue, strconv.Atoi)
}

func GetBool(config map[string]string, key string, defaultValue bool) bool {
	return lookup(config, key, defaultValue, strconv.ParseBool)
}

// GetStrings splits a comma separated value, dropping blank entries
func GetStrings(config map[string]string, key string, defaultValue []string) []string {
	var values []string
	for _, part := range strings.Split(GetString(config, key, ""), ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}
