package pathfinder

import (
	"os"
	"strings"
)

// Environment looks up environment variables by name.
type Environment interface {
	LookupEnv(name string) (string, bool)
}

type osEnvironment struct{}

func (osEnvironment) LookupEnv(name string) (string, bool) {
	return os.LookupEnv(name)
}

// OSEnvironment reads the process environment.
var OSEnvironment Environment = osEnvironment{}

// EnvMap is an [Environment] backed by a map.
type EnvMap map[string]string

func (m EnvMap) LookupEnv(name string) (string, bool) {
	v, ok := m[name]

	return v, ok
}

// EnvList builds an [EnvMap] from "NAME=value" strings in the format of
// [os.Environ]. Later entries replace earlier ones; entries without '=' are
// ignored.
func EnvList(list []string) EnvMap {
	m := make(EnvMap, len(list))

	for _, kv := range list {
		if name, value, ok := strings.Cut(kv, "="); ok {
			m[name] = value
		}
	}

	return m
}
