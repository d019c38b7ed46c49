package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	mu     sync.Mutex
	cache  = make(map[string]any)
	envced bool
)

// LoadEnv loads environment variables from the given .env files before
// any config struct is parsed. Missing files are an error here, unlike
// the implicit default load.
func LoadEnv(paths ...string) error {
	mu.Lock()
	defer mu.Unlock()

	envced = true
	if err := godotenv.Load(paths...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

// Load parses environment variables into the config struct based on its
// `env` field tags. Each distinct struct type is parsed once per process;
// later calls return the cached value. The default .env file, when
// present, is loaded before the first parse.
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}

	mu.Lock()
	defer mu.Unlock()

	if !envced {
		// The .env file is optional.
		_ = godotenv.Load()
		envced = true
	}

	key := typeName[T]()
	if cached, ok := cache[key]; ok {
		*v = cached.(T)
		return nil
	}

	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}

	cache[key] = *v
	return nil
}

// MustLoad works like Load but panics on failure. Use for configuration
// the process cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("config: failed to load required configuration: %v", err))
	}
}

// ResetCache drops all cached configs. Intended for tests.
func ResetCache() {
	mu.Lock()
	defer mu.Unlock()

	cache = make(map[string]any)
	envced = false
}

func typeName[T any]() string {
	t := reflect.TypeOf((*T)(nil)).Elem()
	return t.String()
}
