package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const defaultEnvFile = ".env"

// Option configures Load.
type Option func(*options)

type options struct {
	files       []string
	prefix      string
	environment map[string]string
}

// WithEnvFiles reads the given .env files instead of the optional default
// ".env". Missing files are an error.
func WithEnvFiles(paths ...string) Option {
	return func(o *options) {
		o.files = append(o.files, paths...)
	}
}

// WithPrefix requires every variable name to carry prefix.
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// WithEnvironment replaces the process environment as the base source.
func WithEnvironment(vars map[string]string) Option {
	return func(o *options) {
		o.environment = vars
	}
}

// Load parses configuration into a new T.
func Load[T any](opts ...Option) (T, error) {
	var zero T

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	vars := o.environment
	if vars == nil {
		vars = processEnv()
	} else {
		vars = copyMap(vars)
	}

	files, optional := o.files, false
	if len(files) == 0 {
		files, optional = []string{defaultEnvFile}, true
	}

	for _, path := range files {
		fileVars, err := godotenv.Read(path)
		if err != nil {
			if optional && errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return zero, errors.Join(ErrLoadingEnvFile, fmt.Errorf("%s: %w", path, err))
		}
		for k, v := range fileVars {
			if _, set := vars[k]; !set {
				vars[k] = v
			}
		}
	}

	cfg, err := env.ParseAsWithOptions[T](env.Options{
		Environment: vars,
		Prefix:      o.prefix,
	})
	if err != nil {
		return zero, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}

// MustLoad works like Load but panics on failure.
func MustLoad[T any](opts ...Option) T {
	cfg, err := Load[T](opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
	return cfg
}

func processEnv() map[string]string {
	environ := os.Environ()
	vars := make(map[string]string, len(environ))
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			vars[k] = v
		}
	}
	return vars
}

func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
