package cmd

import (
	"context"

	"github.com/jmgilman/toolrun/internal/config"
	"github.com/jmgilman/toolrun/internal/tool"
)

type contextKey string

const (
	configKey       contextKey = "config"
	loaderKey       contextKey = "loader"
	dependenciesKey contextKey = "dependencies"
)

// WithConfig adds the config to the context.
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// ConfigFromContext retrieves the config from context.
func ConfigFromContext(ctx context.Context) *config.Config {
	cfg, ok := ctx.Value(configKey).(*config.Config)
	if !ok {
		return nil
	}
	return cfg
}

// WithLoader adds the config loader to the context.
func WithLoader(ctx context.Context, loader *config.Loader) context.Context {
	return context.WithValue(ctx, loaderKey, loader)
}

// LoaderFromContext retrieves the config loader from context.
func LoaderFromContext(ctx context.Context) *config.Loader {
	loader, ok := ctx.Value(loaderKey).(*config.Loader)
	if !ok {
		return nil
	}
	return loader
}

// WithDependencies adds the tool runner dependencies to the context.
func WithDependencies(ctx context.Context, deps tool.Dependencies) context.Context {
	return context.WithValue(ctx, dependenciesKey, deps)
}

// DependenciesFromContext retrieves the tool runner dependencies from context.
func DependenciesFromContext(ctx context.Context) (tool.Dependencies, bool) {
	deps, ok := ctx.Value(dependenciesKey).(tool.Dependencies)
	return deps, ok
}
