package cmd

import (
	"github.com/spf13/viper"

	"sentryctl/internal/api"
	"sentryctl/internal/config"
	"sentryctl/internal/logger"
	"sentryctl/internal/resolver"
)

// configPath returns the config file location, honoring --config.
func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	path, err := config.Path()
	if err != nil {
		return ""
	}
	return path
}

// loadConfig resolves the effective configuration: flags (via viper) over
// environment over config file.
func loadConfig() config.Config {
	cfg := config.Load(configPath())
	if v := viper.GetString("token"); v != "" {
		cfg.Token = v
	}
	if v := viper.GetString("host"); v != "" {
		cfg.Host = v
	}
	return cfg
}

// newClient builds the API client for this invocation.
func newClient(cfg config.Config) *api.Client {
	return api.New(cfg.Host, cfg.Token,
		api.WithLogger(logger.New(viper.GetBool("debug"))))
}

// newResolver builds the per-invocation context resolver with the explicit
// flag values supplied on this command.
func newResolver(client *api.Client, cfg config.Config, org, project, team string) *resolver.Resolver {
	return resolver.New(client, cfg, resolver.WithFlags(org, project, team))
}
