// Package config loads `env`-tagged configuration structs from the
// environment, with optional .env file support and per-type caching so
// a config struct is parsed exactly once per process.
//
//	type AppConfig struct {
//	    Port int `env:"PORT" envDefault:"8080"`
//	}
//
//	var cfg AppConfig
//	config.MustLoad(&cfg)
package config
