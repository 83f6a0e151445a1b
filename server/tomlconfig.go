package server

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/kestrel-labs/tableau/internal/engine"
)

// FileDB is the on-disk representation of the [db] section of a server TOML
// config file.
type FileDB struct {
	Type string `toml:"type"`
	Dir  string `toml:"dir"`
}

// FileAuth is the on-disk representation of the [auth] section of a server
// TOML config file.
type FileAuth struct {
	TokenSecret       string `toml:"token_secret"`
	UnauthDelayMillis int    `toml:"unauth_delay_millis"`
}

// FileEngine is the on-disk representation of the [engine] section of a
// server TOML config file.
type FileEngine struct {
	MaxConstants  int `toml:"max_constants"`
	MaxIterations int `toml:"max_iterations"`
}

// File is the top-level shape of a server TOML config file, as loaded by
// LoadConfigFile.
type File struct {
	DB     FileDB     `toml:"db"`
	Auth   FileAuth   `toml:"auth"`
	Engine FileEngine `toml:"engine"`
}

// LoadConfigFile reads the TOML file at path and converts it into a Config.
// Any field left unset in the file is left unset in the returned Config;
// callers should call FillDefaults on the result before use.
func LoadConfigFile(path string) (Config, error) {
	var f File
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return Config{}, fmt.Errorf("decode TOML config: %w", err)
	}

	var cfg Config

	if f.DB.Type != "" {
		dbType, err := ParseDBType(f.DB.Type)
		if err != nil {
			return Config{}, fmt.Errorf("db.type: %w", err)
		}
		cfg.DB = Database{Type: dbType, DataDir: f.DB.Dir}
	}

	if f.Auth.TokenSecret != "" {
		cfg.TokenSecret = []byte(f.Auth.TokenSecret)
	}
	cfg.UnauthDelayMillis = f.Auth.UnauthDelayMillis

	cfg.Engine = engine.Config{
		MaxConstants:  f.Engine.MaxConstants,
		MaxIterations: f.Engine.MaxIterations,
	}

	return cfg, nil
}
