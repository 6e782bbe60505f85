package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog/log"
)

type Application struct {
	// APIURL is the URL the API is reachable at, used to build resource links.
	APIURL string `koanf:"apiurl"`

	// Port the server listens on.
	Port int `koanf:"port"`

	Database Database `koanf:"db"`

	// LogFormat is "json" or "human". When unset, logs are human readable in
	// debug mode and JSON otherwise.
	LogFormat string `koanf:"logformat"`
}

type Database struct {
	// Dir is the directory the sqlite database is stored in.
	Dir string `koanf:"dir"`
}

// Load reads the configuration from defaults, an optional YAML file and the
// environment, in that order. Later sources win.
func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		APIURL: "http://localhost:8080",
		Port:   8080,
		Database: Database{
			Dir: "data",
		},
	}, "koanf"), nil)
	if err != nil {
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Debug().Str("path", path).Msg("no config file found, using defaults and environment variables")
		} else {
			return Application{}, err
		}
	} else {
		log.Info().Str("path", path).Msg("loaded configuration file")
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "FINTRACK_",
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "FINTRACK_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}
