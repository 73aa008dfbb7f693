package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

const configFileName = ".jvalidate.yml"

// fileConfig holds the subset of flags that are also settable from
// .jvalidate.yml in the current directory. Flags passed on the command
// line always win over the file.
type fileConfig struct {
	Locale       string `yaml:"locale"`
	StrictFormat bool   `yaml:"strictFormat"`
	Format       string `yaml:"format"`
}

// loadConfig reads configFileName from the current directory. A missing
// file is not an error: it just means every default applies.
func loadConfig() (fileConfig, error) {
	var cfg fileConfig
	data, err := os.ReadFile(configFileName)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
