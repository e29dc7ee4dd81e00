package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mde-pach/showkit/pkg/pipeline"
)

const defaultConfigPath = "showkit.json"

// loadConfig reads an optional JSON config file and merges it over the
// pipeline defaults: fields present in the file replace the default value,
// absent fields keep it. A missing file at the default path is not an error;
// a missing explicitly requested file is.
func loadConfig(path string) (pipeline.Config, error) {
	cfg := pipeline.DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = defaultConfigPath
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if explicit {
			return cfg, fmt.Errorf("config file not found: %s", path)
		}
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
