// Package configpaths resolves candidate configuration file locations.
package configpaths

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultConfigDir returns the per-user roverlink configuration directory.
func DefaultConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "roverlink"), nil
}

// ConfigCandidatePaths returns configuration file candidates per format,
// lowest priority first. A user-supplied path is appended to the list
// matching its extension (JSON when the extension is unknown) so it wins
// over the defaults.
func ConfigCandidatePaths(userCfg string) (jsonPaths, yamlPaths, tomlPaths []string) {
	if dir, err := DefaultConfigDir(); err == nil {
		jsonPaths = append(jsonPaths, filepath.Join(dir, "config.json"))
		yamlPaths = append(yamlPaths, filepath.Join(dir, "config.yaml"), filepath.Join(dir, "config.yml"))
		tomlPaths = append(tomlPaths, filepath.Join(dir, "config.toml"))
	}
	jsonPaths = append(jsonPaths, "roverlink.json")
	yamlPaths = append(yamlPaths, "roverlink.yaml", "roverlink.yml")
	tomlPaths = append(tomlPaths, "roverlink.toml")

	if userCfg != "" {
		switch strings.ToLower(filepath.Ext(userCfg)) {
		case ".yaml", ".yml":
			yamlPaths = append(yamlPaths, userCfg)
		case ".toml":
			tomlPaths = append(tomlPaths, userCfg)
		default:
			jsonPaths = append(jsonPaths, userCfg)
		}
	}
	return jsonPaths, yamlPaths, tomlPaths
}
