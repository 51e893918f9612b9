package dirbuild

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/signadot/seedgen/debug"
)

const (
	// EnvBuild holds a YAML or JSON mapping merged into the build file.
	EnvBuild = "SEEDGEN_BUILD"
	// EnvDestDir overrides destDir, after EnvBuild.
	EnvDestDir = "SEEDGEN_DEST_DIR"
)

// LoadEnv returns the build file overrides given in the environment, or
// nil if there are none.
func LoadEnv() (map[string]any, error) {
	var res map[string]any
	if envBuild := os.Getenv(EnvBuild); envBuild != "" {
		if err := yaml.Unmarshal([]byte(envBuild), &res); err != nil {
			return nil, fmt.Errorf("error decoding $%s: %w", EnvBuild, err)
		}
	}
	if destDir := os.Getenv(EnvDestDir); destDir != "" {
		if res == nil {
			res = map[string]any{}
		}
		res["destDir"] = destDir
	}
	if debug.Build() && res != nil {
		debug.Logf("loaded overrides from env: %s\n", debug.JSON(res))
	}
	return res, nil
}
