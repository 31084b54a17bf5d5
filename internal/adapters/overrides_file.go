package adapters

import (
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"reqlock/internal/ports"
	"reqlock/internal/types"
)

type OverridesFileAdapter struct{}

func NewOverridesFileAdapter() OverridesFileAdapter {
	return OverridesFileAdapter{}
}

// Load reads an overrides YAML document. An empty path is not an error:
// overrides are optional and most resolve runs have none.
func (a OverridesFileAdapter) Load(path string) ([]types.OverrideDirective, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("overrides file not found").
			WithCause(err)
	}
	var file types.OverridesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse overrides yaml").
			WithCause(err)
	}
	return file.Overrides, nil
}

var _ ports.OverridesPort = OverridesFileAdapter{}
