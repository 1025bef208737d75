package scenario

import (
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/yieldpilot/underwrite-cli/internal/model"
)

// scenarioFile is the on-disk shape of a scenario pack.
type scenarioFile struct {
	Scenarios []model.ScenarioDefinition `yaml:"scenarios"`
}

// LoadFile reads scenario definitions from a YAML file. Definitions must
// be named and name collisions are rejected, since results are reported
// by name.
func LoadFile(path string) ([]model.ScenarioDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "scenario: read %s", path)
	}

	var f scenarioFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, eris.Wrapf(err, "scenario: parse %s", path)
	}
	if len(f.Scenarios) == 0 {
		return nil, eris.Errorf("scenario: %s defines no scenarios", path)
	}

	var errs []string
	seen := map[string]bool{}
	for i, def := range f.Scenarios {
		name := strings.TrimSpace(def.Name)
		if name == "" {
			errs = append(errs, fmt.Sprintf("scenario %d: name is required", i))
			continue
		}
		if seen[name] {
			errs = append(errs, fmt.Sprintf("scenario %d: duplicate name %q", i, name))
		}
		seen[name] = true
	}
	if len(errs) > 0 {
		return nil, eris.Errorf("scenario: %s: %s", path, strings.Join(errs, "; "))
	}
	return f.Scenarios, nil
}
