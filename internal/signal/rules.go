package signal

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/growthdesk/clinic-intel/internal/model"
)

// rulesFile is the on-disk shape of a per-product rule set.
type rulesFile struct {
	ProductID string             `yaml:"product_id"`
	Rules     []model.SignalRule `yaml:"rules"`
}

// LoadRulesFile reads a YAML rule set for one product.
func LoadRulesFile(path string) (string, []model.SignalRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, eris.Wrapf(err, "signal: read rules file %s", path)
	}

	var rf rulesFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return "", nil, eris.Wrapf(err, "signal: parse rules file %s", path)
	}
	if rf.ProductID == "" {
		return "", nil, eris.Errorf("signal: rules file %s missing product_id", path)
	}
	return rf.ProductID, rf.Rules, nil
}
