package app

import (
	"errors"
	"fmt"
	"os"

	"go-leave/internal/chain"
	"go-leave/internal/policy"

	"gopkg.in/yaml.v3"
)

// RulesFile is the on-disk layout of POLICY_FILE. Keys left out keep their
// built-in defaults.
type RulesFile struct {
	Policy   policy.Config `yaml:"policy"`
	Approval chain.Config  `yaml:"approval"`
}

func defaultRules() RulesFile {
	return RulesFile{
		Policy:   policy.DefaultConfig(),
		Approval: chain.DefaultConfig(),
	}
}

// LoadRules reads path over the defaults. A missing file is not an error.
func LoadRules(path string) (RulesFile, error) {
	if path == "" {
		return defaultRules(), nil
	}
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return defaultRules(), nil
	}
	if err != nil {
		return RulesFile{}, fmt.Errorf("read rules file: %w", err)
	}
	return ParseRules(raw)
}

func ParseRules(raw []byte) (RulesFile, error) {
	rules := defaultRules()
	if err := yaml.Unmarshal(raw, &rules); err != nil {
		return RulesFile{}, fmt.Errorf("parse rules file: %w", err)
	}
	if err := rules.Policy.Validate(); err != nil {
		return RulesFile{}, fmt.Errorf("policy: %w", err)
	}
	if err := rules.Approval.Validate(); err != nil {
		return RulesFile{}, fmt.Errorf("approval: %w", err)
	}
	return rules, nil
}
