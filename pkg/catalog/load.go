package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileCatalog is the YAML shape for catalog overrides. Sections are
// replaced wholesale when present; absent sections keep the built-in
// defaults.
type fileCatalog struct {
	Topics         []Topic               `yaml:"topics"`
	RequiredTopics []string              `yaml:"required_topics"`
	Programs       []Program             `yaml:"programs"`
	Domains        []RiskDomain          `yaml:"domains"`
	Protective     []ProtectiveFactorDef `yaml:"protective_factors"`
	TopicDomains   map[string]string     `yaml:"topic_domains"`
}

// Load builds a catalog from the defaults overridden by the YAML file at
// path. An empty path returns the defaults unchanged. The resulting catalog
// is validated before being returned.
func Load(path string) (*Catalog, error) {
	c := Default()
	if path == "" {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		return c, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %q: %w", path, err)
	}

	var fc fileCatalog
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %q: %w", path, err)
	}

	if len(fc.Topics) > 0 {
		c.topics = fc.Topics
	}
	if len(fc.RequiredTopics) > 0 {
		c.requiredTopics = fc.RequiredTopics
	}
	if len(fc.Programs) > 0 {
		c.programs = fc.Programs
	}
	if len(fc.Domains) > 0 {
		c.domains = fc.Domains
	}
	if len(fc.Protective) > 0 {
		c.protective = fc.Protective
	}
	if len(fc.TopicDomains) > 0 {
		c.topicDomains = fc.TopicDomains
	}
	c.reindex()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("catalog file %q: %w", path, err)
	}
	return c, nil
}
