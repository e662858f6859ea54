package catalog

import (
	"fmt"

	"casefold-hq/triage/pkg/casefile"
)

// Catalog aggregates every decision catalog. Construct once and share by
// read-only reference.
type Catalog struct {
	topics         []Topic
	requiredTopics []string
	programs       []Program
	domains        []RiskDomain
	protective     []ProtectiveFactorDef

	indicatorKeywords map[string][]string
	topicDomains      map[string]string
	followUpKeywords  map[casefile.Severity][]string

	topicIndex  map[string]int
	domainIndex map[string]int
}

// Default returns the built-in catalogs.
func Default() *Catalog {
	c := &Catalog{
		topics:            defaultTopics(),
		requiredTopics:    defaultRequiredTopics(),
		programs:          defaultPrograms(),
		domains:           defaultDomains(),
		protective:        defaultProtectiveFactors(),
		indicatorKeywords: defaultIndicatorKeywords(),
		topicDomains:      defaultTopicDomains(),
		followUpKeywords:  defaultFollowUpKeywords(),
	}
	c.reindex()
	return c
}

func (c *Catalog) reindex() {
	c.topicIndex = make(map[string]int, len(c.topics))
	for i, t := range c.topics {
		c.topicIndex[t.Key] = i
	}
	c.domainIndex = make(map[string]int, len(c.domains))
	for i, d := range c.domains {
		c.domainIndex[d.Key] = i
	}
}

// Topics returns the interview question registry in registry order.
func (c *Catalog) Topics() []Topic { return c.topics }

// RequiredTopics returns the full coverage key set.
func (c *Catalog) RequiredTopics() []string { return c.requiredTopics }

// Topic looks up one topic by key.
func (c *Catalog) Topic(key string) (Topic, bool) {
	i, ok := c.topicIndex[key]
	if !ok {
		return Topic{}, false
	}
	return c.topics[i], true
}

// Programs returns the program catalog in evaluation order.
func (c *Catalog) Programs() []Program { return c.programs }

// Program looks up one program by key.
func (c *Catalog) Program(key string) (Program, bool) {
	for _, p := range c.programs {
		if p.Key == key {
			return p, true
		}
	}
	return Program{}, false
}

// Domains returns the risk domain catalog in catalog order.
func (c *Catalog) Domains() []RiskDomain { return c.domains }

// Domain looks up one risk domain by key.
func (c *Catalog) Domain(key string) (RiskDomain, bool) {
	i, ok := c.domainIndex[key]
	if !ok {
		return RiskDomain{}, false
	}
	return c.domains[i], true
}

// DomainForTopic returns the risk domain an interview topic feeds, or false
// when the topic contributes no risk factors.
func (c *Catalog) DomainForTopic(topic string) (RiskDomain, bool) {
	key, ok := c.topicDomains[topic]
	if !ok || key == "" {
		return RiskDomain{}, false
	}
	return c.Domain(key)
}

// ProtectiveFactors returns the protective factor table in scan order.
func (c *Catalog) ProtectiveFactors() []ProtectiveFactorDef { return c.protective }

// IndicatorKeywords returns the keyword set for an indicator topic
// (substance_use, mental_health). Unknown topics return an empty set.
func (c *Catalog) IndicatorKeywords(topic string) []string {
	return c.indicatorKeywords[topic]
}

// FollowUpKeywords returns the interview follow-up keyword list for a tier.
func (c *Catalog) FollowUpKeywords(sev casefile.Severity) []string {
	return c.followUpKeywords[sev]
}

// SummaryTopicOrder returns the fixed topic grouping order and display
// labels for the case summary.
func (c *Catalog) SummaryTopicOrder() []struct {
	Key   string
	Label string
} {
	return summaryTopicOrder
}

// MaxPossibleRiskScore returns the weighted maximum attainable raw score
// across all domains.
func (c *Catalog) MaxPossibleRiskScore() float64 {
	var max float64
	for _, d := range c.domains {
		max += d.Weight * casefile.SeverityHigh.Score()
	}
	return max
}

// Validate checks catalog integrity: unique non-empty keys, positive domain
// weights, and a topic→domain map that only names known domains.
func (c *Catalog) Validate() error {
	seen := make(map[string]bool)
	for _, t := range c.topics {
		if t.Key == "" {
			return fmt.Errorf("topic with empty key")
		}
		if seen[t.Key] {
			return fmt.Errorf("duplicate topic key %q", t.Key)
		}
		seen[t.Key] = true
	}
	required := make(map[string]bool)
	for _, k := range c.requiredTopics {
		if required[k] {
			return fmt.Errorf("duplicate required topic %q", k)
		}
		required[k] = true
	}
	for _, t := range c.topics {
		if !required[t.Key] {
			return fmt.Errorf("registry topic %q missing from required topic set", t.Key)
		}
	}
	progs := make(map[string]bool)
	for _, p := range c.programs {
		if p.Key == "" || p.Name == "" {
			return fmt.Errorf("program with empty key or name")
		}
		if progs[p.Key] {
			return fmt.Errorf("duplicate program key %q", p.Key)
		}
		progs[p.Key] = true
		if p.Criteria.AgeMin > p.Criteria.AgeMax {
			return fmt.Errorf("program %q: age_min %d > age_max %d", p.Key, p.Criteria.AgeMin, p.Criteria.AgeMax)
		}
	}
	doms := make(map[string]bool)
	for _, d := range c.domains {
		if d.Key == "" {
			return fmt.Errorf("risk domain with empty key")
		}
		if doms[d.Key] {
			return fmt.Errorf("duplicate risk domain key %q", d.Key)
		}
		doms[d.Key] = true
		if d.Weight <= 0 {
			return fmt.Errorf("risk domain %q: weight must be positive, got %v", d.Key, d.Weight)
		}
	}
	for topic, dom := range c.topicDomains {
		if dom != "" && !doms[dom] {
			return fmt.Errorf("topic %q maps to unknown risk domain %q", topic, dom)
		}
	}
	return nil
}
