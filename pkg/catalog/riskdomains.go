package catalog

import "casefold-hq/triage/pkg/casefile"

// RiskDomain is one weighted risk category with keyword indicator lists per
// severity tier. Indicator list order is significant: within a tier the
// first matching keyword wins.
type RiskDomain struct {
	Key    string  `yaml:"key"`
	Weight float64 `yaml:"weight"`

	HighIndicators     []string `yaml:"high"`
	ModerateIndicators []string `yaml:"moderate"`
	LowIndicators      []string `yaml:"low"`
}

// Indicators returns the indicator list for one severity tier.
func (d RiskDomain) Indicators(sev casefile.Severity) []string {
	switch sev {
	case casefile.SeverityHigh:
		return d.HighIndicators
	case casefile.SeverityModerate:
		return d.ModerateIndicators
	default:
		return d.LowIndicators
	}
}

// SeverityScanOrder is the strict tier order for factor extraction.
var SeverityScanOrder = []casefile.Severity{
	casefile.SeverityHigh,
	casefile.SeverityModerate,
	casefile.SeverityLow,
}

// defaultDomains is the built-in YLS/CMI-derived domain catalog, in catalog
// order.
func defaultDomains() []RiskDomain {
	return []RiskDomain{
		{
			Key:                "prior_offenses",
			Weight:             2.0,
			HighIndicators:     []string{"multiple priors", "violent history", "detention history"},
			ModerateIndicators: []string{"one prior", "probation history"},
			LowIndicators:      []string{"no priors", "first offense"},
		},
		{
			Key:                "family_circumstances",
			Weight:             1.5,
			HighIndicators:     []string{"abuse", "neglect", "domestic violence", "incarcerated parent"},
			ModerateIndicators: []string{"divorce", "conflict", "absent parent", "unstable"},
			LowIndicators:      []string{"supportive", "stable", "involved"},
		},
		{
			Key:                "education_employment",
			Weight:             1.5,
			HighIndicators:     []string{"expelled", "dropped out", "severe truancy"},
			ModerateIndicators: []string{"suspended", "failing", "truancy", "disengaged"},
			LowIndicators:      []string{"enrolled", "passing", "engaged", "employed"},
		},
		{
			Key:                "peer_relations",
			Weight:             1.5,
			HighIndicators:     []string{"gang involvement", "all delinquent peers"},
			ModerateIndicators: []string{"some delinquent peers", "few friends"},
			LowIndicators:      []string{"prosocial peers", "positive friends"},
		},
		{
			Key:                "substance_abuse",
			Weight:             1.5,
			HighIndicators:     []string{"daily use", "addiction", "multiple substances"},
			ModerateIndicators: []string{"occasional use", "experimental", "marijuana", "alcohol"},
			LowIndicators:      []string{"no use", "never tried"},
		},
		{
			Key:                "leisure_recreation",
			Weight:             1.0,
			HighIndicators:     []string{"no activities", "unstructured time", "negative activities"},
			ModerateIndicators: []string{"limited activities", "inconsistent involvement"},
			LowIndicators:      []string{"organized activities", "sports", "hobbies", "positive interests"},
		},
		{
			Key:                "personality_behavior",
			Weight:             1.5,
			HighIndicators:     []string{"aggressive", "impulsive", "callous", "anger issues"},
			ModerateIndicators: []string{"some impulsivity", "occasional outbursts"},
			LowIndicators:      []string{"self-control", "empathy", "regret"},
		},
		{
			Key:                "attitudes",
			Weight:             1.0,
			HighIndicators:     []string{"antisocial attitudes", "no remorse", "pro-criminal"},
			ModerateIndicators: []string{"minimizes offense", "blames others"},
			LowIndicators:      []string{"takes responsibility", "remorseful", "prosocial values"},
		},
	}
}

// ProtectiveFactorDef is one protective factor type with its indicator list.
type ProtectiveFactorDef struct {
	Type       string   `yaml:"type"`
	Indicators []string `yaml:"indicators"`
}

// defaultProtectiveFactors is the built-in protective factor table, in scan
// order.
func defaultProtectiveFactors() []ProtectiveFactorDef {
	return []ProtectiveFactorDef{
		{"family_support", []string{"supportive family", "involved parent", "strong bond"}},
		{"school_engagement", []string{"enrolled", "passing", "likes school", "good grades"}},
		{"prosocial_activities", []string{"sports", "clubs", "church", "volunteering"}},
		{"positive_peers", []string{"prosocial friends", "positive influences"}},
		{"future_orientation", []string{"goals", "plans", "motivated", "hopeful"}},
		{"mentor_relationship", []string{"mentor", "coach", "positive adult"}},
	}
}

// defaultTopicDomains maps interview topics to the risk domain they feed.
// Topics absent from the map contribute no risk factors.
func defaultTopicDomains() map[string]string {
	return map[string]string{
		"prior_offenses":   "prior_offenses",
		"current_offense":  "prior_offenses",
		"family_situation": "family_circumstances",
		"education":        "education_employment",
		"employment":       "education_employment",
		"peer_relations":   "peer_relations",
		"substance_use":    "substance_abuse",
		"mental_health":    "personality_behavior",
	}
}

// defaultFollowUpKeywords is the interview-time risk keyword table used to
// flag answers that warrant follow-up.
func defaultFollowUpKeywords() map[casefile.Severity][]string {
	return map[casefile.Severity][]string{
		casefile.SeverityHigh: {
			"suicide", "self-harm", "abuse", "violence", "gang",
			"weapon", "drugs", "arrested", "detention",
		},
		casefile.SeverityModerate: {
			"truancy", "suspended", "expelled", "fighting",
			"alcohol", "marijuana", "stealing",
		},
	}
}

// RiskAssessmentTool and RiskAssessmentCitation identify the scoring
// instrument reported with every assessment.
const (
	RiskAssessmentTool     = "YLS/CMI-Based Assessment"
	RiskAssessmentCitation = "Risk Assessment Policy, Section 2.1"
)
