package catalog

// Criteria is the criteria set of one program definition. Zero values mean
// the criterion is not configured. MaxPriorOffenses, RiskLevels, and
// RequiresFamilyParticipation are catalog facts recorded for the program
// but not evaluated by the rule engine; the evaluated criteria are age,
// offense exclusion, and the two indicator requirements.
type Criteria struct {
	AgeMin int `yaml:"age_min"`
	AgeMax int `yaml:"age_max"`

	// OffenseTypes is the advisory allowed-offense list. A non-matching
	// allowed list never produces a barrier; absence of an excluded match
	// is sufficient.
	OffenseTypes []string `yaml:"offense_types,omitempty"`

	// ExcludedOffenses are substring tags that exclude the program outright
	// when found in the referral reason.
	ExcludedOffenses []string `yaml:"excluded_offenses,omitempty"`

	MaxPriorOffenses            int      `yaml:"max_prior_offenses,omitempty"`
	RiskLevels                  []string `yaml:"risk_levels,omitempty"`
	RequiresSubstanceIndicator  bool     `yaml:"requires_substance_use_indicator,omitempty"`
	RequiresMentalHealthIndctor bool     `yaml:"requires_mental_health_indicator,omitempty"`
	RequiresFamilyParticipation bool     `yaml:"requires_family_participation,omitempty"`
}

// Program is one immutable program definition.
type Program struct {
	Key      string   `yaml:"key"`
	Name     string   `yaml:"name"`
	Citation string   `yaml:"policy_citation"`
	Criteria Criteria `yaml:"criteria"`
}

// defaultPrograms is the built-in program catalog, in evaluation order.
func defaultPrograms() []Program {
	return []Program{
		{
			Key:      "youth_diversion",
			Name:     "Youth Diversion Program",
			Citation: "County Diversion Policy Manual, Section 3.2",
			Criteria: Criteria{
				AgeMin:                      12,
				AgeMax:                      17,
				OffenseTypes:                []string{"misdemeanor", "low_level_felony"},
				ExcludedOffenses:            []string{"sexual_offense", "firearms", "gang_violence"},
				MaxPriorOffenses:            1,
				RiskLevels:                  []string{"low", "moderate"},
				RequiresFamilyParticipation: true,
			},
		},
		{
			Key:      "community_service",
			Name:     "Community Service Program",
			Citation: "Community Service Guidelines, Section 2.1",
			Criteria: Criteria{
				AgeMin:           10,
				AgeMax:           17,
				OffenseTypes:     []string{"misdemeanor", "status_offense"},
				ExcludedOffenses: []string{"violent_offense"},
				MaxPriorOffenses: 3,
				RiskLevels:       []string{"low", "moderate", "high"},
			},
		},
		{
			Key:      "substance_abuse_treatment",
			Name:     "Substance Abuse Treatment",
			Citation: "Treatment Services Guide, Section 5.1",
			Criteria: Criteria{
				AgeMin:                      12,
				AgeMax:                      17,
				RequiresSubstanceIndicator:  true,
				RiskLevels:                  []string{"low", "moderate", "high"},
				RequiresFamilyParticipation: true,
			},
		},
		{
			Key:      "mental_health_services",
			Name:     "Mental Health Services",
			Citation: "Mental Health Services Policy, Section 4.2",
			Criteria: Criteria{
				AgeMin:                      10,
				AgeMax:                      17,
				RequiresMentalHealthIndctor: true,
				RiskLevels:                  []string{"low", "moderate", "high", "very_high"},
			},
		},
		{
			Key:      "intensive_supervision",
			Name:     "Intensive Supervision Probation",
			Citation: "Probation Policy Manual, Section 6.3",
			Criteria: Criteria{
				AgeMin:                      12,
				AgeMax:                      17,
				OffenseTypes:                []string{"felony", "repeat_misdemeanor"},
				RiskLevels:                  []string{"moderate", "high", "very_high"},
				RequiresFamilyParticipation: true,
			},
		},
	}
}

// indicatorKeywords maps an indicator topic to the fixed keyword set whose
// case-insensitive substring presence in an answer marks the indicator.
func defaultIndicatorKeywords() map[string][]string {
	return map[string][]string{
		"substance_use": {"yes", "marijuana", "alcohol", "drugs", "using", "smokes"},
		"mental_health": {"yes", "diagnosed", "therapy", "medication", "depression", "anxiety", "trauma"},
	}
}
