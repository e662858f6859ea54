package catalog

// Topic is one required interview subject area. Lower Priority means the
// topic is asked earlier; ties are broken by registry order.
type Topic struct {
	Key       string   `yaml:"key"`
	Priority  int      `yaml:"priority"`
	Questions []string `yaml:"questions"`
}

// defaultTopics is the built-in interview question registry. Registry order
// is the stable tie-break for equal priorities.
func defaultTopics() []Topic {
	return []Topic{
		{
			Key:      "family_situation",
			Priority: 1,
			Questions: []string{
				"Who does the youth live with currently?",
				"Describe the relationship between the youth and their parent(s)/guardian(s).",
				"Are there any significant family stressors (divorce, domestic violence, substance use)?",
				"How involved are family members in the youth's daily life?",
			},
		},
		{
			Key:      "living_situation",
			Priority: 2,
			Questions: []string{
				"Where does the youth currently reside?",
				"How stable is the current living situation?",
				"Have there been any recent moves or changes in living arrangements?",
				"Is the home environment safe and appropriate?",
			},
		},
		{
			Key:      "education",
			Priority: 3,
			Questions: []string{
				"What school does the youth attend? What grade?",
				"How is the youth performing academically?",
				"Are there any attendance issues (truancy, suspensions)?",
				"Does the youth have an IEP or receive special education services?",
				"What is the youth's relationship with teachers and school staff?",
			},
		},
		{
			Key:      "employment",
			Priority: 4,
			Questions: []string{
				"Is the youth currently employed?",
				"Has the youth had previous work experience?",
				"What are the youth's career interests or goals?",
			},
		},
		{
			Key:      "mental_health",
			Priority: 1,
			Questions: []string{
				"Has the youth ever been diagnosed with a mental health condition?",
				"Is the youth currently receiving mental health treatment?",
				"Has the youth ever expressed thoughts of self-harm or suicide?",
				"Are there any trauma or abuse history concerns?",
				"How does the youth typically handle stress or anger?",
			},
		},
		{
			Key:      "substance_use",
			Priority: 1,
			Questions: []string{
				"Has the youth ever used alcohol or drugs?",
				"If yes, what substances and how frequently?",
				"Is there a family history of substance abuse?",
				"Has the youth ever received substance abuse treatment?",
			},
		},
		{
			Key:      "peer_relations",
			Priority: 2,
			Questions: []string{
				"Describe the youth's friendships and social relationships.",
				"Does the youth have any prosocial friends or positive influences?",
				"Is there any gang involvement or association with delinquent peers?",
				"How does the youth spend free time with friends?",
			},
		},
		{
			Key:      "prior_offenses",
			Priority: 1,
			Questions: []string{
				"Does the youth have any prior juvenile or criminal history?",
				"If yes, describe the nature and outcomes of prior offenses.",
				"Has the youth previously been on probation or in placement?",
			},
		},
		{
			Key:      "current_offense",
			Priority: 1,
			Questions: []string{
				"What is the current offense that led to this referral?",
				"Describe the circumstances of the offense.",
				"What is the youth's attitude toward the offense?",
				"Were there any co-participants or victims?",
			},
		},
		{
			Key:      "strengths_protective_factors",
			Priority: 3,
			Questions: []string{
				"What are the youth's strengths and positive qualities?",
				"Are there supportive adults in the youth's life (mentors, coaches, etc.)?",
				"What activities or interests is the youth passionate about?",
				"What goals does the youth have for the future?",
			},
		},
	}
}

// defaultRequiredTopics is the full coverage key set. It is a superset of
// the question registry: demographics is retired at intake from the case
// form rather than asked as an interview question.
func defaultRequiredTopics() []string {
	return []string{
		"demographics",
		"family_situation",
		"living_situation",
		"education",
		"employment",
		"mental_health",
		"substance_use",
		"peer_relations",
		"prior_offenses",
		"current_offense",
		"strengths_protective_factors",
	}
}

// TopicDemographics is the intake-form topic retired without questioning.
const TopicDemographics = "demographics"

// summaryTopicOrder fixes the grouping order of the summary's background
// section.
var summaryTopicOrder = []struct {
	Key   string
	Label string
}{
	{"family_situation", "Family Situation"},
	{"living_situation", "Living Situation"},
	{"education", "Education"},
	{"employment", "Employment"},
	{"peer_relations", "Peer Relations"},
	{"substance_use", "Substance Use History"},
	{"mental_health", "Mental Health"},
	{"prior_offenses", "Prior History"},
}
