package retrieval

// builtinDocuments returns the embedded policy excerpts used when no
// corpus directory is configured. Content mirrors the county policy
// manuals the eligibility and risk citations refer to.
func builtinDocuments() []Document {
	return []Document{
		{
			Content: `Youth Diversion Program Eligibility Criteria:
1. Age: 12-17 years old
2. Offense: Non-violent misdemeanor or low-level felony
3. Prior record: First-time or second-time offender
4. Risk level: Low to moderate risk
5. Family involvement: Guardian willing to participate
6. Exclusions: Sexual offenses, firearms offenses, gang-related violence`,
			Source:  "County Diversion Policy Manual",
			Section: "Section 3.2 - Eligibility Criteria",
			Metadata: map[string]string{
				"policy_type":    "eligibility",
				"effective_date": "2024-01-01",
				"jurisdiction":   "county",
			},
		},
		{
			Content: `Substance Abuse Treatment Program Requirements:
1. Documented substance use issue
2. Youth and family consent to treatment
3. Assessment by licensed substance abuse counselor
4. Medicaid or private insurance (or county funding available)
5. Commitment to 12-week minimum program`,
			Source:  "Treatment Services Guide",
			Section: "Section 5.1 - Substance Abuse Services",
			Metadata: map[string]string{
				"policy_type":    "treatment_eligibility",
				"effective_date": "2024-01-01",
				"jurisdiction":   "county",
			},
		},
		{
			Content: `Mental Health Services Eligibility:
1. Screening indicates mental health needs
2. Youth agrees to participate in services
3. Services can be provided in least restrictive setting
4. Priority given to youth with documented diagnoses
5. Trauma-informed care available for abuse/trauma history`,
			Source:  "Mental Health Services Policy",
			Section: "Section 4.2 - Eligibility",
			Metadata: map[string]string{
				"policy_type":    "mental_health",
				"effective_date": "2024-01-01",
				"jurisdiction":   "county",
			},
		},
		{
			Content: `Risk Assessment Protocol:
All youth must be assessed using the validated risk assessment instrument.
Risk levels determine appropriate intervention:
- Low risk: Diversion, minimal supervision
- Moderate risk: Probation with services
- High risk: Intensive supervision, possible placement
- Very high risk: Secure placement consideration

Risk factors include: prior offenses, family instability, substance use,
peer associations, education problems, mental health issues.

Protective factors to consider: family support, school engagement,
prosocial activities, positive peer relationships, future orientation.`,
			Source:  "Risk Assessment Policy",
			Section: "Section 2.1 - Assessment Protocol",
			Metadata: map[string]string{
				"policy_type":    "risk_assessment",
				"effective_date": "2024-01-01",
				"jurisdiction":   "county",
			},
		},
	}
}
