package eligibility

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"casefold-hq/triage/pkg/casefile"
	"casefold-hq/triage/pkg/catalog"
)

func newTestRecord(t *testing.T, age int, reason string) *casefile.CaseRecord {
	t.Helper()
	cat := catalog.Default()
	rec := casefile.New("officer-1",
		casefile.SubjectInfo{Name: "John Doe"},
		casefile.GuardianInfo{},
		casefile.ReferralInfo{Reason: reason},
		cat.RequiredTopics(),
	)
	rec.Subject.Age = age
	rec.Subject.AgeKnown = true
	return rec
}

func answer(rec *casefile.CaseRecord, topic, text string) {
	rec.Responses = append(rec.Responses, casefile.QuestionAnswer{
		Topic:     topic,
		Question:  "q",
		Answer:    text,
		Timestamp: time.Now(),
	})
}

func findResult(t *testing.T, results []casefile.EligibilityResult, key string) casefile.EligibilityResult {
	t.Helper()
	for _, r := range results {
		if r.ProgramKey == key {
			return r
		}
	}
	t.Fatalf("no result for program %q", key)
	return casefile.EligibilityResult{}
}

func TestEvaluate_EligibleAllCriteriaMatched(t *testing.T) {
	eng := New(catalog.Default(), nil)
	rec := newTestRecord(t, 14, "Theft - Shoplifting")

	r := findResult(t, eng.Evaluate(rec), "youth_diversion")
	if r.Status != casefile.StatusEligible {
		t.Fatalf("status = %q, want eligible (barriers %v)", r.Status, r.Barriers)
	}
	if r.Confidence != ConfidenceEligible {
		t.Errorf("confidence = %v, want %v", r.Confidence, ConfidenceEligible)
	}
	if len(r.Barriers) != 0 {
		t.Errorf("barriers = %v, want none", r.Barriers)
	}
	if r.PolicyCitation != "County Diversion Policy Manual, Section 3.2" {
		t.Errorf("citation = %q", r.PolicyCitation)
	}
	for _, c := range r.CriteriaMatched {
		if !c.Matched {
			t.Errorf("criterion %q unmatched on an eligible result", c.Criterion)
		}
	}
}

func TestEvaluate_SingleBarrierIsConditional(t *testing.T) {
	eng := New(catalog.Default(), nil)
	rec := newTestRecord(t, 14, "Theft - Shoplifting")
	// Age and offense pass; the missing substance indicator is the only
	// barrier.
	r := eng.EvaluateProgram("substance_abuse_treatment", rec)
	if r.Status != casefile.StatusConditional {
		t.Fatalf("status = %q, want conditional (barriers %v)", r.Status, r.Barriers)
	}
	if r.Confidence != ConfidenceConditional {
		t.Errorf("confidence = %v, want %v", r.Confidence, ConfidenceConditional)
	}
	if len(r.Barriers) != 1 || r.Barriers[0] != "No substance use indicator identified" {
		t.Errorf("barriers = %v", r.Barriers)
	}
}

func TestEvaluate_IndicatorClearsBarrier(t *testing.T) {
	eng := New(catalog.Default(), nil)
	rec := newTestRecord(t, 14, "Theft - Shoplifting")
	answer(rec, "substance_use", "Admits to occasional marijuana use.")

	r := eng.EvaluateProgram("substance_abuse_treatment", rec)
	if r.Status != casefile.StatusEligible {
		t.Errorf("status = %q, want eligible (barriers %v)", r.Status, r.Barriers)
	}

	// Keyword matching is scoped to the indicator's own topic.
	rec2 := newTestRecord(t, 14, "Theft - Shoplifting")
	answer(rec2, "peer_relations", "Friends use marijuana.")
	r = eng.EvaluateProgram("substance_abuse_treatment", rec2)
	if r.Status != casefile.StatusConditional {
		t.Errorf("status = %q, want conditional when keyword is off-topic", r.Status)
	}
}

func TestEvaluate_TwoBarriersIsIneligible(t *testing.T) {
	eng := New(catalog.Default(), nil)
	// Age 9 fails the range and the substance indicator is absent.
	rec := newTestRecord(t, 9, "Theft - Shoplifting")

	r := eng.EvaluateProgram("substance_abuse_treatment", rec)
	if r.Status != casefile.StatusIneligible {
		t.Fatalf("status = %q, want ineligible (barriers %v)", r.Status, r.Barriers)
	}
	if r.Confidence != ConfidenceIneligible {
		t.Errorf("confidence = %v, want %v", r.Confidence, ConfidenceIneligible)
	}
	if len(r.Barriers) != 2 {
		t.Errorf("barriers = %v, want 2", r.Barriers)
	}
	if r.Barriers[0] != "Age 9 outside eligible range (12-17)" {
		t.Errorf("age barrier = %q", r.Barriers[0])
	}
}

func TestEvaluate_AgeAboveRangeBarsEveryProgram(t *testing.T) {
	cat := catalog.Default()
	eng := New(cat, nil)
	rec := newTestRecord(t, 19, "Theft - Shoplifting")

	results := eng.Evaluate(rec)
	for i, p := range cat.Programs() {
		r := results[i]
		if r.Status == casefile.StatusEligible {
			t.Errorf("%s: status = eligible at age 19", r.ProgramKey)
		}
		want := fmt.Sprintf("Age 19 outside eligible range (%d-%d)", p.Criteria.AgeMin, p.Criteria.AgeMax)
		found := false
		for _, b := range r.Barriers {
			if b == want {
				found = true
			}
		}
		if !found {
			t.Errorf("%s: barriers = %v, want %q", r.ProgramKey, r.Barriers, want)
		}
	}

	// Programs whose only failed criterion is age are conditional; a second
	// barrier tips the status to ineligible.
	if r := findResult(t, eng.Evaluate(rec), "youth_diversion"); r.Status != casefile.StatusConditional {
		t.Errorf("youth_diversion status = %q, want conditional", r.Status)
	}
	if r := findResult(t, eng.Evaluate(rec), "substance_abuse_treatment"); r.Status != casefile.StatusIneligible {
		t.Errorf("substance_abuse_treatment status = %q, want ineligible", r.Status)
	}
}

func TestEvaluate_ExcludedOffenseSubstring(t *testing.T) {
	eng := New(catalog.Default(), nil)
	rec := newTestRecord(t, 15, "Possession of Firearms on school grounds")

	r := eng.EvaluateProgram("youth_diversion", rec)
	if r.Status != casefile.StatusConditional {
		t.Fatalf("status = %q, want conditional with one barrier (barriers %v)", r.Status, r.Barriers)
	}
	want := `Offense type "possession of firearms on school grounds" is excluded from this program`
	if len(r.Barriers) != 1 || r.Barriers[0] != want {
		t.Errorf("barriers = %v, want [%s]", r.Barriers, want)
	}
}

func TestEvaluate_UnknownAgeIsBarrier(t *testing.T) {
	eng := New(catalog.Default(), nil)
	rec := newTestRecord(t, 14, "Theft - Shoplifting")
	rec.Subject.AgeKnown = false

	r := eng.EvaluateProgram("youth_diversion", rec)
	if r.Status == casefile.StatusEligible {
		t.Error("status = eligible with unknown age, want a barrier")
	}
	if len(r.Barriers) == 0 || r.Barriers[0] != "Age 0 outside eligible range (12-17)" {
		t.Errorf("barriers = %v", r.Barriers)
	}
}

func TestEvaluateProgram_UnknownKey(t *testing.T) {
	eng := New(catalog.Default(), nil)
	rec := newTestRecord(t, 14, "Theft - Shoplifting")

	r := eng.EvaluateProgram("boot_camp", rec)
	if r.Status != casefile.StatusIneligible {
		t.Errorf("status = %q, want ineligible", r.Status)
	}
	if r.ProgramName != "Unknown" || r.PolicyCitation != "N/A" || r.Confidence != 0 {
		t.Errorf("result = %+v, want the lookup-miss shape", r)
	}
	if len(r.Barriers) != 1 || r.Barriers[0] != "Program not found" {
		t.Errorf("barriers = %v", r.Barriers)
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	eng := New(catalog.Default(), nil)
	rec := newTestRecord(t, 14, "Theft - Shoplifting")
	answer(rec, "substance_use", "Admits to occasional marijuana use.")

	first := eng.Evaluate(rec)
	second := eng.Evaluate(rec)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("re-evaluation diverged:\nfirst  = %+v\nsecond = %+v", first, second)
	}
}

func TestEvaluate_CoversCatalogInOrder(t *testing.T) {
	cat := catalog.Default()
	eng := New(cat, nil)
	rec := newTestRecord(t, 14, "Theft - Shoplifting")

	results := eng.Evaluate(rec)
	programs := cat.Programs()
	if len(results) != len(programs) {
		t.Fatalf("len(results) = %d, want %d", len(results), len(programs))
	}
	for i, p := range programs {
		if results[i].ProgramKey != p.Key {
			t.Errorf("results[%d] = %q, want %q", i, results[i].ProgramKey, p.Key)
		}
	}
}
