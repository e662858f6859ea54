package interview

import (
	"sort"
	"strings"
	"time"

	"casefold-hq/triage/pkg/casefile"
	"casefold-hq/triage/pkg/catalog"
)

// Question is the next question to ask, with the remaining questions for
// its topic.
type Question struct {
	Topic        string
	Question     string
	AllQuestions []string
}

// NextQuestion selects the next question from the uncovered topics: filter
// to topics present in the question registry, sort ascending by priority
// with registry order as the stable tie-break, pick the first, and return
// its first question not already asked on this record.
//
// A nil result means no uncovered topic is askable: either coverage is
// complete, or the remaining uncovered topics have no registry questions.
func NextQuestion(cat *catalog.Catalog, rec *casefile.CaseRecord) *Question {
	type candidate struct {
		topic    catalog.Topic
		priority int
		order    int
	}

	var candidates []candidate
	for _, key := range rec.UncoveredTopics {
		t, ok := cat.Topic(key)
		if !ok {
			continue
		}
		order := 0
		for i, rt := range cat.Topics() {
			if rt.Key == key {
				order = i
				break
			}
		}
		candidates = append(candidates, candidate{topic: t, priority: t.Priority, order: order})
	}
	if len(candidates) == 0 {
		return nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].priority != candidates[j].priority {
			return candidates[i].priority < candidates[j].priority
		}
		return candidates[i].order < candidates[j].order
	})

	next := candidates[0].topic
	if len(next.Questions) == 0 {
		return nil
	}

	asked := make(map[string]bool)
	for _, qa := range rec.Responses {
		if qa.Topic == next.Key {
			asked[qa.Question] = true
		}
	}
	question := next.Questions[0]
	for _, q := range next.Questions {
		if !asked[q] {
			question = q
			break
		}
	}

	return &Question{
		Topic:        next.Key,
		Question:     question,
		AllQuestions: next.Questions,
	}
}

// Unaskable returns the uncovered topics that have no questions in the
// registry and therefore can never be retired by questioning.
func Unaskable(cat *catalog.Catalog, rec *casefile.CaseRecord) []string {
	var out []string
	for _, key := range rec.UncoveredTopics {
		t, ok := cat.Topic(key)
		if !ok || len(t.Questions) == 0 {
			out = append(out, key)
		}
	}
	return out
}

// RecordResponse appends a question/answer exchange to the transcript and
// retires the topic from the uncovered set. Recording is idempotent with
// respect to coverage: a second answer for an already-covered topic still
// appends to the transcript but does not change the coverage sets.
func RecordResponse(rec *casefile.CaseRecord, topic, question, answer string, now time.Time) {
	rec.Responses = append(rec.Responses, casefile.QuestionAnswer{
		Topic:     topic,
		Question:  question,
		Answer:    answer,
		Timestamp: now,
	})
	rec.CoverTopic(topic)
}

// RiskIndicator flags an answer fragment that warrants follow-up during
// the interview.
type RiskIndicator struct {
	Severity casefile.Severity
	Keyword  string
	Topic    string
	Context  string
}

// ScanRiskIndicators scans an answer against the follow-up keyword table
// and returns every hit, high tier first.
func ScanRiskIndicators(cat *catalog.Catalog, topic, answer string) []RiskIndicator {
	lower := strings.ToLower(answer)
	context := answer
	if len(context) > 100 {
		context = context[:100]
	}

	var out []RiskIndicator
	for _, sev := range []casefile.Severity{casefile.SeverityHigh, casefile.SeverityModerate} {
		for _, kw := range cat.FollowUpKeywords(sev) {
			if strings.Contains(lower, kw) {
				out = append(out, RiskIndicator{
					Severity: sev,
					Keyword:  kw,
					Topic:    topic,
					Context:  context,
				})
			}
		}
	}
	return out
}

// ChooseReopenTopic picks the topic to re-open when a reviewer requests
// more questioning but every topic is already covered. If the reviewer
// notes name a registry topic key, that topic is chosen; otherwise the
// highest-priority registry topic is. Returns false if the record has no
// covered askable topic.
func ChooseReopenTopic(cat *catalog.Catalog, rec *casefile.CaseRecord, notes string) (string, bool) {
	lower := strings.ToLower(notes)
	for _, t := range cat.Topics() {
		if strings.Contains(lower, t.Key) && rec.IsCovered(t.Key) {
			return t.Key, true
		}
	}

	best := ""
	bestPriority := 0
	for _, t := range cat.Topics() {
		if !rec.IsCovered(t.Key) {
			continue
		}
		if best == "" || t.Priority < bestPriority {
			best = t.Key
			bestPriority = t.Priority
		}
	}
	return best, best != ""
}
