// Package risk computes a normalized risk score and level from interview
// responses using the weighted risk domain catalog.
//
// Each response maps through its topic to at most one risk domain; severity
// tiers are scanned high → moderate → low and the first keyword match wins,
// producing at most one risk factor per response. Protective factors are
// extracted independently against their own keyword table and are not
// domain-weighted. The raw score Σ(weight × severity) is normalized against
// the maximum attainable Σ(weight × 3) onto [0, 100] and bucketed with
// inclusive lower bounds: ≥70 very_high, ≥50 high, ≥30 moderate, else low.
package risk
