package triage

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/spec-kit/triage-service/internal/domain"
)

// signal is a weighted description pattern pointing at a root cause. Weight
// expresses how specific the pattern is: exact error signatures score high,
// generic complaint wording scores low.
type signal struct {
	cause   domain.RootCause
	pattern string
	weight  float64
	note    string
}

var signals = []signal{
	// Known error signatures.
	{domain.RootCauseConfigurationIssue, "502", 0.95, "known gateway error code 502"},
	{domain.RootCauseConfigurationIssue, "503", 0.90, "known gateway error code 503"},
	{domain.RootCauseConfigurationIssue, "cors", 0.80, "cross-origin policy failure"},
	{domain.RootCauseConfigurationIssue, "misconfigur", 0.80, "explicit misconfiguration report"},
	{domain.RootCauseConfigurationIssue, "ssl certificate", 0.85, "certificate problem"},
	{domain.RootCauseConfigurationIssue, "dns", 0.70, "name resolution problem"},
	{domain.RootCauseConfigurationIssue, "webhook", 0.60, "webhook delivery problem"},
	{domain.RootCauseConfigurationIssue, "timeout", 0.50, "request timeout"},
	{domain.RootCauseConfigurationIssue, "config", 0.55, "configuration wording"},

	{domain.RootCausePlatformBug, "stack trace", 0.90, "stack trace reported"},
	{domain.RootCausePlatformBug, "internal server error", 0.85, "internal server error"},
	{domain.RootCausePlatformBug, "outage", 0.80, "platform outage wording"},
	{domain.RootCausePlatformBug, "site down", 0.75, "site availability failure"},
	{domain.RootCausePlatformBug, "crash", 0.75, "crash report"},
	{domain.RootCausePlatformBug, "glitch", 0.60, "suspected defect"},
	{domain.RootCausePlatformBug, "bug", 0.60, "suspected defect"},
	{domain.RootCausePlatformBug, "broken", 0.45, "generic breakage complaint"},

	{domain.RootCauseUserError, "forgot password", 0.80, "credential reset request"},
	{domain.RootCauseUserError, "how do i", 0.70, "usage question"},
	{domain.RootCauseUserError, "accidentally", 0.70, "self-reported mistake"},
	{domain.RootCauseUserError, "by mistake", 0.70, "self-reported mistake"},
	{domain.RootCauseUserError, "how to", 0.55, "usage question"},
	{domain.RootCauseUserError, "wrong", 0.40, "generic user-side error wording"},

	{domain.RootCauseMerchantSetup, "store setup", 0.85, "incomplete store setup"},
	{domain.RootCauseMerchantSetup, "onboarding", 0.80, "onboarding problem"},
	{domain.RootCauseMerchantSetup, "account setup", 0.80, "incomplete account setup"},
	{domain.RootCauseMerchantSetup, "api key", 0.70, "credential provisioning"},
	{domain.RootCauseMerchantSetup, "payment provider", 0.70, "payment provider linkage"},
	{domain.RootCauseMerchantSetup, "integration", 0.55, "third-party integration"},
}

const (
	maxConfidence      = 0.95
	noMatchConfidence  = 0.30
	tiePenalty         = 0.20
	extraMatchBonus    = 0.05
	tieEpsilon         = 1e-9
	tieCeiling         = 0.50
	tieFloorConfidence = 0.20
)

// Reasoner classifies a ticket's probable root cause from its description.
// Reason is a pure function: it never mutates the ticket and always returns
// a fully populated Analysis, falling back to an unknown cause with low
// confidence when no signal matches.
type Reasoner struct{}

// NewReasoner constructs the reasoner.
func NewReasoner() *Reasoner {
	return &Reasoner{}
}

type causeScore struct {
	cause      domain.RootCause
	confidence float64
	notes      []string
}

// Reason analyzes the ticket description against the signal table.
func (r *Reasoner) Reason(ticket domain.Ticket) domain.Analysis {
	desc := strings.ToLower(ticket.Description)

	matched := map[domain.RootCause]*causeScore{}
	for _, sig := range signals {
		if !strings.Contains(desc, sig.pattern) {
			continue
		}
		score, ok := matched[sig.cause]
		if !ok {
			score = &causeScore{cause: sig.cause}
			matched[sig.cause] = score
		}
		if sig.weight > score.confidence {
			score.confidence = sig.weight
		}
		score.notes = append(score.notes, sig.note)
	}

	if len(matched) == 0 {
		return domain.Analysis{
			RootCause:  domain.RootCauseUnknown,
			Confidence: noMatchConfidence,
			Reasoning:  fmt.Sprintf("no known failure signature matched the %s severity description; classification deferred to a human", ticket.Severity),
		}
	}

	scores := make([]causeScore, 0, len(matched))
	for _, score := range matched {
		// Additional distinct signals for the same cause strengthen the match.
		score.confidence = math.Min(score.confidence+extraMatchBonus*float64(len(score.notes)-1), maxConfidence)
		scores = append(scores, *score)
	}
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].confidence != scores[j].confidence {
			return scores[i].confidence > scores[j].confidence
		}
		return scores[i].cause < scores[j].cause
	})

	best := scores[0]
	if len(scores) > 1 && math.Abs(best.confidence-scores[1].confidence) < tieEpsilon {
		// Equally strong competing causes: an arbitrary pick would be
		// overconfident, so classify as unknown at reduced confidence.
		confidence := math.Max(math.Min(best.confidence-tiePenalty, tieCeiling), tieFloorConfidence)
		return domain.Analysis{
			RootCause:  domain.RootCauseUnknown,
			Confidence: confidence,
			Reasoning:  fmt.Sprintf("signals for %s and %s are equally strong; classification deferred rather than picked arbitrarily", best.cause, scores[1].cause),
		}
	}

	return domain.Analysis{
		RootCause:  best.cause,
		Confidence: best.confidence,
		Reasoning:  fmt.Sprintf("description matches %s signals: %s", best.cause, strings.Join(best.notes, "; ")),
	}
}
