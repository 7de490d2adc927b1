package analytics

import (
	"fmt"
	"sort"

	"github.com/jonathan/placement-intel/internal/credibility"
	"github.com/jonathan/placement-intel/internal/types"
)

// GPA and communication bucket labels used in audit breakdowns.
const (
	gpaBucketLow    = "low (5.0-6.5)"
	gpaBucketMedium = "medium (6.5-7.5)"
	gpaBucketHigh   = "high (7.5-8.5)"
	gpaBucketStar   = "star (8.5+)"

	commBandLow    = "low (1-4)"
	commBandMedium = "medium (5-7)"
	commBandHigh   = "high (8-10)"
)

// Fairness score composition: a neutral base adjusted by whether skill
// evidence and credibility pay off, and penalized by branch-rate variance.
const (
	fairnessBase           = 70.0
	skillAdvantageBonus    = 10.0
	credibilityBonus       = 5.0
	branchVariancePenalty  = 0.5
	branchVarianceBiasFlag = 100.0
)

// RateBucket is one cohort slice with its selection rate in percent.
type RateBucket struct {
	Count    int     `json:"count"`
	Selected int     `json:"selected"`
	Rate     float64 `json:"rate"`
}

// CohortRate describes a named cross-cutting cohort (skill-heavy,
// gpa-heavy) and its selection rate.
type CohortRate struct {
	Description string  `json:"description"`
	Count       int     `json:"count"`
	Rate        float64 `json:"rate"`
}

// AuditReport is a fairness audit over outcome history: selection-rate
// breakdowns per dimension, a skill-versus-GPA cohort comparison, and an
// overall fairness score with recommendations.
type AuditReport struct {
	GPABuckets         map[string]RateBucket      `json:"gpa_buckets"`
	CredibilityLevels  map[types.Level]RateBucket `json:"credibility_levels"`
	Branches           map[string]RateBucket      `json:"branches"`
	CommunicationBands map[string]RateBucket      `json:"communication_bands"`
	SkillHeavy         CohortRate                 `json:"skill_heavy"`
	GPAHeavy           CohortRate                 `json:"gpa_heavy"`
	FairnessScore      float64                    `json:"fairness_score"`
	Recommendations    []string                   `json:"recommendations"`
}

type tally struct {
	total    int
	selected int
}

func (t *tally) add(selected bool) {
	t.total++
	if selected {
		t.selected++
	}
}

func (t tally) rate() float64 {
	if t.total == 0 {
		return 0
	}
	return float64(t.selected) / float64(t.total) * 100
}

func (t tally) bucket() RateBucket {
	return RateBucket{Count: t.total, Selected: t.selected, Rate: t.rate()}
}

// Audit breaks the cohort's outcome history down by GPA, credibility,
// branch and communication, compares skill-heavy against GPA-heavy
// candidates, and scores overall fairness. Records whose profile is missing
// from the cohort index are skipped.
func Audit(cohort *types.Cohort) *AuditReport {
	gpaBuckets := map[string]*tally{
		gpaBucketLow: {}, gpaBucketMedium: {}, gpaBucketHigh: {}, gpaBucketStar: {},
	}
	credLevels := map[types.Level]*tally{
		types.LevelLow: {}, types.LevelMedium: {}, types.LevelHigh: {},
	}
	branches := make(map[string]*tally)
	commBands := map[string]*tally{
		commBandLow: {}, commBandMedium: {}, commBandHigh: {},
	}
	var skillHeavy, gpaHeavy tally

	for _, record := range cohort.Records {
		profile := cohort.ProfileFor(record)
		if profile == nil {
			continue
		}
		cred := credibility.Score(profile)
		selected := record.Result == types.OutcomeSelected

		gpaBuckets[gpaBucket(profile.GPA)].add(selected)
		credLevels[cred.Level].add(selected)
		commBands[commBand(profile.CommunicationScore)].add(selected)

		if branches[profile.Branch] == nil {
			branches[profile.Branch] = &tally{}
		}
		branches[profile.Branch].add(selected)

		// Skill-heavy: strong evidence without a star GPA. GPA-heavy: star
		// GPA without strong evidence. Disjoint by construction.
		switch {
		case cred.Level == types.LevelHigh && profile.GPA >= 6.5 && profile.GPA < 8.0:
			skillHeavy.add(selected)
		case profile.GPA >= 8.0 && cred.Level != types.LevelHigh:
			gpaHeavy.add(selected)
		}
	}

	report := &AuditReport{
		GPABuckets:         bucketize(gpaBuckets),
		CredibilityLevels:  bucketize(credLevels),
		Branches:           bucketize(branches),
		CommunicationBands: bucketize(commBands),
		SkillHeavy: CohortRate{
			Description: "HIGH credibility with medium GPA (6.5-8.0)",
			Count:       skillHeavy.total,
			Rate:        skillHeavy.rate(),
		},
		GPAHeavy: CohortRate{
			Description: "high GPA (8.0+) with LOW/MEDIUM credibility",
			Count:       gpaHeavy.total,
			Rate:        gpaHeavy.rate(),
		},
	}

	branchVariance := rateVariance(report.Branches)
	skillAdvantage := report.SkillHeavy.Rate - report.GPAHeavy.Rate
	credPaysOff := report.CredibilityLevels[types.LevelHigh].Rate > report.CredibilityLevels[types.LevelLow].Rate

	score := fairnessBase - branchVariance*branchVariancePenalty
	if skillAdvantage > 0 {
		score += skillAdvantageBonus
	} else {
		score -= skillAdvantageBonus
	}
	if credPaysOff {
		score += credibilityBonus
	} else {
		score -= credibilityBonus
	}
	report.FairnessScore = clamp(score, 0, 100)

	report.Recommendations = recommendations(report, branchVariance, skillAdvantage, credPaysOff)
	return report
}

func recommendations(report *AuditReport, branchVariance, skillAdvantage float64, credPaysOff bool) []string {
	var recs []string
	if skillAdvantage < 0 {
		recs = append(recs, "GPA appears overweighted relative to demonstrated skill. Consider raising skill weight in requirement policies.")
	}
	if branchVariance > branchVarianceBiasFlag {
		if branch, bucket, ok := lowestBranch(report.Branches); ok {
			recs = append(recs, fmt.Sprintf("Branch bias detected: %s has a markedly lower selection rate (%.1f%%). Review for fairness.", branch, bucket.Rate))
		}
	}
	if !credPaysOff {
		recs = append(recs, "LOW credibility candidates outperform HIGH credibility ones. Skill validation may not be working.")
	}
	high := report.CommunicationBands[commBandHigh]
	low := report.CommunicationBands[commBandLow]
	if high.Rate > 2*low.Rate && low.Count > 0 {
		recs = append(recs, "Communication score strongly drives selection. Check that this matches the role requirements.")
	}
	if len(recs) == 0 {
		recs = append(recs, "No significant bias detected across the audited dimensions.")
	}
	return recs
}

func gpaBucket(gpa float64) string {
	switch {
	case gpa >= 8.5:
		return gpaBucketStar
	case gpa >= 7.5:
		return gpaBucketHigh
	case gpa >= 6.5:
		return gpaBucketMedium
	default:
		return gpaBucketLow
	}
}

func commBand(score int) string {
	switch {
	case score >= 8:
		return commBandHigh
	case score >= 5:
		return commBandMedium
	default:
		return commBandLow
	}
}

func bucketize[K comparable](tallies map[K]*tally) map[K]RateBucket {
	out := make(map[K]RateBucket, len(tallies))
	for k, t := range tallies {
		out[k] = t.bucket()
	}
	return out
}

// rateVariance is the population variance of selection rates across
// non-empty buckets. Empty buckets would drag the mean toward zero and
// fabricate bias, so they are excluded.
func rateVariance[K comparable](buckets map[K]RateBucket) float64 {
	var rates []float64
	for _, b := range buckets {
		if b.Count > 0 {
			rates = append(rates, b.Rate)
		}
	}
	if len(rates) == 0 {
		return 0
	}
	mean := 0.0
	for _, r := range rates {
		mean += r
	}
	mean /= float64(len(rates))
	variance := 0.0
	for _, r := range rates {
		variance += (r - mean) * (r - mean)
	}
	return variance / float64(len(rates))
}

func lowestBranch(branches map[string]RateBucket) (string, RateBucket, bool) {
	names := make([]string, 0, len(branches))
	for name, bucket := range branches {
		if bucket.Count > 0 {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "", RateBucket{}, false
	}
	sort.Strings(names)
	lowest := names[0]
	for _, name := range names[1:] {
		if branches[name].Rate < branches[lowest].Rate {
			lowest = name
		}
	}
	return lowest, branches[lowest], true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
