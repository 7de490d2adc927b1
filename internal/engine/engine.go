// Package engine orchestrates the decision pipeline over one snapshot:
// credibility scoring, risk assessment, matching, allocation, prediction,
// tuning and reporting share this single entry point.
package engine

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/placement-intel/internal/allocation"
	"github.com/jonathan/placement-intel/internal/analytics"
	"github.com/jonathan/placement-intel/internal/credibility"
	"github.com/jonathan/placement-intel/internal/explanation"
	"github.com/jonathan/placement-intel/internal/feedback"
	"github.com/jonathan/placement-intel/internal/matching"
	"github.com/jonathan/placement-intel/internal/prediction"
	"github.com/jonathan/placement-intel/internal/risk"
	"github.com/jonathan/placement-intel/internal/snapshot"
	"github.com/jonathan/placement-intel/internal/types"
)

// maxConcurrentMatches bounds the batch-matching fan-out. Matching is pure
// CPU work, so unbounded goroutine counts buy nothing on large snapshots.
const maxConcurrentMatches = 8

// NotFoundError reports a profile or requirement ID absent from the snapshot.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found in snapshot", e.Entity, e.ID)
}

// Engine evaluates candidates against requirements over an immutable
// snapshot. It is safe for concurrent use; all mutable state is the
// predictor cache behind its mutex.
type Engine struct {
	snap   *snapshot.Snapshot
	cohort *types.Cohort

	mu         sync.Mutex
	predictors map[string]predictorEntry
}

type predictorEntry struct {
	predictor *prediction.Predictor
	err       error
}

// New builds an engine over a loaded snapshot.
func New(snap *snapshot.Snapshot) *Engine {
	return &Engine{
		snap:       snap,
		cohort:     snap.Cohort(),
		predictors: make(map[string]predictorEntry),
	}
}

// Score runs the full decision pipeline for one profile/requirement pair.
func (e *Engine) Score(profileID, requirementID string) (*types.Decision, error) {
	profile := e.snap.Profile(profileID)
	if profile == nil {
		return nil, &NotFoundError{Entity: "profile", ID: profileID}
	}
	policy := e.snap.Requirement(requirementID)
	if policy == nil {
		return nil, &NotFoundError{Entity: "requirement", ID: requirementID}
	}
	return matching.Match(profile, policy, e.cohort), nil
}

// ScoreAll matches every profile in the snapshot against one requirement in
// parallel. The result order matches the snapshot's profile order regardless
// of scheduling.
func (e *Engine) ScoreAll(ctx context.Context, requirementID string) ([]types.Decision, error) {
	policy := e.snap.Requirement(requirementID)
	if policy == nil {
		return nil, &NotFoundError{Entity: "requirement", ID: requirementID}
	}

	decisions := make([]types.Decision, len(e.snap.Profiles))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentMatches)
	for i, profile := range e.snap.Profiles {
		i, profile := i, profile
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			decisions[i] = *matching.Match(profile, policy, e.cohort)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to score candidates for %s: %w", requirementID, err)
	}
	return decisions, nil
}

// Allocate scores every candidate against the requirement and partitions
// them into the requirement's capacity.
func (e *Engine) Allocate(ctx context.Context, requirementID string) (*types.AllocationResult, error) {
	policy := e.snap.Requirement(requirementID)
	if policy == nil {
		return nil, &NotFoundError{Entity: "requirement", ID: requirementID}
	}
	decisions, err := e.ScoreAll(ctx, requirementID)
	if err != nil {
		return nil, err
	}
	return allocation.Allocate(requirementID, decisions, policy.Capacity), nil
}

// Predict estimates the selection probability for one pair using a model
// trained on the requirement's history. With too little history the
// returned prediction is neutral and the error is a
// *validation.InsufficientDataError; callers may treat that as advisory.
func (e *Engine) Predict(profileID, requirementID string) (*types.Prediction, error) {
	profile := e.snap.Profile(profileID)
	if profile == nil {
		return nil, &NotFoundError{Entity: "profile", ID: profileID}
	}
	policy := e.snap.Requirement(requirementID)
	if policy == nil {
		return nil, &NotFoundError{Entity: "requirement", ID: requirementID}
	}

	predictor, trainErr := e.predictorFor(policy)
	cred := credibility.Score(profile)
	riskResult := risk.Assess(profile, policy, e.cohort, cred)
	return predictor.Predict(profile, policy, cred, riskResult), trainErr
}

// predictorFor trains (once) and caches the per-requirement model. Training
// is deterministic, so caching only saves work, never changes answers.
func (e *Engine) predictorFor(policy *types.RequirementPolicy) (*prediction.Predictor, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if entry, ok := e.predictors[policy.ID]; ok {
		return entry.predictor, entry.err
	}
	predictor, err := prediction.Train(policy, e.cohort)
	e.predictors[policy.ID] = predictorEntry{predictor: predictor, err: err}
	return predictor, err
}

// Tune proposes a policy adjustment for one requirement from its history.
// The snapshot itself is never modified; persisting the returned policy is
// the caller's call.
func (e *Engine) Tune(requirementID string) (*types.TuneResult, error) {
	policy := e.snap.Requirement(requirementID)
	if policy == nil {
		return nil, &NotFoundError{Entity: "requirement", ID: requirementID}
	}
	return feedback.Tune(policy, e.cohort), nil
}

// Explain scores one pair and renders the decision for the audience.
func (e *Engine) Explain(profileID, requirementID string, audience explanation.Audience) (string, error) {
	decision, err := e.Score(profileID, requirementID)
	if err != nil {
		return "", err
	}
	return explanation.Explain(decision, audience), nil
}

// Summary scores every candidate against the requirement and aggregates the
// batch into distribution figures.
func (e *Engine) Summary(ctx context.Context, requirementID string) (*analytics.MatchSummary, error) {
	decisions, err := e.ScoreAll(ctx, requirementID)
	if err != nil {
		return nil, err
	}
	return analytics.Summarize(decisions), nil
}

// Audit runs the fairness audit over the snapshot's outcome history.
func (e *Engine) Audit() *analytics.AuditReport {
	return analytics.Audit(e.cohort)
}
