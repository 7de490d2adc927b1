package prediction

import (
	"math"

	"github.com/jonathan/placement-intel/internal/types"
	"github.com/jonathan/placement-intel/internal/validation"
)

// Training hyperparameters. Weights initialize to zero, so retraining on
// identical data is deterministic with no seed.
const (
	learningRate = 0.1
	maxEpochs    = 200

	// Early stopping: training halts once the epoch loss improves by less
	// than lossImprovementFloor for patienceEpochs consecutive epochs.
	lossImprovementFloor = 1e-6
	patienceEpochs       = 5

	// MinTrainingExamples is the smallest per-requirement training set the
	// trainer accepts. Below it the model would only memorize noise, so
	// prediction degrades to a neutral answer instead.
	MinTrainingExamples = 5
)

// Confidence bands measured as distance from the 0.5 coin flip.
const (
	highConfidenceDistance   = 0.25
	mediumConfidenceDistance = 0.10
)

// Predictor is a binary logistic-regression model for one requirement.
// A zero-valued Predictor is untrained and predicts neutrally.
type Predictor struct {
	weights [featureCount]float64
	bias    float64
	trained bool
	epochs  int
}

// Train fits a predictor for one requirement over the historical cohort by
// batch gradient descent on the cross-entropy loss. When the requirement
// has fewer than MinTrainingExamples usable records it returns an untrained
// predictor alongside a *validation.InsufficientDataError; the untrained
// predictor still answers, neutrally.
func Train(policy *types.RequirementPolicy, cohort *types.Cohort) (*Predictor, error) {
	set := trainingSet(policy, cohort)
	p := &Predictor{}
	if len(set) < MinTrainingExamples {
		return p, &validation.InsufficientDataError{
			RequirementID: policy.ID,
			Have:          len(set),
			Need:          MinTrainingExamples,
		}
	}

	n := float64(len(set))
	prevLoss := math.Inf(1)
	stalled := 0

	for epoch := 0; epoch < maxEpochs; epoch++ {
		var gradW [featureCount]float64
		gradB := 0.0
		loss := 0.0

		for _, ex := range set {
			pred := p.forward(ex.features)
			loss += crossEntropy(pred, ex.label)

			err := pred - ex.label
			for i := 0; i < featureCount; i++ {
				gradW[i] += err * ex.features[i]
			}
			gradB += err
		}

		for i := 0; i < featureCount; i++ {
			p.weights[i] -= learningRate * gradW[i] / n
		}
		p.bias -= learningRate * gradB / n

		loss /= n
		if prevLoss-loss < lossImprovementFloor {
			stalled++
			if stalled >= patienceEpochs {
				p.epochs = epoch + 1
				break
			}
		} else {
			stalled = 0
		}
		prevLoss = loss
		p.epochs = epoch + 1
	}

	p.trained = true
	return p, nil
}

// Predict scores one profile/requirement pair. The probability is always in
// [0,1]; an untrained predictor answers 0.5 with LOW confidence.
func (p *Predictor) Predict(profile *types.Profile, policy *types.RequirementPolicy, cred *types.CredibilityResult, riskResult *types.RiskResult) *types.Prediction {
	out := &types.Prediction{
		ProfileID:     profile.ID,
		RequirementID: policy.ID,
		Probability:   0.5,
		Confidence:    types.ConfidenceLow,
	}
	if !p.trained {
		return out
	}

	out.Probability = p.forward(featureVector(profile, policy, cred, riskResult))
	out.Confidence = confidence(out.Probability)
	out.FeatureImportance = p.FeatureImportance()
	return out
}

// FeatureImportance reports each weight's magnitude normalized by the sum
// of magnitudes. It describes the fitted model, not causal effect. Returns
// nil for an untrained or all-zero model.
func (p *Predictor) FeatureImportance() map[string]float64 {
	total := 0.0
	for _, w := range p.weights {
		total += math.Abs(w)
	}
	if total == 0 {
		return nil
	}
	importance := make(map[string]float64, featureCount)
	for i, name := range featureNames {
		importance[name] = math.Abs(p.weights[i]) / total
	}
	return importance
}

// Trained reports whether the predictor was fit on real data.
func (p *Predictor) Trained() bool { return p.trained }

// Epochs returns how many epochs the last training run took before
// converging or hitting the epoch cap.
func (p *Predictor) Epochs() int { return p.epochs }

func (p *Predictor) forward(features [featureCount]float64) float64 {
	z := p.bias
	for i := 0; i < featureCount; i++ {
		z += p.weights[i] * features[i]
	}
	return sigmoid(z)
}

func sigmoid(z float64) float64 {
	// Clamp the logit so exp cannot overflow.
	if z > 500 {
		z = 500
	} else if z < -500 {
		z = -500
	}
	return 1.0 / (1.0 + math.Exp(-z))
}

func crossEntropy(pred, label float64) float64 {
	const epsilon = 1e-7
	return -(label*math.Log(pred+epsilon) + (1-label)*math.Log(1-pred+epsilon))
}

func confidence(probability float64) types.Confidence {
	distance := math.Abs(probability - 0.5)
	switch {
	case distance >= highConfidenceDistance:
		return types.ConfidenceHigh
	case distance >= mediumConfidenceDistance:
		return types.ConfidenceMedium
	default:
		return types.ConfidenceLow
	}
}
