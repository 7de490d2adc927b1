package types

// Confidence is how far a predicted probability sits from the 0.5 coin flip.
type Confidence string

const (
	ConfidenceLow    Confidence = "LOW"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceHigh   Confidence = "HIGH"
)

// Prediction is the output of the success predictor for one
// profile/requirement pair. FeatureImportance holds each feature's weight
// magnitude normalized by the sum of magnitudes; it describes the fitted
// model only and carries no causal meaning.
type Prediction struct {
	ProfileID         string             `json:"profile_id"`
	RequirementID     string             `json:"requirement_id"`
	Probability       float64            `json:"probability"`
	Confidence        Confidence         `json:"confidence"`
	FeatureImportance map[string]float64 `json:"feature_importance,omitempty"`
}
