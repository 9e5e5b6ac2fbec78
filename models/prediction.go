package models

// Prediction is the normalized answer of the ML service for one student.
// Explanation is kept as a raw JSON blob exactly as the service returned
// it (after normalization), never re-interpreted here.
type Prediction struct {
	DropoutProbability float64 `json:"dropout_probability"`
	DeservingnessScore float64 `json:"deservingness_score"`
	RiskTier           string  `json:"risk_tier"`
	Explanation        string  `json:"explanation"`
}
