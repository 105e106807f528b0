package types

// WellnessScore is a transient value object, recomputed per request and
// never persisted.
type WellnessScore struct {
  Score           float64   `json:"score"`
  Recommendations []string  `json:"recommendations"`
}
