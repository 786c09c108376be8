package model

// WeightRecord is one point of the historical weight trend. The chart
// widget consumes the plain ordered sequence as-is.
type WeightRecord struct {
	Day      string  `json:"day"`
	WeightKG float64 `json:"weight"`
}
