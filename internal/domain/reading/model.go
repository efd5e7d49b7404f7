package reading

import "time"

// Reading is a single numeric sample stored in the readings collection
type Reading struct {
	DT    time.Time `json:"dt" bson:"dt" ch:"dt"`
	Value float64   `json:"value" bson:"value" ch:"value"`
}

// NewReading returns a reading at dt
func NewReading(dt time.Time, value float64) *Reading {
	return &Reading{DT: dt, Value: value}
}
