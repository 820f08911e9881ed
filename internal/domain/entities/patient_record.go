package entities

import "time"

// PatientRecord is one stored prediction outcome for a patient, owned by a
// doctor. The (DoctorID, Name, Disease, Age) tuple is the record's identity
// key: at most one record exists per key, and a new prediction for an
// existing key overwrites Features/Score/Tier in place. A different age is a
// different identity, even for the same name and disease.
type PatientRecord struct {
	ID        string        `json:"id" db:"id"`
	DoctorID  string        `json:"doctor_id" db:"doctor_id"`
	Name      string        `json:"name" db:"name"`
	Disease   Disease       `json:"disease" db:"disease"`
	Age       *int          `json:"age" db:"age"`
	Features  FeatureVector `json:"features" db:"features"`
	Score     float64       `json:"score" db:"score"`
	Tier      RiskTier      `json:"risk_tier" db:"risk_tier"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" db:"updated_at"`
}
