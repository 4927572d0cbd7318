package model

// PredictionStatus is the predicted legislative outcome for a bill
type PredictionStatus string

const (
	PredictionApproved  PredictionStatus = "APPROVED"
	PredictionRejected  PredictionStatus = "REJECTED"
	PredictionUncertain PredictionStatus = "UNCERTAIN"
)

// Valid reports whether the value is one of the closed set
func (p PredictionStatus) Valid() bool {
	switch p {
	case PredictionApproved, PredictionRejected, PredictionUncertain:
		return true
	}
	return false
}

// Confidence expresses how confident the extractor is in a prediction
type Confidence string

const (
	ConfidenceHigh   Confidence = "HIGH"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceLow    Confidence = "LOW"
)

// Valid reports whether the value is one of the closed set
func (c Confidence) Valid() bool {
	switch c {
	case ConfidenceHigh, ConfidenceMedium, ConfidenceLow:
		return true
	}
	return false
}

// VoteValue is a single recorded vote on a bill
type VoteValue string

const (
	VoteYes     VoteValue = "yes"
	VoteNo      VoteValue = "no"
	VoteAbstain VoteValue = "abstain"
	VoteHeld    VoteValue = "held"
)

// Valid reports whether the value is one of the closed set
func (v VoteValue) Valid() bool {
	switch v {
	case VoteYes, VoteNo, VoteAbstain, VoteHeld:
		return true
	}
	return false
}

// Bill represents a bill, ordinance, or resolution mentioned in a transcript
type Bill struct {
	ID         string           `json:"id"`                   // Identifier as extracted (e.g., "25-O-1271")
	Title      string           `json:"title"`                // Full title or description
	Type       string           `json:"type,omitempty"`       // ordinance, resolution, etc.
	Prediction PredictionStatus `json:"prediction"`           // Predicted outcome
	Confidence Confidence       `json:"confidence"`           // Confidence in prediction
	Reasoning  string           `json:"reasoning,omitempty"`  // Brief explanation for prediction
}

// Person represents a person mentioned in a transcript
type Person struct {
	Name         string `json:"name"`                   // Full name
	Role         string `json:"role,omitempty"`         // Role or title
	Organization string `json:"organization,omitempty"` // Affiliated organization
}

// Organization represents a department, company, or agency
type Organization struct {
	Name string `json:"name"`           // Name as extracted
	Type string `json:"type,omitempty"` // department, company, agency, etc.
}

// Project represents a real estate or infrastructure project
type Project struct {
	Name     string `json:"name"`               // Project name or description
	Type     string `json:"type,omitempty"`     // residential, commercial, infrastructure
	Location string `json:"location,omitempty"` // Address or location
	Amount   string `json:"amount,omitempty"`   // Budget or dollar value
}

// Vote represents one person's explicit vote on a bill
type Vote struct {
	BillID string    `json:"bill_id"` // Bill identifier being voted on
	Person string    `json:"person"`  // Name of person voting
	Vote   VoteValue `json:"vote"`
}
