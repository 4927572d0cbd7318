package model

// MeetingMeta describes the source meeting for an extraction record
type MeetingMeta struct {
	Date  string `json:"date,omitempty"`  // Meeting date as listed in metadata
	Title string `json:"title,omitempty"` // Meeting title
	URL   string `json:"url,omitempty"`   // Public link to the meeting record
}

// TranscriptExtraction is the complete extraction from a single transcript.
// One of these is written per transcript into the extractions directory and
// later consumed by aggregation and graph assembly.
type TranscriptExtraction struct {
	Bills         []Bill         `json:"bills"`
	People        []Person       `json:"people"`
	Organizations []Organization `json:"organizations"`
	Projects      []Project      `json:"projects"`
	Votes         []Vote         `json:"votes"`

	SourceFile string      `json:"source_file,omitempty"` // Transcript file this came from
	Metadata   MeetingMeta `json:"metadata"`
}

// Sanitize coerces out-of-range enum values to their conservative defaults.
// Extraction output crosses an LLM boundary, so enums are validated here
// rather than trusted.
func (e *TranscriptExtraction) Sanitize() {
	for i := range e.Bills {
		if !e.Bills[i].Prediction.Valid() {
			e.Bills[i].Prediction = PredictionUncertain
		}
		if !e.Bills[i].Confidence.Valid() {
			e.Bills[i].Confidence = ConfidenceLow
		}
	}
	votes := e.Votes[:0]
	for _, v := range e.Votes {
		if v.Vote.Valid() && v.BillID != "" && v.Person != "" {
			votes = append(votes, v)
		}
	}
	e.Votes = votes
}
