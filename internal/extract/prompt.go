package extract

import (
	"fmt"

	"github.com/opencivics/civigraph/internal/model"
)

const extractionSystemPrompt = "You are a precise entity extraction assistant specializing in municipal government transcripts. Reply with a single JSON object and nothing else."

// buildExtractionPrompt constructs the entity-extraction prompt for one
// transcript summary.
func buildExtractionPrompt(transcript string, meta model.MeetingMeta) string {
	date := meta.Date
	if date == "" {
		date = "Unknown"
	}
	title := meta.Title
	if title == "" {
		title = "Unknown"
	}

	return fmt.Sprintf(`You will be given a summary of a city council meeting transcript.

MEETING INFO:
Date: %s
Title: %s

Extract the following entities from the summary:

1. Bills/Legislation: any ordinances, resolutions, or legislation
   - id (e.g., "25-O-1271"), title, type (ordinance, resolution)

2. Prediction for each bill:
   - prediction: APPROVED / REJECTED / UNCERTAIN
   - confidence: HIGH / MEDIUM / LOW
   - reasoning based on: explicit approval or rejection, voting patterns
     (unanimous, split, held), discussion sentiment, amendments or holds

3. People: council members, speakers, officials
   - name (full name), role (else "member"), organization (else "City Council")

4. Organizations: departments, companies, agencies
   - name (full official name), type (department, company, agency)

5. Projects (real estate / infrastructure):
   - name, type (residential, commercial, infrastructure), location, amount

6. Votes: explicit votes on bills
   - bill_id, person, vote (yes/no/held/abstain)

GUIDELINES:
- Bill IDs: normalize format (e.g., "25-O-1271" not "25-o-1271" or "Ordinance 25-O-1271")
- People: use full formal names consistently (e.g., "Howard Shook" not "Mr. Shook")
- Organizations: use full official names (e.g., "Department of Finance" not "DOF")
- Predictions:
  * bill explicitly approved/passed: APPROVED with HIGH confidence
  * bill held/tabled: UNCERTAIN with MEDIUM confidence
  * significant opposition mentioned: REJECTED or UNCERTAIN with LOW-MEDIUM confidence
  * look for phrases like "vote is closed", "motion passes", "hold", "substitute"

Reply with a JSON object of this shape:
{"bills": [{"id": "", "title": "", "type": "", "prediction": "", "confidence": "", "reasoning": ""}],
 "people": [{"name": "", "role": "", "organization": ""}],
 "organizations": [{"name": "", "type": ""}],
 "projects": [{"name": "", "type": "", "location": "", "amount": ""}],
 "votes": [{"bill_id": "", "person": "", "vote": ""}]}

TRANSCRIPT:
%s`, date, title, transcript)
}
