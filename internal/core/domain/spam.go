package domain

import "time"

// SpamVerdict is the outcome of scoring a public form submission.
type SpamVerdict string

const (
	VerdictAllow  SpamVerdict = "ALLOW"
	VerdictReview SpamVerdict = "REVIEW"
	VerdictBlock  SpamVerdict = "BLOCK"
)

// Submission is the raw material the spam scorer evaluates.
type Submission struct {
	IP             string
	Email          string
	Content        string
	FormRenderedAt time.Time
	SubmittedAt    time.Time
}

// SpamAssessment is the weighted scoring result for one submission.
type SpamAssessment struct {
	Score   int         `json:"score"`
	Verdict SpamVerdict `json:"verdict"`
	Reasons []string    `json:"reasons"`
}

// SpamSignal is the persisted record of a scored submission, used to build
// IP reputation for future submissions.
type SpamSignal struct {
	SignalID  string      `json:"signalID"` // Primary key (UUID)
	IP        string      `json:"ip"`
	Email     string      `json:"email"`
	Score     int         `json:"score"`
	Verdict   SpamVerdict `json:"verdict"`
	CreatedAt time.Time   `json:"createdAt"`
}
