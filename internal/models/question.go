package models

// Question is ephemeral: generated per player per turn and kept only as the
// player's last-issued question so the server can grade submissions itself.
type Question struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	Answer     int    `json:"answer"`
	Options    []int  `json:"options"`
	Operation  string `json:"operation"`
	Difficulty int    `json:"difficulty"`
	TimeLimit  int    `json:"timeLimit"`
}

const (
	OpAddition       = "addition"
	OpSubtraction    = "subtraction"
	OpMultiplication = "multiplication"
	OpDivision       = "division"
)

// Redacted strips the answer so a question can be sent to clients.
func (q Question) Redacted() Question {
	q.Answer = 0
	return q
}
