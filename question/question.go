package question

// Question is one multiple-choice question used in a single game round.
// Answer always equals exactly one element of Choices. Immutable once built.
type Question struct {
	Prompt  string   `json:"question"`
	Choices []string `json:"choices"`
	Answer  string   `json:"answer"`
}
