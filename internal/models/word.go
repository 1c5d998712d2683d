package models

// WordData is the secret word handed out for a round
type WordData struct {
	Word     string `json:"word"`
	Category string `json:"category"`
	Hint     string `json:"hint,omitempty"`
}
