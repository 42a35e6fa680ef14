package domain

// Message is one stored user utterance. Messages are created on each chat
// turn and never updated or deleted.
type Message struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	UserID string `json:"user_id"`
}

// Match is a single nearest-neighbor hit. Lower distance means more similar.
type Match struct {
	Message
	Distance float64 `json:"distance"`
}

// SimilarityResult pairs another user with the closest distance any of their
// messages reached. Computed per request, never persisted.
type SimilarityResult struct {
	UserID   string  `json:"user_id"`
	Distance float64 `json:"distance"`
}

// Turn is one role-tagged message handed to the language model.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleSystem = "system"
	RoleUser   = "user"
)
