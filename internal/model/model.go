package model

import "time"

// AccessToken is the object embedded inside the signed token. It carries
// enough of the user to render the shell before the profile row arrives.
type AccessToken struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	XP        uint64    `json:"xp"`
	CreatedAt time.Time `json:"created_at"`
}

type Quest struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Category        string    `json:"category"`
	XPValue         uint64    `json:"xp_value"`
	Lat             float64   `json:"lat"`
	Lng             float64   `json:"lng"`
	LocationAddress string    `json:"location_address"`
	Status          string    `json:"status"`
	CreatedBy       string    `json:"created_by"`
	CreatedAt       time.Time `json:"created_at"`
}

type Reward struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	XPCost    uint64    `json:"xp_cost"`
	Status    string    `json:"status"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

type Submission struct {
	ID             string    `json:"id"`
	QuestID        string    `json:"quest_id"`
	TravelerID     string    `json:"traveler_id"`
	Status         string    `json:"status"`
	CompletionNote string    `json:"completion_note"`
	ProofPhotoURL  string    `json:"proof_photo_url"`
	SubmittedAt    time.Time `json:"submitted_at"`
	CreatedAt      time.Time `json:"created_at"`
}

type Redemption struct {
	ID             string    `json:"id"`
	TravelerID     string    `json:"traveler_id"`
	RewardID       string    `json:"reward_id"`
	RedemptionCode string    `json:"redemption_code"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}
