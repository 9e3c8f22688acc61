package model

type CreateQuestRequest struct {
	Title           string  `json:"title"`
	Category        string  `json:"category"`
	XPValue         uint64  `json:"xp_value"`
	Lat             float64 `json:"lat"`
	Lng             float64 `json:"lng"`
	LocationAddress string  `json:"location_address"`
	Status          string  `json:"status"`
}

type CreateQuestResponse struct {
	Quest Quest `json:"quest"`
}

type UpdateQuestRequest struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	Category        string  `json:"category"`
	XPValue         uint64  `json:"xp_value"`
	Lat             float64 `json:"lat"`
	Lng             float64 `json:"lng"`
	LocationAddress string  `json:"location_address"`
	Status          string  `json:"status"`
}

type UpdateQuestResponse struct {
	Quest Quest `json:"quest"`
}

type ApproveQuestRequest struct {
	ID string `json:"id"`
}

type ApproveQuestResponse struct {
	Quest Quest `json:"quest"`
}

type GetQuestsRequest struct {
	Status string `json:"status"`
}

type GetQuestsResponse struct {
	Quests []Quest `json:"quests"`
}
