package model

type CreateRewardRequest struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	XPCost   uint64 `json:"xp_cost"`
	Status   string `json:"status"`
}

type CreateRewardResponse struct {
	Reward Reward `json:"reward"`
}

type UpdateRewardRequest struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	XPCost   uint64 `json:"xp_cost"`
	Status   string `json:"status"`
}

type UpdateRewardResponse struct {
	Reward Reward `json:"reward"`
}

type ApproveRewardRequest struct {
	ID string `json:"id"`
}

type ApproveRewardResponse struct {
	Reward Reward `json:"reward"`
}

type GetRewardsRequest struct {
	Status string `json:"status"`
}

type GetRewardsResponse struct {
	Rewards []Reward `json:"rewards"`
}

type RedeemRewardRequest struct {
	RewardID string `json:"reward_id"`
}

type RedeemRewardResponse struct {
	Redemption Redemption `json:"redemption"`
}

type GetMyRedemptionsRequest struct{}

type GetMyRedemptionsResponse struct {
	Redemptions []Redemption `json:"redemptions"`
}
