package domain

import (
	"github.com/Aqeel98/sidequest-travel-app-sub000/internal/entity"
	"github.com/Aqeel98/sidequest-travel-app-sub000/internal/model"
)

func ConvertUser(u *entity.User) model.User {
	return model.User{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		XP:        u.XP,
		CreatedAt: u.CreatedAt,
	}
}

func ConvertQuest(q *entity.Quest) model.Quest {
	return model.Quest{
		ID:              q.ID,
		Title:           q.Title,
		Category:        q.Category,
		XPValue:         q.XPValue,
		Lat:             q.Lat,
		Lng:             q.Lng,
		LocationAddress: q.LocationAddress,
		Status:          string(q.Status),
		CreatedBy:       q.CreatedBy,
		CreatedAt:       q.CreatedAt,
	}
}

func ConvertReward(r *entity.Reward) model.Reward {
	return model.Reward{
		ID:        r.ID,
		Title:     r.Title,
		Category:  r.Category,
		XPCost:    r.XPCost,
		Status:    string(r.Status),
		CreatedBy: r.CreatedBy,
		CreatedAt: r.CreatedAt,
	}
}

func ConvertSubmission(s *entity.Submission) model.Submission {
	return model.Submission{
		ID:             s.ID,
		QuestID:        s.QuestID,
		TravelerID:     s.TravelerID,
		Status:         string(s.Status),
		CompletionNote: s.CompletionNote,
		ProofPhotoURL:  s.ProofPhotoURL,
		SubmittedAt:    s.SubmittedAt,
		CreatedAt:      s.CreatedAt,
	}
}

func ConvertRedemption(r *entity.Redemption) model.Redemption {
	return model.Redemption{
		ID:             r.ID,
		TravelerID:     r.TravelerID,
		RewardID:       r.RewardID,
		RedemptionCode: r.RedemptionCode,
		Status:         string(r.Status),
		CreatedAt:      r.CreatedAt,
	}
}
