package testutil

import (
	"github.com/Aqeel98/sidequest-travel-app-sub000/internal/entity"
	"github.com/google/uuid"
)

func SampleUser(overwrite entity.User) entity.User {
	id := uuid.NewString()
	return overwriteFields(entity.User{
		Base:  entity.Base{ID: id},
		Email: id + "@example.com",
		Name:  "Sample Traveler",
		Role:  entity.RoleTraveler,
		XP:    0,
	}, overwrite)
}

func SampleQuest(overwrite entity.Quest) entity.Quest {
	return overwriteFields(entity.Quest{
		Base:            entity.Base{ID: uuid.NewString()},
		Title:           "Beach cleanup at Playa Negra",
		Category:        "environment",
		XPValue:         100,
		Lat:             9.6558,
		Lng:             -82.7594,
		LocationAddress: "Playa Negra, Puerto Viejo",
		Status:          entity.Active,
	}, overwrite)
}

func SampleReward(overwrite entity.Reward) entity.Reward {
	return overwriteFields(entity.Reward{
		Base:     entity.Base{ID: uuid.NewString()},
		Title:    "Free surf lesson",
		Category: "experience",
		XPCost:   250,
		Status:   entity.Active,
	}, overwrite)
}

func SampleSubmission(overwrite entity.Submission) entity.Submission {
	return overwriteFields(entity.Submission{
		Base:   entity.Base{ID: uuid.NewString()},
		Status: entity.InProgress,
	}, overwrite)
}
