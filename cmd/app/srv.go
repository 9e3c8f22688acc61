package main

import (
	"context"

	"github.com/Aqeel98/sidequest-travel-app-sub000/config"
	"github.com/Aqeel98/sidequest-travel-app-sub000/internal/domain"
	"github.com/Aqeel98/sidequest-travel-app-sub000/internal/repository"
	"github.com/Aqeel98/sidequest-travel-app-sub000/internal/state"
	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/pubsub"
	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/session"
	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/storage"
	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/ws"
)

type srv struct {
	ctx context.Context
	cfg config.Configs

	userRepo       repository.UserRepository
	questRepo      repository.QuestRepository
	rewardRepo     repository.RewardRepository
	submissionRepo repository.SubmissionRepository
	redemptionRepo repository.RedemptionRepository

	authDomain       domain.AuthDomain
	userDomain       domain.UserDomain
	questDomain      domain.QuestDomain
	rewardDomain     domain.RewardDomain
	submissionDomain domain.SubmissionDomain

	sessions   *session.Manager
	storage    storage.Storage
	publisher  pubsub.Publisher
	subscriber pubsub.Subscriber

	store        *state.Store
	synchronizer *state.Synchronizer

	hub *ws.Hub
}
