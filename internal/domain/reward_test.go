package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/Aqeel98/sidequest-travel-app-sub000/internal/entity"
	"github.com/Aqeel98/sidequest-travel-app-sub000/internal/model"
	"github.com/Aqeel98/sidequest-travel-app-sub000/internal/repository"
	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/errorx"
	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/testutil"
	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_rewardDomain_Redeem(t *testing.T) {
	ctx := testutil.MockContext(t)
	userRepo := repository.NewUserRepository()
	rewardRepo := repository.NewRewardRepository()
	redemptionRepo := repository.NewRedemptionRepository()

	traveler := testutil.SampleUser(entity.User{XP: 300})
	require.NoError(t, userRepo.Create(ctx, &traveler))

	reward := testutil.SampleReward(entity.Reward{XPCost: 250})
	require.NoError(t, rewardRepo.Create(ctx, &reward))

	publisher := testutil.NewMockPublisher()
	rewardDomain := NewRewardDomain(rewardRepo, redemptionRepo, userRepo, publisher)

	travelerCtx := xcontext.WithRequestUserID(ctx, traveler.ID)
	resp, err := rewardDomain.Redeem(travelerCtx, &model.RedeemRewardRequest{RewardID: reward.ID})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(resp.Redemption.RedemptionCode, "SQ-"))
	require.Equal(t, "issued", resp.Redemption.Status)

	// The debit and the voucher commit together.
	debited, err := userRepo.GetByID(ctx, traveler.ID)
	require.NoError(t, err)
	require.EqualValues(t, 50, debited.XP)

	redemptions, err := redemptionRepo.GetListByTravelerID(ctx, traveler.ID)
	require.NoError(t, err)
	require.Len(t, redemptions, 1)

	// One redemptions insert, one users update on the realtime topic.
	require.Len(t, publisher.Packs(), 2)
}

func Test_rewardDomain_Redeem_insufficientBalance(t *testing.T) {
	ctx := testutil.MockContext(t)
	userRepo := repository.NewUserRepository()
	rewardRepo := repository.NewRewardRepository()
	redemptionRepo := repository.NewRedemptionRepository()

	traveler := testutil.SampleUser(entity.User{XP: 100})
	require.NoError(t, userRepo.Create(ctx, &traveler))

	reward := testutil.SampleReward(entity.Reward{XPCost: 250})
	require.NoError(t, rewardRepo.Create(ctx, &reward))

	rewardDomain := NewRewardDomain(
		rewardRepo, redemptionRepo, userRepo, testutil.NewMockPublisher())

	travelerCtx := xcontext.WithRequestUserID(ctx, traveler.ID)
	_, err := rewardDomain.Redeem(travelerCtx, &model.RedeemRewardRequest{RewardID: reward.ID})
	require.Error(t, err)

	var xerr errorx.Error
	require.True(t, errors.As(err, &xerr))
	require.Equal(t, errorx.InsufficientBalance, xerr.Code)

	// Nothing committed: the balance is untouched and no voucher exists.
	unchanged, err := userRepo.GetByID(ctx, traveler.ID)
	require.NoError(t, err)
	require.EqualValues(t, 100, unchanged.XP)

	redemptions, err := redemptionRepo.GetListByTravelerID(ctx, traveler.ID)
	require.NoError(t, err)
	require.Empty(t, redemptions)
}

func Test_rewardDomain_Redeem_inactiveReward(t *testing.T) {
	ctx := testutil.MockContext(t)
	userRepo := repository.NewUserRepository()
	rewardRepo := repository.NewRewardRepository()

	traveler := testutil.SampleUser(entity.User{XP: 1000})
	require.NoError(t, userRepo.Create(ctx, &traveler))

	reward := testutil.SampleReward(entity.Reward{Status: entity.PendingAdmin})
	require.NoError(t, rewardRepo.Create(ctx, &reward))

	rewardDomain := NewRewardDomain(
		rewardRepo, repository.NewRedemptionRepository(), userRepo, testutil.NewMockPublisher())

	travelerCtx := xcontext.WithRequestUserID(ctx, traveler.ID)
	_, err := rewardDomain.Redeem(travelerCtx, &model.RedeemRewardRequest{RewardID: reward.ID})
	require.Error(t, err)
}

func Test_rewardDomain_Create_moderation(t *testing.T) {
	ctx := testutil.MockContext(t)
	userRepo := repository.NewUserRepository()

	partner := testutil.SampleUser(entity.User{Role: entity.RolePartner})
	require.NoError(t, userRepo.Create(ctx, &partner))

	rewardDomain := NewRewardDomain(
		repository.NewRewardRepository(),
		repository.NewRedemptionRepository(),
		userRepo,
		testutil.NewMockPublisher(),
	)

	partnerCtx := xcontext.WithRequestUserID(ctx, partner.ID)
	resp, err := rewardDomain.Create(partnerCtx, &model.CreateRewardRequest{
		Title:  "Free kayak tour",
		XPCost: 400,
		Status: "active",
	})
	require.NoError(t, err)
	require.Equal(t, "pending_admin", resp.Reward.Status)
}
