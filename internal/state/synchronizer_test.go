package state

import (
	"errors"
	"testing"

	"github.com/Aqeel98/sidequest-travel-app-sub000/internal/entity"
	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/errorx"
	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_RedeemReward_localBalanceCheck(t *testing.T) {
	f := newBootFixture(t)

	traveler := testutil.SampleUser(entity.User{XP: 100})
	require.NoError(t, f.userRepo.Create(f.ctx, &traveler))

	reward := testutil.SampleReward(entity.Reward{XPCost: 250})
	require.NoError(t, f.rewardRepo.Create(f.ctx, &reward))

	f.persistSession(t, traveler)
	require.NoError(t, f.sync.Boot(f.ctx))

	// The profile already shows the shortfall; the request never leaves
	// the client.
	_, err := f.sync.RedeemReward(f.ctx, reward.ID)
	require.Error(t, err)

	var xerr errorx.Error
	require.True(t, errors.As(err, &xerr))
	require.Equal(t, errorx.InsufficientBalance, xerr.Code)

	redemptions, err := f.redemptionRepo.GetListByTravelerID(f.ctx, traveler.ID)
	require.NoError(t, err)
	require.Empty(t, redemptions)

	unchanged, err := f.userRepo.GetByID(f.ctx, traveler.ID)
	require.NoError(t, err)
	require.EqualValues(t, 100, unchanged.XP)
	require.EqualValues(t, 100, f.store.Profile().XP)
}

func Test_RedeemReward_sufficientBalancePasses(t *testing.T) {
	f := newBootFixture(t)

	traveler := testutil.SampleUser(entity.User{XP: 300})
	require.NoError(t, f.userRepo.Create(f.ctx, &traveler))

	reward := testutil.SampleReward(entity.Reward{XPCost: 250})
	require.NoError(t, f.rewardRepo.Create(f.ctx, &reward))

	f.persistSession(t, traveler)
	require.NoError(t, f.sync.Boot(f.ctx))

	redemption, err := f.sync.RedeemReward(f.ctx, reward.ID)
	require.NoError(t, err)
	require.Equal(t, reward.ID, redemption.RewardID)

	// Optimistic debit lands before any realtime echo.
	require.EqualValues(t, 50, f.store.Profile().XP)
	require.Len(t, f.store.RedemptionList(), 1)
}
