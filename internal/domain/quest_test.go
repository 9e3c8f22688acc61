package domain

import (
	"testing"

	"github.com/Aqeel98/sidequest-travel-app-sub000/internal/entity"
	"github.com/Aqeel98/sidequest-travel-app-sub000/internal/model"
	"github.com/Aqeel98/sidequest-travel-app-sub000/internal/repository"
	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/testutil"
	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_questDomain_Create_moderation(t *testing.T) {
	ctx := testutil.MockContext(t)
	userRepo := repository.NewUserRepository()

	partner := testutil.SampleUser(entity.User{Role: entity.RolePartner})
	require.NoError(t, userRepo.Create(ctx, &partner))
	admin := testutil.SampleUser(entity.User{Role: entity.RoleAdmin})
	require.NoError(t, userRepo.Create(ctx, &admin))
	traveler := testutil.SampleUser(entity.User{})
	require.NoError(t, userRepo.Create(ctx, &traveler))

	questDomain := NewQuestDomain(
		repository.NewQuestRepository(), userRepo, testutil.NewMockPublisher())

	// A partner's new quest always enters the approval queue, whatever
	// status the request asks for.
	partnerCtx := xcontext.WithRequestUserID(ctx, partner.ID)
	resp, err := questDomain.Create(partnerCtx, &model.CreateQuestRequest{
		Title:  "Mangrove replanting",
		Status: "active",
	})
	require.NoError(t, err)
	require.Equal(t, "pending_admin", resp.Quest.Status)

	// An admin publishes directly by default.
	adminCtx := xcontext.WithRequestUserID(ctx, admin.ID)
	adminResp, err := questDomain.Create(adminCtx, &model.CreateQuestRequest{
		Title: "Coral nursery visit",
	})
	require.NoError(t, err)
	require.Equal(t, "active", adminResp.Quest.Status)

	// Travelers cannot offer quests at all.
	travelerCtx := xcontext.WithRequestUserID(ctx, traveler.ID)
	_, err = questDomain.Create(travelerCtx, &model.CreateQuestRequest{Title: "nope"})
	require.Error(t, err)
}

func Test_questDomain_Update_backToQueue(t *testing.T) {
	ctx := testutil.MockContext(t)
	userRepo := repository.NewUserRepository()
	questRepo := repository.NewQuestRepository()

	partner := testutil.SampleUser(entity.User{Role: entity.RolePartner})
	require.NoError(t, userRepo.Create(ctx, &partner))

	quest := testutil.SampleQuest(entity.Quest{
		Status:    entity.Active,
		CreatedBy: partner.ID,
	})
	require.NoError(t, questRepo.Create(ctx, &quest))

	questDomain := NewQuestDomain(questRepo, userRepo, testutil.NewMockPublisher())

	partnerCtx := xcontext.WithRequestUserID(ctx, partner.ID)
	resp, err := questDomain.Update(partnerCtx, &model.UpdateQuestRequest{
		ID:    quest.ID,
		Title: "Beach cleanup, now with barbecue",
	})
	require.NoError(t, err)
	require.Equal(t, "pending_admin", resp.Quest.Status)
}

func Test_questDomain_Approve(t *testing.T) {
	ctx := testutil.MockContext(t)
	userRepo := repository.NewUserRepository()
	questRepo := repository.NewQuestRepository()

	admin := testutil.SampleUser(entity.User{Role: entity.RoleAdmin})
	require.NoError(t, userRepo.Create(ctx, &admin))
	traveler := testutil.SampleUser(entity.User{})
	require.NoError(t, userRepo.Create(ctx, &traveler))

	quest := testutil.SampleQuest(entity.Quest{Status: entity.PendingAdmin})
	require.NoError(t, questRepo.Create(ctx, &quest))

	questDomain := NewQuestDomain(questRepo, userRepo, testutil.NewMockPublisher())

	travelerCtx := xcontext.WithRequestUserID(ctx, traveler.ID)
	_, err := questDomain.Approve(travelerCtx, &model.ApproveQuestRequest{ID: quest.ID})
	require.Error(t, err)

	adminCtx := xcontext.WithRequestUserID(ctx, admin.ID)
	resp, err := questDomain.Approve(adminCtx, &model.ApproveQuestRequest{ID: quest.ID})
	require.NoError(t, err)
	require.Equal(t, "active", resp.Quest.Status)

	// Approving twice has nothing left to approve.
	_, err = questDomain.Approve(adminCtx, &model.ApproveQuestRequest{ID: quest.ID})
	require.Error(t, err)
}

func Test_questDomain_GetList_travelerSeesOnlyActive(t *testing.T) {
	ctx := testutil.MockContext(t)
	userRepo := repository.NewUserRepository()
	questRepo := repository.NewQuestRepository()

	traveler := testutil.SampleUser(entity.User{})
	require.NoError(t, userRepo.Create(ctx, &traveler))

	active := testutil.SampleQuest(entity.Quest{Status: entity.Active})
	require.NoError(t, questRepo.Create(ctx, &active))
	pending := testutil.SampleQuest(entity.Quest{Status: entity.PendingAdmin})
	require.NoError(t, questRepo.Create(ctx, &pending))

	questDomain := NewQuestDomain(questRepo, userRepo, testutil.NewMockPublisher())

	travelerCtx := xcontext.WithRequestUserID(ctx, traveler.ID)
	resp, err := questDomain.GetList(travelerCtx, &model.GetQuestsRequest{Status: "active"})
	require.NoError(t, err)
	require.Len(t, resp.Quests, 1)
	require.Equal(t, active.ID, resp.Quests[0].ID)
}
