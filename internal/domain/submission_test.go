package domain

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/Aqeel98/sidequest-travel-app-sub000/internal/entity"
	"github.com/Aqeel98/sidequest-travel-app-sub000/internal/model"
	"github.com/Aqeel98/sidequest-travel-app-sub000/internal/repository"
	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/testutil"
	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func proofPhoto(t *testing.T) []byte {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))))
	return buf.Bytes()
}

func Test_submissionDomain_AcceptAndSubmit(t *testing.T) {
	ctx := testutil.MockContext(t)
	userRepo := repository.NewUserRepository()
	questRepo := repository.NewQuestRepository()
	submissionRepo := repository.NewSubmissionRepository()

	traveler := testutil.SampleUser(entity.User{})
	require.NoError(t, userRepo.Create(ctx, &traveler))

	quest := testutil.SampleQuest(entity.Quest{})
	require.NoError(t, questRepo.Create(ctx, &quest))

	storage := testutil.NewMockStorage()
	submissionDomain := NewSubmissionDomain(
		submissionRepo, questRepo, userRepo, testutil.NewMockPublisher(), storage)

	travelerCtx := xcontext.WithRequestUserID(ctx, traveler.ID)
	accepted, err := submissionDomain.Accept(travelerCtx, &model.AcceptQuestRequest{QuestID: quest.ID})
	require.NoError(t, err)
	require.Equal(t, "in_progress", accepted.Submission.Status)

	// Accepting again keeps the same row.
	again, err := submissionDomain.Accept(travelerCtx, &model.AcceptQuestRequest{QuestID: quest.ID})
	require.NoError(t, err)
	require.Equal(t, accepted.Submission.ID, again.Submission.ID)

	// Proof without a photo is refused.
	_, err = submissionDomain.SubmitProof(travelerCtx, &model.SubmitProofRequest{
		QuestID:        quest.ID,
		CompletionNote: "done",
	})
	require.Error(t, err)

	submitted, err := submissionDomain.SubmitProof(travelerCtx, &model.SubmitProofRequest{
		QuestID:        quest.ID,
		CompletionNote: "Collected three bags of plastic",
		ProofPhoto:     proofPhoto(t),
		ProofPhotoName: "proof.png",
	})
	require.NoError(t, err)
	require.Equal(t, "pending", submitted.Submission.Status)
	require.NotEmpty(t, submitted.Submission.ProofPhotoURL)
	require.False(t, submitted.Submission.SubmittedAt.IsZero())
	require.Len(t, storage.Uploaded, 1)

	// While the proof waits for review, another accept is refused.
	_, err = submissionDomain.Accept(travelerCtx, &model.AcceptQuestRequest{QuestID: quest.ID})
	require.Error(t, err)
}

func Test_submissionDomain_Accept_inactiveQuest(t *testing.T) {
	ctx := testutil.MockContext(t)
	userRepo := repository.NewUserRepository()
	questRepo := repository.NewQuestRepository()

	traveler := testutil.SampleUser(entity.User{})
	require.NoError(t, userRepo.Create(ctx, &traveler))

	quest := testutil.SampleQuest(entity.Quest{Status: entity.PendingAdmin})
	require.NoError(t, questRepo.Create(ctx, &quest))

	submissionDomain := NewSubmissionDomain(
		repository.NewSubmissionRepository(), questRepo, userRepo,
		testutil.NewMockPublisher(), testutil.NewMockStorage())

	travelerCtx := xcontext.WithRequestUserID(ctx, traveler.ID)
	_, err := submissionDomain.Accept(travelerCtx, &model.AcceptQuestRequest{QuestID: quest.ID})
	require.Error(t, err)
}

func Test_submissionDomain_Review(t *testing.T) {
	ctx := testutil.MockContext(t)
	userRepo := repository.NewUserRepository()
	questRepo := repository.NewQuestRepository()
	submissionRepo := repository.NewSubmissionRepository()

	traveler := testutil.SampleUser(entity.User{XP: 10})
	require.NoError(t, userRepo.Create(ctx, &traveler))
	admin := testutil.SampleUser(entity.User{Role: entity.RoleAdmin})
	require.NoError(t, userRepo.Create(ctx, &admin))

	quest := testutil.SampleQuest(entity.Quest{XPValue: 100})
	require.NoError(t, questRepo.Create(ctx, &quest))

	submission := testutil.SampleSubmission(entity.Submission{
		QuestID:    quest.ID,
		TravelerID: traveler.ID,
		Status:     entity.Pending,
	})
	require.NoError(t, submissionRepo.Upsert(ctx, &submission))

	publisher := testutil.NewMockPublisher()
	submissionDomain := NewSubmissionDomain(
		submissionRepo, questRepo, userRepo, publisher, testutil.NewMockStorage())

	// Only admins review.
	travelerCtx := xcontext.WithRequestUserID(ctx, traveler.ID)
	_, err := submissionDomain.Review(travelerCtx, &model.ReviewSubmissionRequest{
		ID: submission.ID, Approve: true,
	})
	require.Error(t, err)

	adminCtx := xcontext.WithRequestUserID(ctx, admin.ID)
	resp, err := submissionDomain.Review(adminCtx, &model.ReviewSubmissionRequest{
		ID: submission.ID, Approve: true,
	})
	require.NoError(t, err)
	require.Equal(t, "approved", resp.Submission.Status)

	// The approval awarded the quest xp in the same transaction.
	awarded, err := userRepo.GetByID(ctx, traveler.ID)
	require.NoError(t, err)
	require.EqualValues(t, 110, awarded.XP)

	// A settled submission cannot be reviewed again.
	_, err = submissionDomain.Review(adminCtx, &model.ReviewSubmissionRequest{
		ID: submission.ID, Approve: false,
	})
	require.Error(t, err)
}

func Test_submissionDomain_Review_reject(t *testing.T) {
	ctx := testutil.MockContext(t)
	userRepo := repository.NewUserRepository()
	questRepo := repository.NewQuestRepository()
	submissionRepo := repository.NewSubmissionRepository()

	traveler := testutil.SampleUser(entity.User{})
	require.NoError(t, userRepo.Create(ctx, &traveler))
	admin := testutil.SampleUser(entity.User{Role: entity.RoleAdmin})
	require.NoError(t, userRepo.Create(ctx, &admin))

	quest := testutil.SampleQuest(entity.Quest{XPValue: 100})
	require.NoError(t, questRepo.Create(ctx, &quest))

	submission := testutil.SampleSubmission(entity.Submission{
		QuestID:    quest.ID,
		TravelerID: traveler.ID,
		Status:     entity.Pending,
	})
	require.NoError(t, submissionRepo.Upsert(ctx, &submission))

	submissionDomain := NewSubmissionDomain(
		submissionRepo, questRepo, userRepo,
		testutil.NewMockPublisher(), testutil.NewMockStorage())

	adminCtx := xcontext.WithRequestUserID(ctx, admin.ID)
	resp, err := submissionDomain.Review(adminCtx, &model.ReviewSubmissionRequest{
		ID: submission.ID, Approve: false,
	})
	require.NoError(t, err)
	require.Equal(t, "rejected", resp.Submission.Status)

	// No xp for a rejected proof.
	unchanged, err := userRepo.GetByID(ctx, traveler.ID)
	require.NoError(t, err)
	require.EqualValues(t, 0, unchanged.XP)

	// A rejected traveler may try again.
	travelerCtx := xcontext.WithRequestUserID(ctx, traveler.ID)
	again, err := submissionDomain.Accept(travelerCtx, &model.AcceptQuestRequest{QuestID: quest.ID})
	require.NoError(t, err)
	require.Equal(t, "in_progress", again.Submission.Status)
}
