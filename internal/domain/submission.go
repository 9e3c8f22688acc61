package domain

import (
	"context"
	"errors"
	"time"

	"github.com/Aqeel98/sidequest-travel-app-sub000/internal/common"
	"github.com/Aqeel98/sidequest-travel-app-sub000/internal/entity"
	"github.com/Aqeel98/sidequest-travel-app-sub000/internal/model"
	"github.com/Aqeel98/sidequest-travel-app-sub000/internal/repository"
	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/errorx"
	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/pubsub"
	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/storage"
	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/xcontext"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubmissionDomain interface {
	Accept(ctx context.Context, req *model.AcceptQuestRequest) (*model.AcceptQuestResponse, error)
	SubmitProof(ctx context.Context, req *model.SubmitProofRequest) (*model.SubmitProofResponse, error)
	Review(ctx context.Context, req *model.ReviewSubmissionRequest) (*model.ReviewSubmissionResponse, error)
	GetMySubmissions(ctx context.Context, req *model.GetMySubmissionsRequest) (*model.GetMySubmissionsResponse, error)
	GetPendingSubmissions(ctx context.Context, req *model.GetPendingSubmissionsRequest) (*model.GetPendingSubmissionsResponse, error)
}

type submissionDomain struct {
	submissionRepo repository.SubmissionRepository
	questRepo      repository.QuestRepository
	userRepo       repository.UserRepository
	roleVerifier   *common.GlobalRoleVerifier
	publisher      pubsub.Publisher
	storage        storage.Storage
}

func NewSubmissionDomain(
	submissionRepo repository.SubmissionRepository,
	questRepo repository.QuestRepository,
	userRepo repository.UserRepository,
	publisher pubsub.Publisher,
	storage storage.Storage,
) *submissionDomain {
	return &submissionDomain{
		submissionRepo: submissionRepo,
		questRepo:      questRepo,
		userRepo:       userRepo,
		roleVerifier:   common.NewGlobalRoleVerifier(userRepo),
		publisher:      publisher,
		storage:        storage,
	}
}

// Accept starts a quest for the requesting traveler. A second accept of the
// same quest lands on the same row instead of growing the journal.
func (d *submissionDomain) Accept(ctx context.Context, req *model.AcceptQuestRequest) (*model.AcceptQuestResponse, error) {
	travelerID := xcontext.RequestUserID(ctx)
	quest, err := d.questRepo.GetByID(ctx, req.QuestID)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot get quest: %v", err)
		return nil, errorx.New(errorx.NotFound, "Not found quest")
	}

	if quest.Status != entity.Active {
		return nil, errorx.New(errorx.BadRequest, "Quest is not active")
	}

	existing, err := d.submissionRepo.Get(ctx, req.QuestID, travelerID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get submission: %v", err)
		return nil, errorx.Unknown
	}

	op := model.OpInsert
	if existing != nil {
		switch existing.Status {
		case entity.Approved:
			return nil, errorx.New(errorx.AlreadyExists, "Quest already completed")
		case entity.Pending:
			return nil, errorx.New(errorx.AlreadyExists, "Proof is waiting for review")
		}

		op = model.OpUpdate
	}

	err = d.submissionRepo.Upsert(ctx, &entity.Submission{
		Base:       entity.Base{ID: uuid.NewString()},
		QuestID:    req.QuestID,
		TravelerID: travelerID,
		Status:     entity.InProgress,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upsert submission: %v", err)
		return nil, errorx.Unknown
	}

	// The upsert keeps the original row id on conflict, re-read for the
	// stored row.
	submission, err := d.submissionRepo.Get(ctx, req.QuestID, travelerID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get submission after upsert: %v", err)
		return nil, errorx.Unknown
	}

	common.PublishChange(ctx, d.publisher, model.TableSubmissions, op, submission, existing)
	return &model.AcceptQuestResponse{Submission: ConvertSubmission(submission)}, nil
}

func (d *submissionDomain) SubmitProof(ctx context.Context, req *model.SubmitProofRequest) (*model.SubmitProofResponse, error) {
	travelerID := xcontext.RequestUserID(ctx)
	oldSubmission, err := d.submissionRepo.Get(ctx, req.QuestID, travelerID)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot get submission: %v", err)
		return nil, errorx.New(errorx.NotFound, "Quest is not accepted yet")
	}

	switch oldSubmission.Status {
	case entity.InProgress, entity.Rejected:
	default:
		return nil, errorx.New(errorx.BadRequest, "Proof was already submitted")
	}

	if len(req.ProofPhoto) == 0 {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty proof photo")
	}

	photoURL, err := common.ProcessProofImage(ctx, d.storage, req.ProofPhotoName, req.ProofPhoto)
	if err != nil {
		return nil, err
	}

	data := &entity.Submission{
		Status:         entity.Pending,
		CompletionNote: req.CompletionNote,
		ProofPhotoURL:  photoURL,
		SubmittedAt:    time.Now(),
	}

	if err := d.submissionRepo.UpdateProofByID(ctx, oldSubmission.ID, data); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update submission: %v", err)
		return nil, errorx.Unknown
	}

	submission, err := d.submissionRepo.GetByID(ctx, oldSubmission.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get submission after update: %v", err)
		return nil, errorx.Unknown
	}

	common.PublishChange(ctx, d.publisher, model.TableSubmissions, model.OpUpdate, submission, oldSubmission)
	return &model.SubmitProofResponse{Submission: ConvertSubmission(submission)}, nil
}

// Review settles a pending proof. Approval awards the quest xp to the
// traveler in the same transaction that flips the status.
func (d *submissionDomain) Review(ctx context.Context, req *model.ReviewSubmissionRequest) (*model.ReviewSubmissionResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.AdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	oldSubmission, err := d.submissionRepo.GetByID(ctx, req.ID)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot get submission: %v", err)
		return nil, errorx.New(errorx.NotFound, "Not found submission")
	}

	if oldSubmission.Status != entity.Pending {
		return nil, errorx.New(errorx.BadRequest, "Submission is not waiting for review")
	}

	status := entity.Rejected
	if req.Approve {
		status = entity.Approved
	}

	review := repository.ReviewSubmissionData{
		Status:     status,
		ReviewerID: xcontext.RequestUserID(ctx),
		ReviewedAt: time.Now(),
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.submissionRepo.UpdateReviewByID(ctx, req.ID, review); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update submission review: %v", err)
		return nil, errorx.Unknown
	}

	var traveler *entity.User
	if req.Approve {
		quest, err := d.questRepo.GetByID(ctx, oldSubmission.QuestID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get quest of submission: %v", err)
			return nil, errorx.Unknown
		}

		if err := d.userRepo.IncreaseXP(ctx, oldSubmission.TravelerID, quest.XPValue); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot award xp: %v", err)
			return nil, errorx.Unknown
		}

		traveler, err = d.userRepo.GetByID(ctx, oldSubmission.TravelerID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get traveler after award: %v", err)
			return nil, errorx.Unknown
		}
	}

	submission, err := d.submissionRepo.GetByID(ctx, req.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get submission after review: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	common.PublishChange(ctx, d.publisher, model.TableSubmissions, model.OpUpdate, submission, oldSubmission)
	if traveler != nil {
		common.PublishChange(ctx, d.publisher, model.TableUsers, model.OpUpdate, traveler, nil)
	}

	return &model.ReviewSubmissionResponse{Submission: ConvertSubmission(submission)}, nil
}

func (d *submissionDomain) GetMySubmissions(ctx context.Context, req *model.GetMySubmissionsRequest) (*model.GetMySubmissionsResponse, error) {
	submissions, err := d.submissionRepo.GetList(ctx, repository.GetSubmissionListFilter{
		TravelerID: xcontext.RequestUserID(ctx),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get submission list: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetMySubmissionsResponse{}
	for i := range submissions {
		resp.Submissions = append(resp.Submissions, ConvertSubmission(&submissions[i]))
	}

	return resp, nil
}

func (d *submissionDomain) GetPendingSubmissions(ctx context.Context, req *model.GetPendingSubmissionsRequest) (*model.GetPendingSubmissionsResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.AdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	submissions, err := d.submissionRepo.GetList(ctx, repository.GetSubmissionListFilter{
		Status: []entity.SubmissionStatus{entity.Pending},
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get submission list: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetPendingSubmissionsResponse{}
	for i := range submissions {
		resp.Submissions = append(resp.Submissions, ConvertSubmission(&submissions[i]))
	}

	return resp, nil
}
