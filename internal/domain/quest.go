package domain

import (
	"context"

	"github.com/Aqeel98/sidequest-travel-app-sub000/internal/common"
	"github.com/Aqeel98/sidequest-travel-app-sub000/internal/entity"
	"github.com/Aqeel98/sidequest-travel-app-sub000/internal/model"
	"github.com/Aqeel98/sidequest-travel-app-sub000/internal/repository"
	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/enum"
	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/errorx"
	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/pubsub"
	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/xcontext"
	"github.com/google/uuid"
)

type QuestDomain interface {
	Create(ctx context.Context, req *model.CreateQuestRequest) (*model.CreateQuestResponse, error)
	Update(ctx context.Context, req *model.UpdateQuestRequest) (*model.UpdateQuestResponse, error)
	Approve(ctx context.Context, req *model.ApproveQuestRequest) (*model.ApproveQuestResponse, error)
	GetList(ctx context.Context, req *model.GetQuestsRequest) (*model.GetQuestsResponse, error)
}

type questDomain struct {
	questRepo    repository.QuestRepository
	userRepo     repository.UserRepository
	roleVerifier *common.GlobalRoleVerifier
	publisher    pubsub.Publisher
}

func NewQuestDomain(
	questRepo repository.QuestRepository,
	userRepo repository.UserRepository,
	publisher pubsub.Publisher,
) *questDomain {
	return &questDomain{
		questRepo:    questRepo,
		userRepo:     userRepo,
		roleVerifier: common.NewGlobalRoleVerifier(userRepo),
		publisher:    publisher,
	}
}

func (d *questDomain) Create(ctx context.Context, req *model.CreateQuestRequest) (*model.CreateQuestResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.CreatorRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if req.Title == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty title")
	}

	status, err := d.moderatedStatus(ctx, req.Status)
	if err != nil {
		return nil, err
	}

	quest := &entity.Quest{
		Base:            entity.Base{ID: uuid.NewString()},
		Title:           req.Title,
		Category:        req.Category,
		XPValue:         req.XPValue,
		Lat:             req.Lat,
		Lng:             req.Lng,
		LocationAddress: req.LocationAddress,
		Status:          status,
		CreatedBy:       xcontext.RequestUserID(ctx),
	}

	if err := d.questRepo.Create(ctx, quest); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create quest: %v", err)
		return nil, errorx.Unknown
	}

	common.PublishChange(ctx, d.publisher, model.TableQuests, model.OpInsert, quest, nil)
	return &model.CreateQuestResponse{Quest: ConvertQuest(quest)}, nil
}

func (d *questDomain) Update(ctx context.Context, req *model.UpdateQuestRequest) (*model.UpdateQuestResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.CreatorRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	oldQuest, err := d.questRepo.GetByID(ctx, req.ID)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot get quest: %v", err)
		return nil, errorx.New(errorx.NotFound, "Not found quest")
	}

	if err := d.verifyOwnership(ctx, oldQuest.CreatedBy); err != nil {
		return nil, err
	}

	status, err := d.moderatedStatus(ctx, req.Status)
	if err != nil {
		return nil, err
	}

	data := &entity.Quest{
		Title:           req.Title,
		Category:        req.Category,
		XPValue:         req.XPValue,
		Lat:             req.Lat,
		Lng:             req.Lng,
		LocationAddress: req.LocationAddress,
		Status:          status,
	}

	if err := d.questRepo.UpdateByID(ctx, req.ID, data); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update quest: %v", err)
		return nil, errorx.Unknown
	}

	quest, err := d.questRepo.GetByID(ctx, req.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get quest after update: %v", err)
		return nil, errorx.Unknown
	}

	common.PublishChange(ctx, d.publisher, model.TableQuests, model.OpUpdate, quest, oldQuest)
	return &model.UpdateQuestResponse{Quest: ConvertQuest(quest)}, nil
}

// Approve flips a pending quest to active. Only admins review the queue.
func (d *questDomain) Approve(ctx context.Context, req *model.ApproveQuestRequest) (*model.ApproveQuestResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.AdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	oldQuest, err := d.questRepo.GetByID(ctx, req.ID)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot get quest: %v", err)
		return nil, errorx.New(errorx.NotFound, "Not found quest")
	}

	if oldQuest.Status != entity.PendingAdmin {
		return nil, errorx.New(errorx.BadRequest, "Quest is not waiting for approval")
	}

	if err := d.questRepo.UpdateStatusByID(ctx, req.ID, entity.Active); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot approve quest: %v", err)
		return nil, errorx.Unknown
	}

	quest := *oldQuest
	quest.Status = entity.Active

	common.PublishChange(ctx, d.publisher, model.TableQuests, model.OpUpdate, &quest, oldQuest)
	return &model.ApproveQuestResponse{Quest: ConvertQuest(&quest)}, nil
}

func (d *questDomain) GetList(ctx context.Context, req *model.GetQuestsRequest) (*model.GetQuestsResponse, error) {
	filter := repository.GetQuestListFilter{}
	if req.Status != "" {
		status, err := enum.ToEnum[entity.ModerationStatus](req.Status)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid status %s", req.Status)
		}

		filter.Status = []entity.ModerationStatus{status}
	}

	// Travelers only ever see the live board. Moderation states are for the
	// admin console and the partner's own dashboard.
	if err := d.roleVerifier.Verify(ctx, entity.AdminRoles...); err != nil {
		if len(filter.Status) == 0 || filter.Status[0] != entity.Active {
			filter.CreatedBy = xcontext.RequestUserID(ctx)
		}
	}

	quests, err := d.questRepo.GetList(ctx, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get quest list: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetQuestsResponse{}
	for i := range quests {
		resp.Quests = append(resp.Quests, ConvertQuest(&quests[i]))
	}

	return resp, nil
}

// moderatedStatus decides the stored status of a created or edited item.
// Partner writes always land in the approval queue; admins may publish
// directly.
func (d *questDomain) moderatedStatus(ctx context.Context, requested string) (entity.ModerationStatus, error) {
	if err := d.roleVerifier.Verify(ctx, entity.AdminRoles...); err != nil {
		return entity.PendingAdmin, nil
	}

	if requested == "" {
		return entity.Active, nil
	}

	status, err := enum.ToEnum[entity.ModerationStatus](requested)
	if err != nil {
		return "", errorx.New(errorx.BadRequest, "Invalid status %s", requested)
	}

	return status, nil
}

func (d *questDomain) verifyOwnership(ctx context.Context, createdBy string) error {
	if createdBy == xcontext.RequestUserID(ctx) {
		return nil
	}

	if err := d.roleVerifier.Verify(ctx, entity.AdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	return nil
}
