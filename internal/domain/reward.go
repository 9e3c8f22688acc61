package domain

import (
	"context"

	"github.com/Aqeel98/sidequest-travel-app-sub000/internal/common"
	"github.com/Aqeel98/sidequest-travel-app-sub000/internal/entity"
	"github.com/Aqeel98/sidequest-travel-app-sub000/internal/model"
	"github.com/Aqeel98/sidequest-travel-app-sub000/internal/repository"
	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/enum"
	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/errorx"
	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/idutil"
	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/pubsub"
	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/xcontext"
	"github.com/google/uuid"
)

type RewardDomain interface {
	Create(ctx context.Context, req *model.CreateRewardRequest) (*model.CreateRewardResponse, error)
	Update(ctx context.Context, req *model.UpdateRewardRequest) (*model.UpdateRewardResponse, error)
	Approve(ctx context.Context, req *model.ApproveRewardRequest) (*model.ApproveRewardResponse, error)
	GetList(ctx context.Context, req *model.GetRewardsRequest) (*model.GetRewardsResponse, error)
	Redeem(ctx context.Context, req *model.RedeemRewardRequest) (*model.RedeemRewardResponse, error)
	GetMyRedemptions(ctx context.Context, req *model.GetMyRedemptionsRequest) (*model.GetMyRedemptionsResponse, error)
}

type rewardDomain struct {
	rewardRepo     repository.RewardRepository
	redemptionRepo repository.RedemptionRepository
	userRepo       repository.UserRepository
	roleVerifier   *common.GlobalRoleVerifier
	publisher      pubsub.Publisher
}

func NewRewardDomain(
	rewardRepo repository.RewardRepository,
	redemptionRepo repository.RedemptionRepository,
	userRepo repository.UserRepository,
	publisher pubsub.Publisher,
) *rewardDomain {
	return &rewardDomain{
		rewardRepo:     rewardRepo,
		redemptionRepo: redemptionRepo,
		userRepo:       userRepo,
		roleVerifier:   common.NewGlobalRoleVerifier(userRepo),
		publisher:      publisher,
	}
}

func (d *rewardDomain) Create(ctx context.Context, req *model.CreateRewardRequest) (*model.CreateRewardResponse, error) {
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

	reward := &entity.Reward{
		Base:      entity.Base{ID: uuid.NewString()},
		Title:     req.Title,
		Category:  req.Category,
		XPCost:    req.XPCost,
		Status:    status,
		CreatedBy: xcontext.RequestUserID(ctx),
	}

	if err := d.rewardRepo.Create(ctx, reward); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create reward: %v", err)
		return nil, errorx.Unknown
	}

	common.PublishChange(ctx, d.publisher, model.TableRewards, model.OpInsert, reward, nil)
	return &model.CreateRewardResponse{Reward: ConvertReward(reward)}, nil
}

func (d *rewardDomain) Update(ctx context.Context, req *model.UpdateRewardRequest) (*model.UpdateRewardResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.CreatorRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	oldReward, err := d.rewardRepo.GetByID(ctx, req.ID)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot get reward: %v", err)
		return nil, errorx.New(errorx.NotFound, "Not found reward")
	}

	if oldReward.CreatedBy != xcontext.RequestUserID(ctx) {
		if err := d.roleVerifier.Verify(ctx, entity.AdminRoles...); err != nil {
			xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
			return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
		}
	}

	status, err := d.moderatedStatus(ctx, req.Status)
	if err != nil {
		return nil, err
	}

	data := &entity.Reward{
		Title:    req.Title,
		Category: req.Category,
		XPCost:   req.XPCost,
		Status:   status,
	}

	if err := d.rewardRepo.UpdateByID(ctx, req.ID, data); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update reward: %v", err)
		return nil, errorx.Unknown
	}

	reward, err := d.rewardRepo.GetByID(ctx, req.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get reward after update: %v", err)
		return nil, errorx.Unknown
	}

	common.PublishChange(ctx, d.publisher, model.TableRewards, model.OpUpdate, reward, oldReward)
	return &model.UpdateRewardResponse{Reward: ConvertReward(reward)}, nil
}

func (d *rewardDomain) Approve(ctx context.Context, req *model.ApproveRewardRequest) (*model.ApproveRewardResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.AdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	oldReward, err := d.rewardRepo.GetByID(ctx, req.ID)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot get reward: %v", err)
		return nil, errorx.New(errorx.NotFound, "Not found reward")
	}

	if oldReward.Status != entity.PendingAdmin {
		return nil, errorx.New(errorx.BadRequest, "Reward is not waiting for approval")
	}

	if err := d.rewardRepo.UpdateStatusByID(ctx, req.ID, entity.Active); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot approve reward: %v", err)
		return nil, errorx.Unknown
	}

	reward := *oldReward
	reward.Status = entity.Active

	common.PublishChange(ctx, d.publisher, model.TableRewards, model.OpUpdate, &reward, oldReward)
	return &model.ApproveRewardResponse{Reward: ConvertReward(&reward)}, nil
}

func (d *rewardDomain) GetList(ctx context.Context, req *model.GetRewardsRequest) (*model.GetRewardsResponse, error) {
	filter := repository.GetRewardListFilter{}
	if req.Status != "" {
		status, err := enum.ToEnum[entity.ModerationStatus](req.Status)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid status %s", req.Status)
		}

		filter.Status = []entity.ModerationStatus{status}
	}

	if err := d.roleVerifier.Verify(ctx, entity.AdminRoles...); err != nil {
		if len(filter.Status) == 0 || filter.Status[0] != entity.Active {
			filter.CreatedBy = xcontext.RequestUserID(ctx)
		}
	}

	rewards, err := d.rewardRepo.GetList(ctx, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get reward list: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetRewardsResponse{}
	for i := range rewards {
		resp.Rewards = append(resp.Rewards, ConvertReward(&rewards[i]))
	}

	return resp, nil
}

// Redeem debits the traveler and issues the voucher in one transaction, so a
// crash between the two can never leave points spent without a code or a code
// issued for free.
func (d *rewardDomain) Redeem(ctx context.Context, req *model.RedeemRewardRequest) (*model.RedeemRewardResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	reward, err := d.rewardRepo.GetByID(ctx, req.RewardID)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot get reward: %v", err)
		return nil, errorx.New(errorx.NotFound, "Not found reward")
	}

	if reward.Status != entity.Active {
		return nil, errorx.New(errorx.BadRequest, "Reward is not redeemable")
	}

	redemption := &entity.Redemption{
		Base:           entity.Base{ID: uuid.NewString()},
		TravelerID:     userID,
		RewardID:       reward.ID,
		RedemptionCode: idutil.RedemptionCode(xcontext.SnowFlake(ctx)),
		Status:         entity.RedemptionIssued,
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.userRepo.DecreaseXP(ctx, userID, reward.XPCost); err != nil {
		if err == repository.ErrInsufficientXP {
			return nil, errorx.New(errorx.InsufficientBalance,
				"Not enough xp, this reward needs %d", reward.XPCost)
		}

		xcontext.Logger(ctx).Errorf("Cannot decrease xp: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.redemptionRepo.Create(ctx, redemption); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create redemption: %v", err)
		return nil, errorx.Unknown
	}

	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user after debit: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	common.PublishChange(ctx, d.publisher, model.TableRedemptions, model.OpInsert, redemption, nil)
	common.PublishChange(ctx, d.publisher, model.TableUsers, model.OpUpdate, user, nil)

	return &model.RedeemRewardResponse{Redemption: ConvertRedemption(redemption)}, nil
}

func (d *rewardDomain) GetMyRedemptions(ctx context.Context, req *model.GetMyRedemptionsRequest) (*model.GetMyRedemptionsResponse, error) {
	redemptions, err := d.redemptionRepo.GetListByTravelerID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get redemption list: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetMyRedemptionsResponse{}
	for i := range redemptions {
		resp.Redemptions = append(resp.Redemptions, ConvertRedemption(&redemptions[i]))
	}

	return resp, nil
}

func (d *rewardDomain) moderatedStatus(ctx context.Context, requested string) (entity.ModerationStatus, error) {
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
