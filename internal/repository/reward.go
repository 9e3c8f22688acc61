package repository

import (
	"context"
	"errors"

	"github.com/Aqeel98/sidequest-travel-app-sub000/internal/entity"
	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/xcontext"
)

type GetRewardListFilter struct {
	Status    []entity.ModerationStatus
	CreatedBy string
}

type RewardRepository interface {
	Create(ctx context.Context, reward *entity.Reward) error
	GetByID(ctx context.Context, id string) (*entity.Reward, error)
	GetList(ctx context.Context, filter GetRewardListFilter) ([]entity.Reward, error)
	UpdateByID(ctx context.Context, id string, data *entity.Reward) error
	UpdateStatusByID(ctx context.Context, id string, status entity.ModerationStatus) error
}

type rewardRepository struct{}

func NewRewardRepository() *rewardRepository {
	return &rewardRepository{}
}

func (r *rewardRepository) Create(ctx context.Context, reward *entity.Reward) error {
	return xcontext.DB(ctx).Create(reward).Error
}

func (r *rewardRepository) GetByID(ctx context.Context, id string) (*entity.Reward, error) {
	var result entity.Reward
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *rewardRepository) GetList(ctx context.Context, filter GetRewardListFilter) ([]entity.Reward, error) {
	var result []entity.Reward
	tx := xcontext.DB(ctx).Order("created_at ASC")
	if len(filter.Status) > 0 {
		tx = tx.Where("status IN (?)", filter.Status)
	}

	if filter.CreatedBy != "" {
		tx = tx.Where("created_by=?", filter.CreatedBy)
	}

	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *rewardRepository) UpdateByID(ctx context.Context, id string, data *entity.Reward) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Reward{}).
		Where("id=?", id).
		Updates(data)
	if err := tx.Error; err != nil {
		return err
	}

	if tx.RowsAffected == 0 {
		return errors.New("row affected is empty")
	}

	return nil
}

func (r *rewardRepository) UpdateStatusByID(ctx context.Context, id string, status entity.ModerationStatus) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Reward{}).
		Where("id=?", id).
		Update("status", status)
	if err := tx.Error; err != nil {
		return err
	}

	if tx.RowsAffected == 0 {
		return errors.New("row affected is empty")
	}

	return nil
}
