package repository

import (
	"context"
	"errors"

	"github.com/Aqeel98/sidequest-travel-app-sub000/internal/entity"
	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/xcontext"
)

type GetQuestListFilter struct {
	Status    []entity.ModerationStatus
	CreatedBy string
}

type QuestRepository interface {
	Create(ctx context.Context, quest *entity.Quest) error
	GetByID(ctx context.Context, id string) (*entity.Quest, error)
	GetList(ctx context.Context, filter GetQuestListFilter) ([]entity.Quest, error)
	UpdateByID(ctx context.Context, id string, data *entity.Quest) error
	UpdateStatusByID(ctx context.Context, id string, status entity.ModerationStatus) error
}

type questRepository struct{}

func NewQuestRepository() *questRepository {
	return &questRepository{}
}

func (r *questRepository) Create(ctx context.Context, quest *entity.Quest) error {
	return xcontext.DB(ctx).Create(quest).Error
}

func (r *questRepository) GetByID(ctx context.Context, id string) (*entity.Quest, error) {
	var result entity.Quest
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *questRepository) GetList(ctx context.Context, filter GetQuestListFilter) ([]entity.Quest, error) {
	var result []entity.Quest
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

func (r *questRepository) UpdateByID(ctx context.Context, id string, data *entity.Quest) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Quest{}).
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

func (r *questRepository) UpdateStatusByID(ctx context.Context, id string, status entity.ModerationStatus) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Quest{}).
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
