package repository

import (
	"context"

	"github.com/Aqeel98/sidequest-travel-app-sub000/internal/entity"
	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/xcontext"
)

type RedemptionRepository interface {
	Create(ctx context.Context, redemption *entity.Redemption) error
	GetByID(ctx context.Context, id string) (*entity.Redemption, error)
	GetListByTravelerID(ctx context.Context, travelerID string) ([]entity.Redemption, error)
}

type redemptionRepository struct{}

func NewRedemptionRepository() *redemptionRepository {
	return &redemptionRepository{}
}

func (r *redemptionRepository) Create(ctx context.Context, redemption *entity.Redemption) error {
	return xcontext.DB(ctx).Create(redemption).Error
}

func (r *redemptionRepository) GetByID(ctx context.Context, id string) (*entity.Redemption, error) {
	var result entity.Redemption
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *redemptionRepository) GetListByTravelerID(ctx context.Context, travelerID string) ([]entity.Redemption, error) {
	var result []entity.Redemption
	err := xcontext.DB(ctx).
		Order("created_at ASC").
		Find(&result, "traveler_id=?", travelerID).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
