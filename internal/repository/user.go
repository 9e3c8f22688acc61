package repository

import (
	"context"
	"errors"

	"github.com/Aqeel98/sidequest-travel-app-sub000/internal/entity"
	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/xcontext"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetList(ctx context.Context) ([]entity.User, error)
	IncreaseXP(ctx context.Context, userID string, xp uint64) error
	DecreaseXP(ctx context.Context, userID string, xp uint64) error
}

type userRepository struct{}

func NewUserRepository() *userRepository {
	return &userRepository{}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return xcontext.DB(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var result entity.User
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var result entity.User
	if err := xcontext.DB(ctx).Take(&result, "email=?", email).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *userRepository) GetList(ctx context.Context) ([]entity.User, error) {
	var result []entity.User
	if err := xcontext.DB(ctx).Order("created_at ASC").Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *userRepository) IncreaseXP(ctx context.Context, userID string, xp uint64) error {
	tx := xcontext.DB(ctx).
		Model(&entity.User{}).
		Where("id=?", userID).
		Update("xp", gorm.Expr("xp+?", xp))
	if err := tx.Error; err != nil {
		return err
	}

	if tx.RowsAffected == 0 {
		return errors.New("row affected is empty")
	}

	return nil
}

// DecreaseXP debits a traveler balance. The xp guard in the WHERE clause
// makes the balance check and the debit one atomic statement, so two
// concurrent redemptions cannot both spend the same points.
func (r *userRepository) DecreaseXP(ctx context.Context, userID string, xp uint64) error {
	tx := xcontext.DB(ctx).
		Model(&entity.User{}).
		Where("id=? AND xp>=?", userID, xp).
		Update("xp", gorm.Expr("xp-?", xp))
	if err := tx.Error; err != nil {
		return err
	}

	if tx.RowsAffected == 0 {
		return ErrInsufficientXP
	}

	return nil
}

var ErrInsufficientXP = errors.New("not enough xp")
