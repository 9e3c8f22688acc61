package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Aqeel98/sidequest-travel-app-sub000/internal/entity"
	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type GetSubmissionListFilter struct {
	QuestID    string
	TravelerID string
	Status     []entity.SubmissionStatus
}

type ReviewSubmissionData struct {
	Status     entity.SubmissionStatus
	ReviewerID string
	ReviewedAt time.Time
}

type SubmissionRepository interface {
	Upsert(ctx context.Context, submission *entity.Submission) error
	GetByID(ctx context.Context, id string) (*entity.Submission, error)
	Get(ctx context.Context, questID, travelerID string) (*entity.Submission, error)
	GetList(ctx context.Context, filter GetSubmissionListFilter) ([]entity.Submission, error)
	UpdateProofByID(ctx context.Context, id string, data *entity.Submission) error
	UpdateReviewByID(ctx context.Context, id string, data ReviewSubmissionData) error
}

type submissionRepository struct{}

func NewSubmissionRepository() *submissionRepository {
	return &submissionRepository{}
}

// Upsert keeps one row per (quest, traveler). Accepting a quest the
// traveler already has a row for only refreshes the status, it never
// produces a duplicate.
func (r *submissionRepository) Upsert(ctx context.Context, submission *entity.Submission) error {
	return xcontext.DB(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "quest_id"},
			{Name: "traveler_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
	}).Create(submission).Error
}

func (r *submissionRepository) GetByID(ctx context.Context, id string) (*entity.Submission, error) {
	var result entity.Submission
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *submissionRepository) Get(ctx context.Context, questID, travelerID string) (*entity.Submission, error) {
	var result entity.Submission
	err := xcontext.DB(ctx).
		Take(&result, "quest_id=? AND traveler_id=?", questID, travelerID).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *submissionRepository) GetList(ctx context.Context, filter GetSubmissionListFilter) ([]entity.Submission, error) {
	var result []entity.Submission
	tx := xcontext.DB(ctx).Order("created_at ASC")
	if filter.QuestID != "" {
		tx = tx.Where("quest_id=?", filter.QuestID)
	}

	if filter.TravelerID != "" {
		tx = tx.Where("traveler_id=?", filter.TravelerID)
	}

	if len(filter.Status) > 0 {
		tx = tx.Where("status IN (?)", filter.Status)
	}

	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *submissionRepository) UpdateProofByID(ctx context.Context, id string, data *entity.Submission) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Submission{}).
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

func (r *submissionRepository) UpdateReviewByID(ctx context.Context, id string, data ReviewSubmissionData) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Submission{}).
		Where("id=?", id).
		Updates(map[string]any{
			"status":      data.Status,
			"reviewer_id": data.ReviewerID,
			"reviewed_at": data.ReviewedAt,
		})
	if err := tx.Error; err != nil {
		return err
	}

	if tx.RowsAffected == 0 {
		return errors.New("row affected is empty")
	}

	return nil
}
