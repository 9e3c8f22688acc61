package entity

import (
	"time"

	"github.com/Aqeel98/sidequest-travel-app-sub000/pkg/enum"
)

type SubmissionStatus string

var (
	InProgress = enum.New(SubmissionStatus("in_progress"))
	Pending    = enum.New(SubmissionStatus("pending"))
	Approved   = enum.New(SubmissionStatus("approved"))
	Rejected   = enum.New(SubmissionStatus("rejected"))
)

// Submission records one traveler's attempt at one quest. The unique index
// keeps a single row per (quest, traveler) pair; re-submission after a
// rejection updates the same row.
type Submission struct {
	Base

	QuestID string `gorm:"uniqueIndex:idx_submissions_quest_traveler"`
	Quest   Quest  `gorm:"foreignKey:QuestID"`

	TravelerID string `gorm:"uniqueIndex:idx_submissions_quest_traveler"`
	Traveler   User   `gorm:"foreignKey:TravelerID"`

	Status         SubmissionStatus `gorm:"index"`
	CompletionNote string
	ProofPhotoURL  string
	SubmittedAt    time.Time

	ReviewerID string
	ReviewedAt time.Time
}
