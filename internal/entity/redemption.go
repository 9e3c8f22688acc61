package entity

import "github.com/Aqeel98/sidequest-travel-app-sub000/pkg/enum"

type RedemptionStatus string

var (
	RedemptionIssued = enum.New(RedemptionStatus("issued"))
	// RedemptionVerified is set by the partner verification flow when the
	// voucher is shown at the venue.
	RedemptionVerified = enum.New(RedemptionStatus("verified"))
)

type Redemption struct {
	Base

	TravelerID string
	Traveler   User `gorm:"foreignKey:TravelerID"`

	RewardID string
	Reward   Reward `gorm:"foreignKey:RewardID"`

	RedemptionCode string `gorm:"uniqueIndex"`
	Status         RedemptionStatus
}
