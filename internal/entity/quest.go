package entity

import "github.com/Aqeel98/sidequest-travel-app-sub000/pkg/enum"

// ModerationStatus is the lifecycle shared by quests and rewards. Everything
// a partner creates or edits goes back to pending_admin until an admin
// approves it.
type ModerationStatus string

var (
	PendingAdmin = enum.New(ModerationStatus("pending_admin"))
	Active       = enum.New(ModerationStatus("active"))
	Inactive     = enum.New(ModerationStatus("inactive"))
)

type Quest struct {
	Base

	Title           string
	Category        string
	XPValue         uint64
	Lat             float64
	Lng             float64
	LocationAddress string
	Status          ModerationStatus `gorm:"index"`
	CreatedBy       string
}
