package entity

type Reward struct {
	Base

	Title     string
	Category  string
	XPCost    uint64
	Status    ModerationStatus `gorm:"index"`
	CreatedBy string
}
