package entity

import "github.com/Aqeel98/sidequest-travel-app-sub000/pkg/enum"

type Role string

var (
	RoleTraveler = enum.New(Role("traveler"))
	RolePartner  = enum.New(Role("partner"))
	RoleAdmin    = enum.New(Role("admin"))
)

// AdminRoles are the roles allowed to moderate content and review proofs.
var AdminRoles = []Role{RoleAdmin}

// CreatorRoles are the roles allowed to offer quests and rewards.
var CreatorRoles = []Role{RolePartner, RoleAdmin}

type User struct {
	Base

	Email string `gorm:"index"`
	Name  string
	Role  Role
	XP    uint64
}
