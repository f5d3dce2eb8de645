package entity

import "github.com/spinmall/backend/pkg/enum"

type GlobalRole string

var (
	RoleSuperAdmin = enum.New(GlobalRole("super_admin"))
	RoleAdmin      = enum.New(GlobalRole("admin"))
	RoleUser       = enum.New(GlobalRole("user"))
)

var GlobalAdminRoles = []GlobalRole{RoleSuperAdmin, RoleAdmin}

type User struct {
	Base

	Name           string `gorm:"unique"`
	HashedPassword string
	Role           GlobalRole `gorm:"default:user"`
	Avatar         string
	Bio            string

	// Points is the spendable balance. TotalPoints accumulates every credit
	// ever received, UsedPoints every debit ever spent; neither decreases.
	Points      int64
	TotalPoints int64
	UsedPoints  int64
}
