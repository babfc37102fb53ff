package entity

import "github.com/creatorhq/backend/pkg/enum"

type GlobalRole string

var (
	RoleAdmin   = enum.New(GlobalRole("ADMIN"))
	RoleChatter = enum.New(GlobalRole("CHATTER"))
)

var GlobalAdminRoles = []GlobalRole{RoleAdmin}

type User struct {
	Base
	Name         string `gorm:"unique"`
	Role         GlobalRole
	ProfileImage string
}
