// Package model holds the GORM persistence models of the credential store.
package model

import (
	"time"
)

// UserModel mirrors the 'users' table.
type UserModel struct {
	ID           int64   `gorm:"primaryKey;autoIncrement"`
	Username     string  `gorm:"type:varchar(150);uniqueIndex;not null"`
	Email        string  `gorm:"type:varchar(254)"`
	FirstName    string  `gorm:"type:varchar(150)"`
	LastName     string  `gorm:"type:varchar(150)"`
	Gender       *string `gorm:"type:varchar(1);check:gender IN ('M','F')"`
	PhoneNumber  string  `gorm:"type:varchar(15)"`
	IsStaff      bool    `gorm:"not null;default:false"`
	IsActive     bool    `gorm:"not null;default:true"`
	PasswordHash string  `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// GroupModel mirrors the 'groups' table. Group names double as role names.
type GroupModel struct {
	ID   int64  `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"type:varchar(150);uniqueIndex;not null"`
}

// TableName explicitly sets the table name for GORM.
func (GroupModel) TableName() string {
	return "groups"
}

// UserGroupModel mirrors the 'user_groups' join table. ID preserves assignment order.
type UserGroupModel struct {
	ID      int64 `gorm:"primaryKey;autoIncrement"`
	UserID  int64 `gorm:"not null;uniqueIndex:idx_user_groups_user_group"`
	GroupID int64 `gorm:"not null;uniqueIndex:idx_user_groups_user_group"`

	User  *UserModel  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Group *GroupModel `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (UserGroupModel) TableName() string {
	return "user_groups"
}

// All lists every model managed by migrations, in dependency order.
func All() []any {
	return []any{&UserModel{}, &GroupModel{}, &UserGroupModel{}}
}
