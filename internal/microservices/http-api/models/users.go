package models

import (
	"time"
)

type User struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Username       string    `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email          string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	HashedPassword string    `gorm:"column:hashed_password;size:255;not null" json:"-"` // Not show in JSON
	IsActive       bool      `gorm:"default:true;not null" json:"is_active"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`

	Reviews  []Review  `gorm:"foreignKey:UserID" json:"-"`
	Comments []Comment `gorm:"foreignKey:UserID" json:"-"`
}

func (User) TableName() string {
	return "users"
}
