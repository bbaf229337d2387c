package models

import "time"

type Review struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	GameID    int64     `json:"game_id" gorm:"not null;index"`
	UserID    int64     `json:"user_id" gorm:"not null;index"`
	Content   string    `json:"content" gorm:"not null;type:text"`
	Rating    int       `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 10"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Associations
	Author   User      `json:"author" gorm:"foreignKey:UserID"`
	Game     Game      `json:"-" gorm:"foreignKey:GameID"`
	Comments []Comment `json:"-" gorm:"foreignKey:ReviewID"`
}

func (Review) TableName() string {
	return "reviews"
}
