package models

import "time"

type Game struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string    `json:"title" gorm:"size:200;not null;index"`
	Description *string   `json:"description,omitempty" gorm:"type:text"`
	Genre       *string   `json:"genre,omitempty" gorm:"size:100"`
	ReleaseYear *int      `json:"release_year,omitempty"`
	Developer   *string   `json:"developer,omitempty" gorm:"size:100"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`

	// association
	Reviews []Review `json:"-" gorm:"foreignKey:GameID"`
}

func (Game) TableName() string {
	return "games"
}
