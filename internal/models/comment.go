package models

import "time"

// Comment is a public guestbook comment.
type Comment struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Author    string    `json:"author,omitempty" gorm:"type:varchar(200)"`
	Message   string    `json:"message" validate:"required"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}
