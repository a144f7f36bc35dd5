package models

import "time"

// Experience is a work-history entry. Dates are kept as strings so partial
// dates like "2023-05" survive round trips untouched.
type Experience struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Title       string    `json:"title" validate:"required,max=200"`
	Company     string    `json:"company" validate:"required,max=200"`
	Description string    `json:"description" validate:"required"`
	StartDate   string    `json:"start_date" gorm:"column:start_date;type:varchar(32)" validate:"required"`
	EndDate     string    `json:"end_date,omitempty" gorm:"column:end_date;type:varchar(32)"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
}
