package models

import "time"

type Customer struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `gorm:"index" json:"email"`
	CreatedAt time.Time
}
