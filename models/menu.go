package models

import "time"

type MenuWeek struct {
	ID               uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	StartsAt         time.Time  `gorm:"not null" json:"starts_at"`
	SellingDays      string     `json:"selling_days"`
	Status           string     `gorm:"type:VARCHAR(20);default:'draft'" json:"status"`
	Published        bool       `gorm:"default:false" json:"published"`
	PickupWindowText string     `json:"pickup_window_text"`
	NotesText        string     `json:"notes_text"`
	Items            []MenuItem `gorm:"foreignKey:MenuWeekID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt        time.Time  `json:"created_at"`
}

type MenuItem struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	MenuWeekID  uint   `gorm:"index" json:"menu_week_id"`
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	PhotoURL    string `json:"photo_url"`
	PriceCents  int    `gorm:"not null;default:0" json:"price_cents"`
	QtyLimit    *int   `json:"qty_limit"`
	QtySold     int    `gorm:"default:0" json:"qty_sold"`
	IsSoldOut   bool   `gorm:"default:false" json:"is_sold_out"`
	Available   bool   `gorm:"default:true" json:"available"`
}
