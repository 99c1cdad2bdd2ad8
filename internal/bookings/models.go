package bookings

import "time"

type Booking struct {
	ID        string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	TourID    string    `gorm:"type:uuid;not null;index" json:"tour_id"`
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Price     float64   `gorm:"not null" json:"price"`
	Paid      bool      `gorm:"default:true" json:"paid"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Booking) TableName() string { return "bookings.bookings" }
