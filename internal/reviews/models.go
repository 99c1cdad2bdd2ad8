package reviews

import "time"

// Review is one user's rating of one tour; the unique (tour, user) index
// keeps it at most one per pair.
type Review struct {
	ID        string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Review    string    `gorm:"not null" json:"review"`
	Rating    int       `gorm:"not null" json:"rating"`
	TourID    string    `gorm:"type:uuid;not null;index:idx_review_tour_user,unique" json:"tour_id"`
	UserID    string    `gorm:"type:uuid;not null;index:idx_review_tour_user,unique" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Review) TableName() string { return "reviews.reviews" }
