package tours

import (
	"time"

	"github.com/lib/pq"
)

type Tour struct {
	ID              string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name            string         `gorm:"uniqueIndex;not null" json:"name"`
	Duration        int            `gorm:"not null" json:"duration"`
	MaxGroupSize    int            `json:"max_group_size"`
	Difficulty      string         `gorm:"default:'medium'" json:"difficulty"` // easy, medium, difficult
	RatingsAverage  float64        `gorm:"default:4.5" json:"ratings_average"`
	RatingsQuantity int            `gorm:"default:0" json:"ratings_quantity"`
	Price           float64        `gorm:"not null" json:"price"`
	Summary         string         `json:"summary"`
	Description     string         `json:"description,omitempty"`
	ImageCover      string         `json:"image_cover"`
	Images          pq.StringArray `gorm:"type:text[]" json:"images,omitempty"`
	StartDates      pq.StringArray `gorm:"type:text[]" json:"start_dates,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

func (Tour) TableName() string { return "tours.tours" }
