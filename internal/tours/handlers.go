package tours

import (
	"net/http"

	"github.com/WildTrails/WT-Backend/internal/db"
	"github.com/WildTrails/WT-Backend/internal/factory"
	"github.com/WildTrails/WT-Backend/internal/utils"
)

// TopToursHandler is the /top-5-cheap alias: it presets the query parameters
// and hands off to the regular list pipeline.
func TopToursHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	q.Set("limit", "5")
	q.Set("sort", "-ratings_average,price")
	q.Set("fields", "id,name,price,ratings_average,summary,difficulty")
	r.URL.RawQuery = q.Encode()

	factory.GetAll[Tour]()(w, r)
}

type tourStats struct {
	Difficulty string  `json:"difficulty"`
	NumTours   int     `json:"num_tours"`
	AvgRating  float64 `json:"avg_rating"`
	AvgPrice   float64 `json:"avg_price"`
	MinPrice   float64 `json:"min_price"`
	MaxPrice   float64 `json:"max_price"`
}

// TourStatsHandler aggregates well-rated tours per difficulty.
func TourStatsHandler(w http.ResponseWriter, r *http.Request) {
	var stats []tourStats
	err := db.DB.WithContext(r.Context()).
		Model(&Tour{}).
		Select("difficulty",
			"COUNT(*) AS num_tours",
			"AVG(ratings_average) AS avg_rating",
			"AVG(price) AS avg_price",
			"MIN(price) AS min_price",
			"MAX(price) AS max_price").
		Where("ratings_average >= ?", 4.5).
		Group("difficulty").
		Order("avg_price").
		Scan(&stats).Error
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	utils.RespondData(w, http.StatusOK, map[string]any{"stats": stats})
}
