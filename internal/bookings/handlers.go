package bookings

import (
	"net/http"

	"github.com/WildTrails/WT-Backend/internal/db"
	"github.com/WildTrails/WT-Backend/internal/utils"
)

// MyBookingsHandler lists the authenticated user's own bookings.
func MyBookingsHandler(w http.ResponseWriter, r *http.Request) {
	account, _ := utils.GetAccountFromContext(r.Context())

	var bookings []Booking
	err := db.DB.WithContext(r.Context()).
		Where("user_id = ?", account.ID).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	utils.RespondList(w, http.StatusOK, len(bookings), map[string]any{"data": bookings})
}
