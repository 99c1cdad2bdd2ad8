package accounts

import (
	"github.com/WildTrails/WT-Backend/internal/utils"
)

// AccountInfo adapts the store to middleware.AccountFetcher. Deactivated
// accounts are invisible to FindByID, so their tokens die with them.
type AccountInfo struct{}

func (AccountInfo) FindAccountByID(id string) (utils.AccountData, error) {
	user, err := store.FindByID(id)
	if err != nil {
		return utils.AccountData{}, err
	}

	return utils.AccountData{
		ID:                user.ID,
		Name:              user.Name,
		Email:             user.Email,
		Role:              user.Role,
		PasswordChangedAt: user.PasswordChangedAt,
	}, nil
}
