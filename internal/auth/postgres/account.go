package postgres

import (
	"errors"
	"strings"

	"github.com/frahmantamala/employee-management/internal/auth"
	accountDatamodel "github.com/frahmantamala/employee-management/internal/core/datamodel/account"
	"gorm.io/gorm"
)

type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) auth.RepositoryAPI {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) GetByUsername(username string) (*auth.Account, error) {
	var m accountDatamodel.Account
	err := r.db.Where("username = ?", username).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("account not found")
		}
		return nil, err
	}
	return fromDataModel(&m), nil
}

func (r *AccountRepository) ExistsByUsernameOrEmail(username, email string) (bool, error) {
	var count int64
	err := r.db.Model(&accountDatamodel.Account{}).
		Where("username = ? OR email = ?", username, strings.ToLower(email)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// NextSequenceNumber allocates the legacy sno field. The unique index on
// sno catches the unlikely case of two registrations racing for the
// same number.
func (r *AccountRepository) NextSequenceNumber() (int64, error) {
	var max int64
	err := r.db.Model(&accountDatamodel.Account{}).
		Select("COALESCE(MAX(sno), 0)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}

func (r *AccountRepository) Create(a *auth.Account) error {
	m := &accountDatamodel.Account{
		Sno:          a.Sno,
		Username:     a.Username,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
	}
	if err := r.db.Create(m).Error; err != nil {
		if isDuplicateKey(err) {
			return auth.ErrAlreadyExists
		}
		return err
	}
	a.ID = m.ID
	return nil
}

func fromDataModel(m *accountDatamodel.Account) *auth.Account {
	return &auth.Account{
		ID:           m.ID,
		Sno:          m.Sno,
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
	}
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed")
}
