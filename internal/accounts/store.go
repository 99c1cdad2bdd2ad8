package accounts

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/WildTrails/WT-Backend/internal/apperror"
)

const resetTokenTTL = 10 * time.Minute

// Store owns every read and write of account records. Reads merge the
// active-only predicate so deactivated accounts disappear from all default
// lookups; writes run the explicit hash pipeline instead of ORM hooks.
type Store struct {
	db   *gorm.DB
	cost int
}

func NewStore(db *gorm.DB, bcryptCost int) *Store {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Store{db: db, cost: bcryptCost}
}

// ActiveOnly is the default read predicate: deactivated accounts are
// excluded from every lookup unless a caller opts out explicitly.
func ActiveOnly(q *gorm.DB) *gorm.DB {
	return q.Where("active = ?", true)
}

func (s *Store) active() *gorm.DB {
	return ActiveOnly(s.db)
}

// beforeWrite hashes the plaintext password when one is set and clears the
// confirmation. The plaintext never reaches the database.
func (s *Store) beforeWrite(user *User) error {
	if user.Password == "" {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), s.cost)
	if err != nil {
		return err
	}
	user.HashedPassword = string(hashed)
	user.Password = ""
	user.PasswordConfirm = ""
	return nil
}

// Create persists a new account with a freshly computed hash. A unique-index
// conflict on email comes back as a ValidationError.
func (s *Store) Create(user *User) error {
	user.Email = NormalizeEmail(user.Email)
	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	if err := s.beforeWrite(user); err != nil {
		return err
	}

	if err := s.db.Create(user).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperror.Validation("This email is already registered. Please use another one.")
		}
		return err
	}
	return nil
}

func (s *Store) FindByID(id string) (User, error) {
	var user User
	err := s.active().First(&user, "id = ?", id).Error
	return user, err
}

func (s *Store) FindByEmail(email string) (User, error) {
	var user User
	err := s.active().First(&user, "email = ?", NormalizeEmail(email)).Error
	return user, err
}

// ComparePassword checks a plaintext password against the stored hash.
func ComparePassword(user *User, plaintext string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(plaintext))
	return err == nil
}

// SetPassword rehashes, stamps the password-change instant and clears any
// pending reset token, all in one update. The stamp is backdated one second
// so a token issued in the same second as the change still reads as stale.
func (s *Store) SetPassword(user *User, plaintext string) error {
	user.Password = plaintext
	if err := s.beforeWrite(user); err != nil {
		return err
	}

	changedAt := time.Now().Add(-1 * time.Second)
	user.PasswordChangedAt = &changedAt
	user.PasswordResetToken = ""
	user.PasswordResetExpires = nil

	return s.db.Model(user).Updates(map[string]any{
		"hashed_password":        user.HashedPassword,
		"password_changed_at":    user.PasswordChangedAt,
		"password_reset_token":   "",
		"password_reset_expires": nil,
	}).Error
}

// NewResetToken generates the plaintext reset token and stores only its
// SHA-256 hash with a 10-minute expiry. The plaintext goes to the user's
// mailbox and nowhere else.
func (s *Store) NewResetToken(user *User) (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	plaintext := hex.EncodeToString(raw)

	expires := time.Now().Add(resetTokenTTL)
	user.PasswordResetToken = HashResetToken(plaintext)
	user.PasswordResetExpires = &expires

	err := s.db.Model(user).Updates(map[string]any{
		"password_reset_token":   user.PasswordResetToken,
		"password_reset_expires": user.PasswordResetExpires,
	}).Error
	if err != nil {
		return "", err
	}
	return plaintext, nil
}

// ClearResetToken is the compensating half of the forgot-password pair: if
// the plaintext token could not be delivered, neither field may remain set.
func (s *Store) ClearResetToken(user *User) error {
	user.PasswordResetToken = ""
	user.PasswordResetExpires = nil

	return s.db.Model(user).Updates(map[string]any{
		"password_reset_token":   "",
		"password_reset_expires": nil,
	}).Error
}

// FindByResetToken resolves a hashed reset token to its account, requiring a
// live expiry. A consumed (cleared) or expired token matches nothing.
func (s *Store) FindByResetToken(hashedToken string) (User, error) {
	var user User
	err := s.active().
		Where("password_reset_token = ?", hashedToken).
		Where("password_reset_expires > ?", time.Now()).
		First(&user).Error
	return user, err
}

// UpdateProfile applies a name/email/photo patch. Callers are responsible
// for filtering the patch down to those columns.
func (s *Store) UpdateProfile(user *User, patch map[string]any) error {
	if email, ok := patch["email"].(string); ok {
		patch["email"] = NormalizeEmail(email)
	}

	err := s.db.Model(user).Updates(patch).Error
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperror.Validation("This email is already registered. Please use another one.")
		}
	}
	return err
}

// Deactivate is the standard delete path: the record stays, the account
// drops out of every default lookup.
func (s *Store) Deactivate(id string) error {
	return s.db.Model(&User{ID: id}).Update("active", false).Error
}

// HashResetToken is the one-way transform applied to reset tokens before
// they touch the database.
func HashResetToken(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}
