// file:artkv/servs/s_art/art_serv/user.go
package art_serv

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User is an API account.
type User struct {
	ID           uint64 `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"default:user"` // admin, user
	CreatedAt    time.Time
}

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

var ErrCredentials = errors.New("username and password required")

// CreateUser creates a new user with a hashed password.
func CreateUser(db *gorm.DB, username, password, role string) error {
	if username == "" || password == "" {
		return ErrCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return db.Create(&User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	}).Error
}

// FindUserByUsername retrieves a user by name.
func FindUserByUsername(db *gorm.DB, username string) (*User, error) {
	var user User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// EnsureAdmin creates the admin account unless it already exists.
func EnsureAdmin(db *gorm.DB, username, password string) (bool, error) {
	_, err := FindUserByUsername(db, username)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	return true, CreateUser(db, username, password, RoleAdmin)
}

// CheckPassword compares pw with the stored hash.
func (u *User) CheckPassword(pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(pw)) == nil
}
