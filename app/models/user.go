package models

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base32"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	ROLE_USER       = "user"
	ROLE_ADMIN      = "admin"
	STATUS_ACTIVE   = "active"
	STATUS_INACTIVE = "inactive"
	STATUS_DISABLED = "disabled"
)

type User struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	Name               string         `gorm:"type:varchar(150)" json:"name" validate:"required,min=3,max=150"`
	Email              string         `gorm:"uniqueIndex;type:varchar(200) CHARACTER SET utf8 COLLATE utf8_bin" json:"email" validate:"required,email,min=5,max=200"`
	Password           string         `gorm:"type:text" json:"-" validate:"required,min=6"`
	Role               string         `gorm:"type:varchar(50);default:'user'" json:"role" validate:"oneof=user admin"`
	Status             string         `gorm:"type:varchar(50);default:'active'" json:"status" validate:"oneof=active inactive disabled"`
	Designation        string         `gorm:"type:varchar(200);default:null" json:"designation" validate:"max=200"`
	Institution        string         `gorm:"type:varchar(255);default:null" json:"institution" validate:"max=255"`
	APITokenHash       string         `gorm:"type:char(64);default:'';index" json:"-"`
	APITokenPrefix     string         `gorm:"type:varchar(20);default:''" json:"api_token_prefix"`
	APITokenCreatedAt  *time.Time     `gorm:"type:timestamp;default:null" json:"-"`
	APITokenLastUsedAt *time.Time     `gorm:"type:timestamp;default:null" json:"-"`
	LastLoginAt        *time.Time     `gorm:"type:timestamp;default:null" json:"last_login_at"`
	CreatedAt          time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) Validate() error {
	v := validator.New()

	return v.Struct(u)
}

func CreateUser(name string, email string, password string) (*User, error) {
	pw, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &User{
		Name:     name,
		Email:    email,
		Password: pw,
		Role:     ROLE_USER,
		Status:   STATUS_ACTIVE,
	}

	err = u.Validate()
	if err != nil {
		return nil, err
	}

	return u, nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	return string(bytes), err
}

// CheckPasswordHash compares the given password with the stored hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))

	return err == nil
}

// IsActive reports whether the user status is active
func (u *User) IsActive() bool {
	return u.Status == STATUS_ACTIVE
}

// CheckPassword verifies if the provided password matches the user's stored password
func (u *User) CheckPassword(password string) bool {
	return CheckPasswordHash(password, u.Password)
}

var apiTokenEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

const apiTokenPrefix = "sbh_"

// IssueAPIToken generates a new API token, stores its hash on the struct, and
// returns the raw secret. Callers must persist the struct afterwards; the raw
// token is never shown again.
func (u *User) IssueAPIToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	encoded := strings.ToLower(apiTokenEncoding.EncodeToString(b))
	rawToken := apiTokenPrefix + encoded
	if len(rawToken) < 12 {
		return "", fmt.Errorf("api token generation failed: token too short")
	}

	now := time.Now()
	u.APITokenHash = HashAPIToken(rawToken)
	u.APITokenPrefix = rawToken[:min(len(rawToken), 16)]
	u.APITokenCreatedAt = &now
	u.APITokenLastUsedAt = nil
	return rawToken, nil
}

// HasAPIToken reports whether the user has an API token configured
func (u *User) HasAPIToken() bool {
	return u != nil && u.APITokenHash != ""
}

// HashAPIToken returns the SHA-256 hash for the provided API token.
func HashAPIToken(raw string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(raw)))
	return hex.EncodeToString(sum[:])
}
