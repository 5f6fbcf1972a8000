package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultStaleThresholdDays = 30
	MinStaleThresholdDays     = 7
	MaxStaleThresholdDays     = 120
)

type User struct {
	ID                 string    `json:"id"`
	GoogleID           string    `json:"-"`
	Email              string    `json:"email"`
	Name               string    `json:"name"`
	AccessToken        string    `json:"-"`
	RefreshToken       string    `json:"-"`
	TokenExpiry        time.Time `json:"-"`
	StaleThresholdDays int       `json:"staleThresholdDays"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

func NewUser(googleID, email, name, accessToken, refreshToken string, tokenExpiry time.Time) *User {
	now := time.Now()
	return &User{
		ID:                 uuid.New().String(),
		GoogleID:           googleID,
		Email:              email,
		Name:               name,
		AccessToken:        accessToken,
		RefreshToken:       refreshToken,
		TokenExpiry:        tokenExpiry,
		StaleThresholdDays: DefaultStaleThresholdDays,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// ClampStaleThreshold bounds a requested threshold to the supported range.
func ClampStaleThreshold(days int) int {
	if days < MinStaleThresholdDays {
		return MinStaleThresholdDays
	}
	if days > MaxStaleThresholdDays {
		return MaxStaleThresholdDays
	}
	return days
}
