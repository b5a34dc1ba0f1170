package repository

import authdomain "jobsense-backend/internal/auth/domain"

// UserRepository persists user accounts and their refresh tokens. Lookups
// return (nil, nil) when the row is absent.
type UserRepository interface {
	Create(user *authdomain.User) error
	FindByEmail(email string) (*authdomain.User, error)
	FindByID(id string) (*authdomain.User, error)
	Update(user *authdomain.User) error

	SaveRefreshToken(token *authdomain.RefreshToken) error
	FindRefreshToken(token string) (*authdomain.RefreshToken, error)
	DeleteRefreshToken(token string) error
}
