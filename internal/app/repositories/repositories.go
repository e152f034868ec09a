package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories is the container for all repository instances
type Repositories struct {
	StudentRepository *StudentRepository
	ShareRepository   *ShareRepository
	MotionRepository  *MotionRepository
	UserRepository    *UserRepository
	TokenRepository   *TokenRepository
}

// NewRepositories creates all repositories sharing one pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		StudentRepository: NewStudentRepository(db),
		ShareRepository:   NewShareRepository(db),
		MotionRepository:  NewMotionRepository(db),
		UserRepository:    NewUserRepository(db),
		TokenRepository:   NewTokenRepository(db),
	}
}
