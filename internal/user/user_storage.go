package user

import (
	"github.com/VitaminP8/blogery/models"
)

type UserStorage interface {
	// CreateUser сохраняет пользователя с уже посчитанным хешем пароля.
	// Повторный email - models.ErrDuplicateEmail.
	CreateUser(name, email, passwordHash string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserById(id uint) (*models.User, error)
}
