package sqldb

import (
	"fmt"

	"github.com/jinzhu/gorm"

	"github.com/VitaminP8/blogery/models"
)

type UserSQLStorage struct {
	db *gorm.DB
}

func NewUserSQLStorage(db *gorm.DB) *UserSQLStorage {
	return &UserSQLStorage{db: db}
}

func (s *UserSQLStorage) CreateUser(name, email, passwordHash string) (*models.User, error) {
	user := &models.User{
		Name:     name,
		Email:    email,
		Password: passwordHash,
	}

	err := withTx(s.db, "could not create user", func(tx *gorm.DB) error {
		// проверка - существует ли такой пользователь
		var count int
		if err := tx.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return storeErr("could not check email", err)
		}
		if count > 0 {
			return fmt.Errorf("user %s: %w", email, models.ErrDuplicateEmail)
		}

		// уникальный индекс ловит гонку между проверкой и вставкой
		if err := tx.Create(user).Error; err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("user %s: %w", email, models.ErrDuplicateEmail)
			}
			return storeErr("could not create user", err)
		}
		return nil
	})
	if err != nil {
		return nil, passThrough("could not create user", err)
	}

	return user, nil
}

func (s *UserSQLStorage) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, storeErr(fmt.Sprintf("could not get user %s", email), err)
	}
	return &user, nil
}

func (s *UserSQLStorage) GetUserById(id uint) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, id).Error
	if err != nil {
		return nil, storeErr(fmt.Sprintf("could not get user %d", id), err)
	}
	return &user, nil
}
