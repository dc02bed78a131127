package sqldb

import (
	"errors"
	"fmt"

	"github.com/jinzhu/gorm"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"

	"github.com/VitaminP8/blogery/models"
)

const pqUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqUniqueViolation
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}

	return false
}

// storeErr переводит ошибку драйвера в таксономию models
func storeErr(op string, err error) error {
	if gorm.IsRecordNotFoundError(err) {
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	return fmt.Errorf("%s: %w: %w", op, models.ErrStoreUnavailable, err)
}

// passThrough оставляет ошибки таксономии (возвращенные из транзакции) как есть
func passThrough(op string, err error) error {
	for _, known := range []error{
		models.ErrNotFound,
		models.ErrDuplicateEmail,
		models.ErrDuplicateTitle,
		models.ErrStoreUnavailable,
	} {
		if errors.Is(err, known) {
			return err
		}
	}
	return storeErr(op, err)
}

// withTx выполняет fn в транзакции. Ошибка BEGIN или COMMIT - недоступное хранилище;
// ошибка fn возвращается как есть после отката.
func withTx(db *gorm.DB, op string, fn func(tx *gorm.DB) error) error {
	tx := db.Begin()
	if tx.Error != nil {
		return storeErr(op+": begin", tx.Error)
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit().Error; err != nil {
		return storeErr(op+": commit", err)
	}
	return nil
}
