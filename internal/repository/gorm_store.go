package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// NewGormStore wires every repository to the same gorm handle.
// The handle should be opened with TranslateError so unique violations surface as ErrDuplicate.
func NewGormStore(db *gorm.DB) *Store {
	return NewStore(
		&gormUsers{db: db},
		&gormProducts{db: db},
		&gormCategories{db: db},
		&gormOrders{db: db},
		&gormPayments{db: db},
		func(context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	)
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	}
	return err
}

// rowsOrNotFound turns an update that matched nothing into ErrNotFound.
func rowsOrNotFound(res *gorm.DB) error {
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}
