package service

import (
	"database/sql"

	"gorm.io/gorm"
)

// txRunner is the transactional slice of *gorm.DB the services depend on.
// *gorm.DB satisfies it directly; tests substitute a stub that runs the
// callback without a database.
type txRunner interface {
	Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error
}
