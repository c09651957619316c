package internal

import (
	"sharepile/file-api/internal/storage"
	"sharepile/file-api/pkg/security"

	"gorm.io/gorm"
)

// Deps holds everything the handlers need, built once at startup and
// passed in explicitly instead of living in package globals.
type Deps struct {
	DB    *gorm.DB
	Argon *security.ArgonHash
	Store *storage.Store
}
