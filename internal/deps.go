package internal

import (
	"boycottwatch/catalog-api/internal/service"
	"boycottwatch/catalog-api/pkg/security"

	"gorm.io/gorm"
)

// Deps carries the shared collaborators every handler receives. Uploader
// and Mailer are interfaces so tests can swap them out.
type Deps struct {
	DB       *gorm.DB
	Argon    *security.ArgonHash
	Tokens   *security.TokenCodec
	Uploader service.Uploader
	Mailer   service.Mailer
}
