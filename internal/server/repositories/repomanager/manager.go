// Package repomanager hands out repositories bound to a database handle or a
// transaction, so services can run several repositories in one dbx.WithTx.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/sambulosenda/glamfric-mobile/internal/dbx"
	"github.com/sambulosenda/glamfric-mobile/internal/server/repositories/businesses"
	"github.com/sambulosenda/glamfric-mobile/internal/server/repositories/users"
	"github.com/sambulosenda/glamfric-mobile/internal/server/repositories/verifications"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Verifications(db dbx.DBTX) verifications.Repository
	Businesses(db dbx.DBTX) businesses.Repository
}
