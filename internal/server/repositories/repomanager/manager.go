package repomanager

import (
	"context"
	"database/sql"

	"github.com/azarubkin/classnotes/internal/dbx"
	"github.com/azarubkin/classnotes/internal/server/repositories/annotationsets"
	"github.com/azarubkin/classnotes/internal/server/repositories/books"
	"github.com/azarubkin/classnotes/internal/server/repositories/classes"
	"github.com/azarubkin/classnotes/internal/server/repositories/memberships"
	"github.com/azarubkin/classnotes/internal/server/repositories/notes"
	"github.com/azarubkin/classnotes/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Classes(db dbx.DBTX) classes.Repository
	Memberships(db dbx.DBTX) memberships.Repository
	Books(db dbx.DBTX) books.Repository
	AnnotationSets(db dbx.DBTX) annotationsets.Repository
	Notes(db dbx.DBTX) notes.Repository
}
