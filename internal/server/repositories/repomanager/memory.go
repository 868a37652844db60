package repomanager

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/azarubkin/classnotes/internal/common"
	"github.com/azarubkin/classnotes/internal/dbx"
	"github.com/azarubkin/classnotes/internal/server/models"
	"github.com/azarubkin/classnotes/internal/server/repositories/annotationsets"
	"github.com/azarubkin/classnotes/internal/server/repositories/books"
	"github.com/azarubkin/classnotes/internal/server/repositories/classes"
	"github.com/azarubkin/classnotes/internal/server/repositories/memberships"
	"github.com/azarubkin/classnotes/internal/server/repositories/notes"
	"github.com/azarubkin/classnotes/internal/server/repositories/users"
)

// MemoryRepositoryManager is an in-memory RepositoryManager used by tests
// and local experiments. It enforces the same uniqueness constraints and
// cascade rules as the Postgres schema so service-level behavior matches.
// The DBTX argument is ignored; all repositories share one locked store.
type MemoryRepositoryManager struct {
	mu sync.Mutex

	users          map[string]*models.User
	classes        map[string]*models.Class
	memberships    map[string]*models.ClassUser
	books          map[string]*models.Book
	annotationSets map[string]*models.AnnotationSet
	notes          map[string]*models.Note
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		users:          make(map[string]*models.User),
		classes:        make(map[string]*models.Class),
		memberships:    make(map[string]*models.ClassUser),
		books:          make(map[string]*models.Book),
		annotationSets: make(map[string]*models.AnnotationSet),
		notes:          make(map[string]*models.Note),
	}
}

func (m *MemoryRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return nil
}

func (m *MemoryRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return &memUsers{m}
}

func (m *MemoryRepositoryManager) Classes(db dbx.DBTX) classes.Repository {
	return &memClasses{m}
}

func (m *MemoryRepositoryManager) Memberships(db dbx.DBTX) memberships.Repository {
	return &memMemberships{m}
}

func (m *MemoryRepositoryManager) Books(db dbx.DBTX) books.Repository {
	return &memBooks{m}
}

func (m *MemoryRepositoryManager) AnnotationSets(db dbx.DBTX) annotationsets.Repository {
	return &memAnnotationSets{m}
}

func (m *MemoryRepositoryManager) Notes(db dbx.DBTX) notes.Repository {
	return &memNotes{m}
}

// cascade helpers; callers hold the lock.

func (m *MemoryRepositoryManager) deleteSetLocked(setID string) {
	for id, n := range m.notes {
		if n.AnnotationSetID == setID {
			delete(m.notes, id)
		}
	}
	delete(m.annotationSets, setID)
}

func (m *MemoryRepositoryManager) deleteMembershipLocked(cuID string) {
	for id, s := range m.annotationSets {
		if s.ClassUserID == cuID {
			m.deleteSetLocked(id)
		}
	}
	delete(m.memberships, cuID)
}

type memUsers struct{ m *MemoryRepositoryManager }

func (r *memUsers) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, u := range r.m.users {
		if u.Username == user.Username {
			return nil, common.ErrorConflict
		}
	}
	clone := *user
	r.m.users[user.ID] = &clone
	return user, nil
}

func (r *memUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	u, ok := r.m.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *memUsers) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, u := range r.m.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *memUsers) Update(ctx context.Context, user *models.User) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.users[user.ID]; !ok {
		return common.ErrorNotFound
	}
	for _, u := range r.m.users {
		if u.Username == user.Username && u.ID != user.ID {
			return common.ErrorConflict
		}
	}
	clone := *user
	r.m.users[user.ID] = &clone
	return nil
}

func (r *memUsers) Delete(ctx context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.users[id]; !ok {
		return common.ErrorNotFound
	}
	for cuID, cu := range r.m.memberships {
		if cu.UserID == id {
			r.m.deleteMembershipLocked(cuID)
		}
	}
	delete(r.m.users, id)
	return nil
}

type memClasses struct{ m *MemoryRepositoryManager }

func (r *memClasses) Create(ctx context.Context, class *models.Class) (*models.Class, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	clone := *class
	r.m.classes[class.ID] = &clone
	return class, nil
}

func (r *memClasses) GetByID(ctx context.Context, id string) (*models.Class, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	c, ok := r.m.classes[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *memClasses) Update(ctx context.Context, class *models.Class) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.classes[class.ID]; !ok {
		return common.ErrorNotFound
	}
	clone := *class
	r.m.classes[class.ID] = &clone
	return nil
}

func (r *memClasses) Delete(ctx context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.classes[id]; !ok {
		return common.ErrorNotFound
	}
	for cuID, cu := range r.m.memberships {
		if cu.ClassID == id {
			r.m.deleteMembershipLocked(cuID)
		}
	}
	delete(r.m.classes, id)
	return nil
}

type memMemberships struct{ m *MemoryRepositoryManager }

func (r *memMemberships) Create(ctx context.Context, cu *models.ClassUser) (*models.ClassUser, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, existing := range r.m.memberships {
		if existing.ClassID == cu.ClassID && existing.UserID == cu.UserID {
			return nil, common.ErrorConflict
		}
	}
	clone := *cu
	r.m.memberships[cu.ID] = &clone
	return cu, nil
}

func (r *memMemberships) Get(ctx context.Context, classID, userID string) (*models.ClassUser, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, cu := range r.m.memberships {
		if cu.ClassID == classID && cu.UserID == userID {
			clone := *cu
			return &clone, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *memMemberships) GetByID(ctx context.Context, id string) (*models.ClassUser, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	cu, ok := r.m.memberships[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	clone := *cu
	return &clone, nil
}

func (r *memMemberships) ListByClass(ctx context.Context, classID string) ([]*models.ClassMember, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var result []*models.ClassMember
	for _, cu := range r.m.memberships {
		if cu.ClassID != classID {
			continue
		}
		u, ok := r.m.users[cu.UserID]
		if !ok {
			continue
		}
		result = append(result, &models.ClassMember{
			UserID:          u.ID,
			Name:            u.Name,
			Permission:      u.Permission,
			ClassPermission: cu.Permission,
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *memMemberships) UpdatePermission(ctx context.Context, id string, permission models.Permission) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	cu, ok := r.m.memberships[id]
	if !ok {
		return common.ErrorNotFound
	}
	cu.Permission = permission
	return nil
}

func (r *memMemberships) Delete(ctx context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.memberships[id]; !ok {
		return common.ErrorNotFound
	}
	r.m.deleteMembershipLocked(id)
	return nil
}

type memBooks struct{ m *MemoryRepositoryManager }

func (r *memBooks) Create(ctx context.Context, book *models.Book) (*models.Book, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	clone := *book
	r.m.books[book.ID] = &clone
	return book, nil
}

func (r *memBooks) GetByID(ctx context.Context, id string) (*models.Book, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	b, ok := r.m.books[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *memBooks) List(ctx context.Context) ([]*models.Book, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var result []*models.Book
	for _, b := range r.m.books {
		clone := *b
		result = append(result, &clone)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *memBooks) Delete(ctx context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.books[id]; !ok {
		return common.ErrorNotFound
	}
	for setID, s := range r.m.annotationSets {
		if s.BookID == id {
			r.m.deleteSetLocked(setID)
		}
	}
	delete(r.m.books, id)
	return nil
}

type memAnnotationSets struct{ m *MemoryRepositoryManager }

func (r *memAnnotationSets) Create(ctx context.Context, set *models.AnnotationSet) (*models.AnnotationSet, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, existing := range r.m.annotationSets {
		if existing.ClassUserID == set.ClassUserID && existing.BookID == set.BookID {
			return nil, common.ErrorConflict
		}
	}
	clone := *set
	r.m.annotationSets[set.ID] = &clone
	return set, nil
}

func (r *memAnnotationSets) Get(ctx context.Context, classUserID, bookID string) (*models.AnnotationSet, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, s := range r.m.annotationSets {
		if s.ClassUserID == classUserID && s.BookID == bookID {
			clone := *s
			return &clone, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *memAnnotationSets) GetByID(ctx context.Context, id string) (*models.AnnotationSet, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	s, ok := r.m.annotationSets[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *memAnnotationSets) Delete(ctx context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.annotationSets[id]; !ok {
		return common.ErrorNotFound
	}
	r.m.deleteSetLocked(id)
	return nil
}

type memNotes struct{ m *MemoryRepositoryManager }

func (r *memNotes) Create(ctx context.Context, note *models.Note) (*models.Note, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	clone := *note
	r.m.notes[note.ID] = &clone
	return note, nil
}

func (r *memNotes) GetByID(ctx context.Context, id string) (*models.Note, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	n, ok := r.m.notes[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	clone := *n
	return &clone, nil
}

func (r *memNotes) ListBySet(ctx context.Context, annotationSetID string) ([]*models.Note, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var result []*models.Note
	for _, n := range r.m.notes {
		if n.AnnotationSetID == annotationSetID {
			clone := *n
			result = append(result, &clone)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *memNotes) Update(ctx context.Context, note *models.Note) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.notes[note.ID]; !ok {
		return common.ErrorNotFound
	}
	clone := *note
	r.m.notes[note.ID] = &clone
	return nil
}

func (r *memNotes) Delete(ctx context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.notes[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.m.notes, id)
	return nil
}
