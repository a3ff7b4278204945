// Package store is the gorm-backed Resource Store: transactional CRUD over
// users and todos behind small repository interfaces.
package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/todozero/todozero/internal/models"
)

const DefaultLimit = 10

// Page is offset/limit pagination. Both values are expected to be
// non-negative; callers validate.
type Page struct {
	Limit  int
	Offset int
}

// DefaultPage is the page used when the client does not ask for one.
func DefaultPage() Page {
	return Page{Limit: DefaultLimit}
}

// TodoFilter narrows a todo listing. Title and Description are
// case-insensitive substring matches, State is exact. Empty means "any".
type TodoFilter struct {
	Title       string
	Description string
	State       models.TodoState
}

type Users interface {
	// Create inserts user after checking that neither its username nor its
	// email is taken. Collisions are reported as *apperr.ConflictError,
	// username first.
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error)
	List(ctx context.Context, page Page) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	// Delete removes the user and every todo it owns.
	Delete(ctx context.Context, user *models.User) error
}

// Todos never exposes an unscoped lookup: every read and write is keyed by
// the owner.
type Todos interface {
	Create(ctx context.Context, todo *models.Todo) error
	FindOwned(ctx context.Context, ownerID, id uint) (*models.Todo, error)
	ListFiltered(ctx context.Context, ownerID uint, filter TodoFilter, page Page) ([]models.Todo, error)
	Update(ctx context.Context, todo *models.Todo) error
	Delete(ctx context.Context, todo *models.Todo) error
}

// Tx is a unit of work. Repositories obtained from the same Tx share one
// database transaction.
type Tx interface {
	Users() Users
	Todos() Todos
}

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Transact runs fn inside a transaction. It commits when fn returns nil and
// rolls back on error or panic.
func (s *Store) Transact(ctx context.Context, fn func(tx Tx) error) error {
	return s.db.WithContext(ctx).Transaction(func(db *gorm.DB) error {
		return fn(&gormTx{db: db})
	})
}

// Session returns a non-transactional handle, for single reads such as
// resolving the caller's identity.
func (s *Store) Session(ctx context.Context) Tx {
	return &gormTx{db: s.db.WithContext(ctx)}
}

type gormTx struct {
	db *gorm.DB
}

func (t *gormTx) Users() Users {
	return &userRepository{db: t.db}
}

func (t *gormTx) Todos() Todos {
	return &todoRepository{db: t.db}
}
