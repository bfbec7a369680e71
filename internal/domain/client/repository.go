package client

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/library-api/internal/models"
)

var (
	ErrClientNotFound   = errors.New("client not found")
	ErrDuplicateClient  = errors.New("client email or cpf already registered")
	ErrClientHasRentals = errors.New("client has rentals")
)

// Field names a unique client column usable as a lookup key.
type Field string

const (
	FieldCPF   Field = "cpf"
	FieldEmail Field = "email"
)

type Condition struct {
	Field Field
	Value string
}

// Repository is the client record store. Lookups of absent records
// return ErrClientNotFound; writes that would break a uniqueness
// constraint return ErrDuplicateClient.
type Repository interface {
	FindByField(ctx context.Context, field Field, value string) (*models.Client, error)

	// FindByAnyOf matches a client satisfying at least one condition.
	FindByAnyOf(ctx context.Context, conds ...Condition) (*models.Client, error)

	FindByCPFWithRentals(ctx context.Context, cpf string) (*models.Client, error)

	Insert(ctx context.Context, c *models.Client) error

	Update(ctx context.Context, cpf string, patch Patch) (*models.Client, error)

	// Delete returns ErrClientHasRentals when a rental still references
	// the client at the time of the delete.
	Delete(ctx context.Context, cpf string) error

	ListAll(ctx context.Context) ([]models.Client, error)
}
