package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/BruksfildServices01/library-api/internal/audit"
	domain "github.com/BruksfildServices01/library-api/internal/domain/client"
	"github.com/BruksfildServices01/library-api/internal/httperr"
)

type DeleteClient struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteClient(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteClient {
	return &DeleteClient{
		repo:  repo,
		audit: audit,
	}
}

// Execute removes a client permanently. Any rental, returned or not,
// blocks the removal.
func (uc *DeleteClient) Execute(ctx context.Context, cpf string) error {
	client, err := uc.repo.FindByCPFWithRentals(ctx, cpf)
	if err != nil {
		if errors.Is(err, domain.ErrClientNotFound) {
			return httperr.ErrNotFound(codeNotFound, msgNotFound)
		}
		return fmt.Errorf("find client to delete: %w", err)
	}

	if len(client.Rentals) > 0 {
		return httperr.ErrRelationConflict(codeHasRentals, msgHasRentals)
	}

	if err := uc.repo.Delete(ctx, cpf); err != nil {
		switch {
		case errors.Is(err, domain.ErrClientNotFound):
			return httperr.ErrNotFound(codeNotFound, msgNotFound)
		case errors.Is(err, domain.ErrClientHasRentals):
			return httperr.ErrRelationConflict(codeHasRentals, msgHasRentals)
		}
		return fmt.Errorf("delete client: %w", err)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   audit.ActorFrom(ctx),
		Action:   audit.ActionClientDeleted,
		Entity:   audit.EntityClient,
		EntityID: &client.ID,
		Metadata: map[string]any{"cpf": cpf},
	})

	return nil
}
