package client

import (
	"context"
	"fmt"

	domain "github.com/BruksfildServices01/library-api/internal/domain/client"
	"github.com/BruksfildServices01/library-api/internal/httperr"
)

type ListClients struct {
	repo domain.Repository
}

func NewListClients(repo domain.Repository) *ListClients {
	return &ListClients{repo: repo}
}

// Execute reports an empty registry as not found rather than as an
// empty list; API clients depend on the 404.
func (uc *ListClients) Execute(ctx context.Context) ([]domain.ListItem, error) {
	clients, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}

	if len(clients) == 0 {
		return nil, httperr.ErrNotFound(codeNoClients, msgNoClients)
	}

	items := make([]domain.ListItem, 0, len(clients))
	for _, c := range clients {
		items = append(items, domain.NewListItem(c))
	}
	return items, nil
}
