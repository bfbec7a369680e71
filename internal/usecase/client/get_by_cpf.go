package client

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/BruksfildServices01/library-api/internal/domain/client"
	"github.com/BruksfildServices01/library-api/internal/httperr"
)

type GetClientByCPF struct {
	repo domain.Repository
}

func NewGetClientByCPF(repo domain.Repository) *GetClientByCPF {
	return &GetClientByCPF{repo: repo}
}

// Execute looks the CPF up exactly as given; callers pass the canonical
// digits-only form.
func (uc *GetClientByCPF) Execute(
	ctx context.Context,
	cpf string,
) (*domain.View, error) {

	client, err := uc.repo.FindByField(ctx, domain.FieldCPF, cpf)
	if err != nil {
		if errors.Is(err, domain.ErrClientNotFound) {
			return nil, httperr.ErrNotFound(codeNotFound, msgNotFound)
		}
		return nil, fmt.Errorf("find client by cpf: %w", err)
	}

	view := domain.NewView(client)
	return &view, nil
}
