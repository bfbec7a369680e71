package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/BruksfildServices01/library-api/internal/audit"
	domain "github.com/BruksfildServices01/library-api/internal/domain/client"
	"github.com/BruksfildServices01/library-api/internal/httperr"
)

type CreateClient struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateClient(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateClient {
	return &CreateClient{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreateClient) Execute(
	ctx context.Context,
	in domain.Input,
) (*domain.View, error) {

	// --------------------------------------------------
	// 1️⃣ Validação (todas as falhas de uma vez)
	// --------------------------------------------------
	in = in.Normalized()
	if errs := domain.Validate(in); len(errs) > 0 {
		return nil, httperr.ErrValidation(msgValidation, errs)
	}

	// --------------------------------------------------
	// 2️⃣ Duplicidade de e-mail ou CPF
	// --------------------------------------------------
	_, err := uc.repo.FindByAnyOf(ctx,
		domain.Condition{Field: domain.FieldEmail, Value: in.Email},
		domain.Condition{Field: domain.FieldCPF, Value: in.CPF},
	)
	switch {
	case err == nil:
		return nil, httperr.ErrDuplicate(codeDuplicate, msgDuplicate)
	case !errors.Is(err, domain.ErrClientNotFound):
		return nil, fmt.Errorf("check client uniqueness: %w", err)
	}

	// --------------------------------------------------
	// 3️⃣ Inserção (a constraint única fecha a corrida)
	// --------------------------------------------------
	client := in.Model()
	if err := uc.repo.Insert(ctx, client); err != nil {
		if errors.Is(err, domain.ErrDuplicateClient) {
			return nil, httperr.ErrDuplicate(codeDuplicate, msgDuplicate)
		}
		return nil, fmt.Errorf("insert client: %w", err)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   audit.ActorFrom(ctx),
		Action:   audit.ActionClientCreated,
		Entity:   audit.EntityClient,
		EntityID: &client.ID,
		Metadata: map[string]any{"cpf": client.CPF},
	})

	view := domain.NewView(client)
	return &view, nil
}
