package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/BruksfildServices01/library-api/internal/audit"
	domain "github.com/BruksfildServices01/library-api/internal/domain/client"
	"github.com/BruksfildServices01/library-api/internal/httperr"
)

type EditClient struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewEditClient(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *EditClient {
	return &EditClient{
		repo:  repo,
		audit: audit,
	}
}

func (uc *EditClient) Execute(
	ctx context.Context,
	cpf string,
	patch domain.Patch,
) (*domain.View, error) {

	// --------------------------------------------------
	// 1️⃣ CPF de rota
	// --------------------------------------------------
	if cpf == "" {
		return nil, httperr.ErrBadRequest(codeMissingCPF, msgCPFRequired)
	}

	// --------------------------------------------------
	// 2️⃣ Cliente atual
	// --------------------------------------------------
	current, err := uc.repo.FindByField(ctx, domain.FieldCPF, cpf)
	if err != nil {
		if errors.Is(err, domain.ErrClientNotFound) {
			return nil, httperr.ErrNotFound(codeNotFound, msgNotFound)
		}
		return nil, fmt.Errorf("find client to edit: %w", err)
	}

	// --------------------------------------------------
	// 3️⃣ Campos enviados
	// --------------------------------------------------
	patch = patch.Normalized()
	if patch.IsEmpty() {
		return nil, httperr.ErrBadRequest(codeEmptyPatch, msgEmptyPatch)
	}
	if errs := domain.ValidatePatch(patch); len(errs) > 0 {
		return nil, httperr.ErrValidation(msgValidation, errs)
	}

	// --------------------------------------------------
	// 4️⃣ Unicidade contra outros clientes
	// --------------------------------------------------
	// cada chave é conferida separadamente: uma busca com OR pode
	// devolver o próprio cliente e esconder a colisão com outro
	var conds []domain.Condition
	if patch.Email != nil {
		conds = append(conds, domain.Condition{Field: domain.FieldEmail, Value: *patch.Email})
	}
	if patch.CPF != nil {
		conds = append(conds, domain.Condition{Field: domain.FieldCPF, Value: *patch.CPF})
	}
	for _, cond := range conds {
		other, err := uc.repo.FindByField(ctx, cond.Field, cond.Value)
		switch {
		case err == nil && other.ID != current.ID:
			return nil, httperr.ErrDuplicate(codeDuplicate, msgDuplicateOther)
		case err != nil && !errors.Is(err, domain.ErrClientNotFound):
			return nil, fmt.Errorf("check client uniqueness: %w", err)
		}
	}

	// --------------------------------------------------
	// 5️⃣ Atualização parcial
	// --------------------------------------------------
	updated, err := uc.repo.Update(ctx, cpf, patch)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrClientNotFound):
			return nil, httperr.ErrNotFound(codeNotFound, msgNotFound)
		case errors.Is(err, domain.ErrDuplicateClient):
			return nil, httperr.ErrDuplicate(codeDuplicate, msgDuplicateOther)
		}
		return nil, fmt.Errorf("update client: %w", err)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   audit.ActorFrom(ctx),
		Action:   audit.ActionClientUpdated,
		Entity:   audit.EntityClient,
		EntityID: &updated.ID,
		Metadata: map[string]any{"cpf": cpf, "fields": fieldNames(patch)},
	})

	view := domain.NewView(updated)
	return &view, nil
}

func fieldNames(p domain.Patch) []string {
	cols := p.Columns()
	names := make([]string, 0, len(cols))
	for _, f := range []string{"name", "email", "cpf", "telephone", "address"} {
		if _, ok := cols[f]; ok {
			names = append(names, f)
		}
	}
	return names
}
