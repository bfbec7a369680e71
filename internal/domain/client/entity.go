package client

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/library-api/internal/models"
	"github.com/BruksfildServices01/library-api/internal/validators"
)

// Input carries the fields a caller supplies to create a client.
type Input struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	CPF       string `json:"cpf"`
	Telephone string `json:"telephone"`
	Address   string `json:"address"`
}

// Normalized trims every field, lower-cases the email and reduces the
// CPF to its digits, which is the form persisted and used for lookups.
func (in Input) Normalized() Input {
	return Input{
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		CPF:       validators.OnlyDigits(in.CPF),
		Telephone: strings.TrimSpace(in.Telephone),
		Address:   strings.TrimSpace(in.Address),
	}
}

func (in Input) Model() *models.Client {
	return &models.Client{
		Name:      in.Name,
		Email:     in.Email,
		CPF:       in.CPF,
		Telephone: in.Telephone,
		Address:   in.Address,
	}
}

// Patch is a partial update; nil fields keep their stored value.
type Patch struct {
	Name      *string `json:"name"`
	Email     *string `json:"email"`
	CPF       *string `json:"cpf"`
	Telephone *string `json:"telephone"`
	Address   *string `json:"address"`
}

func (p Patch) Normalized() Patch {
	trim := func(s *string) *string {
		if s == nil {
			return nil
		}
		v := strings.TrimSpace(*s)
		return &v
	}

	out := Patch{
		Name:      trim(p.Name),
		Email:     trim(p.Email),
		Telephone: trim(p.Telephone),
		Address:   trim(p.Address),
	}
	if out.Email != nil {
		*out.Email = strings.ToLower(*out.Email)
	}
	if p.CPF != nil {
		v := validators.OnlyDigits(*p.CPF)
		out.CPF = &v
	}
	return out
}

func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.CPF == nil && p.Telephone == nil && p.Address == nil
}

// Columns maps the present fields to their column names.
func (p Patch) Columns() map[string]any {
	cols := make(map[string]any, 5)
	if p.Name != nil {
		cols["name"] = *p.Name
	}
	if p.Email != nil {
		cols["email"] = *p.Email
	}
	if p.CPF != nil {
		cols["cpf"] = *p.CPF
	}
	if p.Telephone != nil {
		cols["telephone"] = *p.Telephone
	}
	if p.Address != nil {
		cols["address"] = *p.Address
	}
	return cols
}

// View is the projection returned for a single client.
type View struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CPF       string    `json:"cpf"`
	Telephone string    `json:"telephone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ListItem is the projection used by listings. It deliberately omits
// the surrogate id: clients are addressed by CPF on the wire.
type ListItem struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CPF       string    `json:"cpf"`
	Telephone string    `json:"telephone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewView(c *models.Client) View {
	return View{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		CPF:       c.CPF,
		Telephone: c.Telephone,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func NewListItem(c models.Client) ListItem {
	return ListItem{
		Name:      c.Name,
		Email:     c.Email,
		CPF:       c.CPF,
		Telephone: c.Telephone,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
