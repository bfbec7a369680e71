package client

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/BruksfildServices01/library-api/internal/validators"
)

const (
	MsgNameRequired      = "Nome é obrigatório"
	MsgNameEmpty         = "Nome não pode ser vazio"
	MsgEmailRequired     = "Email é obrigatório"
	MsgEmailInvalid      = "Email inválido"
	MsgCPFRequired       = "CPF é obrigatório"
	MsgCPFInvalid        = "CPF inválido"
	MsgTelephoneRequired = "Telefone é obrigatório"
	MsgTelephoneEmpty    = "Telefone não pode ser vazio"
	MsgAddressRequired   = "Endereço é obrigatório"
	MsgAddressEmpty      = "Endereço não pode ser vazio"
)

// fieldOrder fixes the order in which failures are reported.
var fieldOrder = []string{"name", "email", "cpf", "telephone", "address"}

var cpfRule = validation.By(func(value any) error {
	v, isNil := validation.Indirect(value)
	if isNil {
		return nil
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return nil
	}
	if !validators.IsCPF(s) {
		return errors.New(MsgCPFInvalid)
	}
	return nil
})

// Validate checks every rule of a creation input and returns all the
// failures at once, one message per offending field. The input is
// expected to be Normalized.
func Validate(in Input) []string {
	err := validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required.Error(MsgNameRequired)),
		validation.Field(&in.Email,
			validation.Required.Error(MsgEmailRequired),
			validation.Match(validators.EmailRX).Error(MsgEmailInvalid),
		),
		validation.Field(&in.CPF, validation.Required.Error(MsgCPFRequired), cpfRule),
		validation.Field(&in.Telephone, validation.Required.Error(MsgTelephoneRequired)),
		validation.Field(&in.Address, validation.Required.Error(MsgAddressRequired)),
	)
	return messages(err)
}

// ValidatePatch applies the same rules to the fields present in p; an
// absent field is never an error, a present one may not be blank.
func ValidatePatch(p Patch) []string {
	err := validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.NilOrNotEmpty.Error(MsgNameEmpty)),
		validation.Field(&p.Email,
			validation.NilOrNotEmpty.Error(MsgEmailRequired),
			validation.Match(validators.EmailRX).Error(MsgEmailInvalid),
		),
		validation.Field(&p.CPF, validation.NilOrNotEmpty.Error(MsgCPFRequired), cpfRule),
		validation.Field(&p.Telephone, validation.NilOrNotEmpty.Error(MsgTelephoneEmpty)),
		validation.Field(&p.Address, validation.NilOrNotEmpty.Error(MsgAddressEmpty)),
	)
	return messages(err)
}

func messages(err error) []string {
	if err == nil {
		return nil
	}

	var errs validation.Errors
	if !errors.As(err, &errs) {
		return []string{err.Error()}
	}

	out := make([]string, 0, len(errs))
	for _, field := range fieldOrder {
		if fe, ok := errs[field]; ok && fe != nil {
			out = append(out, fe.Error())
		}
	}
	return out
}
