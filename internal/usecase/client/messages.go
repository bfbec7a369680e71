package client

const (
	msgValidation     = "Erro de validação."
	msgDuplicate      = "E-mail ou CPF já cadastrado."
	msgDuplicateOther = "E-mail ou CPF já está em uso por outro cliente."
	msgNotFound       = "Cliente não encontrado."
	msgNoClients      = "Nenhum cliente encontrado."
	msgHasRentals     = "Cliente possui histórico de aluguéis e não pode ser removido."
	msgCPFRequired    = "CPF do cliente é obrigatório."
	msgEmptyPatch     = "Nenhum campo para atualizar."

	codeDuplicate  = "client_already_exists"
	codeNotFound   = "client_not_found"
	codeNoClients  = "no_clients"
	codeHasRentals = "client_has_rentals"
	codeMissingCPF = "missing_cpf"
	codeEmptyPatch = "empty_patch"
)
