package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"

	"github.com/BruksfildServices01/library-api/internal/audit"
	domain "github.com/BruksfildServices01/library-api/internal/domain/client"
	"github.com/BruksfildServices01/library-api/internal/httperr"
	"github.com/BruksfildServices01/library-api/internal/httpresp"
	"github.com/BruksfildServices01/library-api/internal/middleware"
	ucClient "github.com/BruksfildServices01/library-api/internal/usecase/client"
)

// ======================================================
// HANDLER
// ======================================================

type ClientHandler struct {
	create *ucClient.CreateClient
	get    *ucClient.GetClientByCPF
	list   *ucClient.ListClients
	edit   *ucClient.EditClient
	delete *ucClient.DeleteClient

	log hclog.Logger
}

func NewClientHandler(
	create *ucClient.CreateClient,
	get *ucClient.GetClientByCPF,
	list *ucClient.ListClients,
	edit *ucClient.EditClient,
	del *ucClient.DeleteClient,
	log hclog.Logger,
) *ClientHandler {
	return &ClientHandler{
		create: create,
		get:    get,
		list:   list,
		edit:   edit,
		delete: del,
		log:    log,
	}
}

// ======================================================
// CREATE
// ======================================================

func (h *ClientHandler) Create(c *gin.Context) {
	var req domain.Input
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	view, err := h.create.Execute(requestContext(c), req)
	if err != nil {
		h.fail(c, "create", err)
		return
	}

	httpresp.Created(c, "Cliente criado com sucesso.", view)
}

// ======================================================
// GET BY CPF
// ======================================================

func (h *ClientHandler) GetByCPF(c *gin.Context) {
	view, err := h.get.Execute(requestContext(c), c.Param("cpf"))
	if err != nil {
		h.fail(c, "get", err)
		return
	}

	httpresp.OK(c, "Cliente encontrado.", view)
}

// ======================================================
// LIST
// ======================================================

func (h *ClientHandler) List(c *gin.Context) {
	items, err := h.list.Execute(requestContext(c))
	if err != nil {
		h.fail(c, "list", err)
		return
	}

	httpresp.List(c, "Listagem de clientes bem-sucedida.", items)
}

// ======================================================
// EDIT
// ======================================================

func (h *ClientHandler) Edit(c *gin.Context) {
	var req domain.Patch
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	view, err := h.edit.Execute(requestContext(c), c.Param("cpf"), req)
	if err != nil {
		h.fail(c, "edit", err)
		return
	}

	httpresp.OK(c, "Cliente atualizado com sucesso.", view)
}

// ======================================================
// DELETE
// ======================================================

func (h *ClientHandler) Delete(c *gin.Context) {
	if err := h.delete.Execute(requestContext(c), c.Param("cpf")); err != nil {
		h.fail(c, "delete", err)
		return
	}

	httpresp.OK(c, "Cliente removido com sucesso.", nil)
}

// ======================================================
// HELPERS
// ======================================================

func (h *ClientHandler) fail(c *gin.Context, op string, err error) {
	if !httperr.Respond(c, err) {
		h.log.Error("client operation failed",
			"op", op,
			"error", err,
			"request_id", c.GetString(middleware.ContextRequestID),
		)
	}
}

// requestContext carries the authenticated user, when there is one, into
// the use cases for auditing.
func requestContext(c *gin.Context) context.Context {
	ctx := c.Request.Context()
	if id, ok := c.Get(middleware.ContextUserID); ok {
		if userID, ok := id.(uint); ok {
			ctx = audit.WithActor(ctx, userID)
		}
	}
	return ctx
}
