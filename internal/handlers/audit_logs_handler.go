package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"

	"github.com/BruksfildServices01/library-api/internal/audit"
	"github.com/BruksfildServices01/library-api/internal/httperr"
)

const dateLayout = "2006-01-02"

type AuditLogsHandler struct {
	logs *audit.Logger
	log  hclog.Logger
}

func NewAuditLogsHandler(logs *audit.Logger, log hclog.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs, log: log}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}
	if page > audit.MaxPage {
		page = audit.MaxPage
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	filter := audit.Filter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		Page:   page,
		Limit:  limit,
	}

	// datas no formato AAAA-MM-DD; "to" inclui o dia inteiro
	if from, err := time.Parse(dateLayout, c.Query("from")); err == nil {
		filter.From = &from
	}
	if to, err := time.Parse(dateLayout, c.Query("to")); err == nil {
		end := to.Add(24*time.Hour - time.Nanosecond)
		filter.To = &end
	}

	logs, total, err := h.logs.List(c.Request.Context(), filter)
	if err != nil {
		h.log.Error("failed to list audit logs", "error", err)
		httperr.Internal(c, "audit_list_failed", "Erro ao listar logs.")
		return
	}

	c.JSON(200, gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"logs":  logs,
	})
}
