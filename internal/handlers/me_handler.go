package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/library-api/internal/httperr"
	"github.com/BruksfildServices01/library-api/internal/middleware"
	"github.com/BruksfildServices01/library-api/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userID, ok := c.MustGet(middleware.ContextUserID).(uint)
	if !ok {
		httperr.Unauthorized(c, "invalid_user_id_type", "Token inválido.")
		return
	}

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Write(c, http.StatusNotFound, "user_not_found", "Usuário não encontrado.")
			return
		}
		httperr.Internal(c, "internal_error", "Erro interno do servidor.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": newUserResponse(&user)})
}
