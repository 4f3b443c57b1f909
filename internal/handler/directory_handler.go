package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sis-reg-api/internal/service"
	"github.com/noah-isme/sis-reg-api/pkg/response"
)

// DirectoryHandler exposes the student lookup endpoint.
type DirectoryHandler struct {
	directory *service.DirectoryService
}

// NewDirectoryHandler constructs DirectoryHandler.
func NewDirectoryHandler(directory *service.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directory: directory}
}

// Search godoc
// @Summary Search students for delegated registration
// @Tags Directory
// @Produce json
// @Param q query string true "Student id, code or name"
// @Success 200 {object} response.Envelope
// @Router /students/search [get]
func (h *DirectoryHandler) Search(c *gin.Context) {
	students, err := h.directory.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students, nil)
}
