package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sis-reg-api/internal/models"
	"github.com/noah-isme/sis-reg-api/internal/service"
)

func TestDirectoryHandlerSearch(t *testing.T) {
	stub := &catalogStub{students: []models.Student{
		{ID: "stu-1", StudentID: "2026001", FullName: "Jana Doe"},
	}}
	handler := NewDirectoryHandler(service.NewDirectoryService(stub, service.DirectoryConfig{}, nil))

	c, w := testContext(t, http.MethodGet, "/students/search?q=jana", nil)
	handler.Search(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data []models.Student `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "2026001", envelope.Data[0].StudentID)
}

func TestDirectoryHandlerSearchShortQuery(t *testing.T) {
	handler := NewDirectoryHandler(service.NewDirectoryService(&catalogStub{}, service.DirectoryConfig{}, nil))

	c, w := testContext(t, http.MethodGet, "/students/search?q=j", nil)
	handler.Search(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data []models.Student `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Empty(t, envelope.Data)
}
