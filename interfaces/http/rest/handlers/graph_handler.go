package handlers

import (
	"net/http"

	"riboflavin-backend/application/services"
	"riboflavin-backend/domain/transcript"
	"riboflavin-backend/pkg/common"
	"riboflavin-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// GraphHandler handles graph read and mutation requests
type GraphHandler struct {
	service       *services.GraphService
	viewportWidth float64
	logger        *zap.Logger
}

// NewGraphHandler creates a new graph handler
func NewGraphHandler(service *services.GraphService, viewportWidth float64, logger *zap.Logger) *GraphHandler {
	return &GraphHandler{
		service:       service,
		viewportWidth: viewportWidth,
		logger:        logger,
	}
}

// CreateNoteRequest represents the request body for creating a blank note
type CreateNoteRequest struct {
	ColumnID string `json:"columnId" validate:"required"`
}

// UpdateNoteRequest represents the request body for editing a note
type UpdateNoteRequest struct {
	Content string `json:"content"`
}

// ConnectRequest represents the request body for connecting two notes
type ConnectRequest struct {
	Source string `json:"source" validate:"required"`
	Target string `json:"target" validate:"required"`
}

// AnnotationRequest represents the request body for adding an annotation note
type AnnotationRequest struct {
	Content  string `json:"content" validate:"required"`
	SourceID string `json:"sourceId" validate:"required"`
	EdgeType string `json:"edgeType,omitempty" validate:"omitempty,oneof=smoothstep yes no ellipsis"`
}

// ScrollBoundsRequest represents the request body for scroll bound calculation
type ScrollBoundsRequest struct {
	VisibleHeight float64 `json:"visibleHeight" validate:"required,gt=0"`
}

// IngestDocumentRequest wraps an externally produced transcript document
type IngestDocumentRequest struct {
	Document      transcript.Document `json:"document"`
	ViewportWidth float64             `json:"viewportWidth,omitempty"`
}

// GetGraph handles GET /api/graph
func (h *GraphHandler) GetGraph(w http.ResponseWriter, r *http.Request) {
	common.RespondRaw(w, http.StatusOK, h.service.View())
}

// IngestDocument handles POST /api/graph/ingest
func (h *GraphHandler) IngestDocument(w http.ResponseWriter, r *http.Request) {
	var req IngestDocumentRequest
	if err := common.ParseJSONBody(r, &req, 8<<20); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "invalid request body: "+err.Error())
		return
	}

	viewport := req.ViewportWidth
	if viewport <= 0 {
		viewport = h.viewportWidth
	}
	h.service.IngestDocument(req.Document, viewport)

	common.RespondRaw(w, http.StatusOK, h.service.View())
}

// CreateNote handles POST /api/graph/notes
func (h *GraphHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var req CreateNoteRequest
	if err := common.ParseJSONBody(r, &req, 1<<16); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, err.Error())
		return
	}

	id, ok := h.service.CreateNote(req.ColumnID)
	if !ok {
		common.RespondError(w, http.StatusNotFound, common.StandardErrorCodes.NotFound, "column not found")
		return
	}

	common.RespondRaw(w, http.StatusCreated, map[string]string{"id": id})
}

// UpdateNote handles PUT /api/graph/notes/{noteID}
func (h *GraphHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	noteID := chi.URLParam(r, "noteID")

	var req UpdateNoteRequest
	if err := common.ParseJSONBody(r, &req, 1<<20); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "invalid request body: "+err.Error())
		return
	}

	if !h.service.UpdateNoteContent(noteID, req.Content) {
		common.RespondError(w, http.StatusNotFound, common.StandardErrorCodes.NotFound, "note not found")
		return
	}

	common.RespondRaw(w, http.StatusOK, map[string]string{"id": noteID})
}

// DeleteNote handles DELETE /api/graph/notes/{noteID}
func (h *GraphHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	noteID := chi.URLParam(r, "noteID")

	if !h.service.DeleteNote(noteID) {
		common.RespondError(w, http.StatusNotFound, common.StandardErrorCodes.NotFound, "note not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Connect handles POST /api/graph/edges
func (h *GraphHandler) Connect(w http.ResponseWriter, r *http.Request) {
	var req ConnectRequest
	if err := common.ParseJSONBody(r, &req, 1<<16); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, err.Error())
		return
	}

	id := h.service.Connect(req.Source, req.Target)
	common.RespondRaw(w, http.StatusCreated, map[string]string{"id": id})
}

// AddAnnotation handles POST /api/graph/annotations
func (h *GraphHandler) AddAnnotation(w http.ResponseWriter, r *http.Request) {
	var req AnnotationRequest
	if err := common.ParseJSONBody(r, &req, 1<<20); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, err.Error())
		return
	}

	id, ok := h.service.AddAnnotationNote(req.Content, req.SourceID, req.EdgeType)
	if !ok {
		common.RespondError(w, http.StatusNotFound, common.StandardErrorCodes.NotFound, "source note not found")
		return
	}

	common.RespondRaw(w, http.StatusCreated, map[string]string{
		"id":           id,
		"lastEdgeType": h.service.LastEdgeType(),
	})
}

// ScrollBounds handles POST /api/graph/scroll-bounds
func (h *GraphHandler) ScrollBounds(w http.ResponseWriter, r *http.Request) {
	var req ScrollBoundsRequest
	if err := common.ParseJSONBody(r, &req, 1<<16); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, err.Error())
		return
	}

	common.RespondRaw(w, http.StatusOK, h.service.ScrollBounds(req.VisibleHeight))
}
