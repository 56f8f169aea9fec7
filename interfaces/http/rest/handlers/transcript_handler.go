package handlers

import (
	"math/rand"
	"net/http"
	"time"

	"riboflavin-backend/application/services"
	"riboflavin-backend/domain/transcript"
	"riboflavin-backend/infrastructure/persistence/filestore"
	"riboflavin-backend/pkg/common"
	pkgerrors "riboflavin-backend/pkg/errors"
	"riboflavin-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// TranscriptHandler handles transcript upload, parsing and retrieval
type TranscriptHandler struct {
	service       *services.GraphService
	store         *filestore.Store
	viewportWidth float64
	logger        *zap.Logger
}

// NewTranscriptHandler creates a new transcript handler
func NewTranscriptHandler(
	service *services.GraphService,
	store *filestore.Store,
	viewportWidth float64,
	logger *zap.Logger,
) *TranscriptHandler {
	return &TranscriptHandler{
		service:       service,
		store:         store,
		viewportWidth: viewportWidth,
		logger:        logger,
	}
}

// SaveTextRequest represents the request body for saving raw transcript text
type SaveTextRequest struct {
	Content       string  `json:"content" validate:"required"`
	ViewportWidth float64 `json:"viewportWidth,omitempty"`
}

// ParseParagraphRequest represents the request body for the paragraph
// transcript parser
type ParseParagraphRequest struct {
	Content    string `json:"content" validate:"required"`
	Randomized bool   `json:"randomized,omitempty"`
	Seed       int64  `json:"seed,omitempty"`
}

// UploadRaw handles POST /upload-raw. Raw text arrives as the "text" form
// field; the parsed dialogue list is stored alongside it under the same id.
func (h *TranscriptHandler) UploadRaw(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "invalid form body")
		return
	}
	text := r.FormValue("text")
	if text == "" {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, "text is required")
		return
	}

	id, err := h.store.SaveRaw(text)
	if err != nil {
		h.respondStoreError(w, err)
		return
	}

	entries := transcript.ParseDialogue(text)
	if entries == nil {
		entries = []transcript.Entry{}
	}
	if err := h.store.WriteJSON(id+".json", entries); err != nil {
		h.respondStoreError(w, err)
		return
	}

	h.logger.Info("raw transcript uploaded",
		zap.String("fileID", id),
		zap.Int("entries", len(entries)),
	)
	common.RespondRaw(w, http.StatusOK, map[string]string{"parsed_filename": id + ".json"})
}

// GetParsed handles GET /parsed/{filename}
func (h *TranscriptHandler) GetParsed(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "filename")

	data, err := h.store.Read(name)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			common.RespondRaw(w, http.StatusNotFound, map[string]string{"error": "File not found"})
			return
		}
		h.respondStoreError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// SaveText handles POST /api/save-text: the raw text is stored, parsed into
// a transcript document, ingested into the live graph, and persisted as the
// latest parsed snapshot.
func (h *TranscriptHandler) SaveText(w http.ResponseWriter, r *http.Request) {
	var req SaveTextRequest
	if err := common.ParseJSONBody(r, &req, 1<<20); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, err.Error())
		return
	}

	rawName, err := h.store.SaveTimestampedRaw(req.Content)
	if err != nil {
		h.respondStoreError(w, err)
		return
	}

	viewport := req.ViewportWidth
	if viewport <= 0 {
		viewport = h.viewportWidth
	}

	doc, err := h.service.IngestText(req.Content, viewport)
	if err != nil {
		if appErr := pkgerrors.GetAppError(err); appErr != nil {
			common.RespondError(w, appErr.HTTPStatus, string(appErr.Type), appErr.Message)
			return
		}
		common.RespondError(w, http.StatusInternalServerError, common.StandardErrorCodes.InternalError, "failed to parse text")
		return
	}

	if err := h.store.WriteJSON(filestore.LatestParsedName, doc); err != nil {
		h.respondStoreError(w, err)
		return
	}

	common.RespondRaw(w, http.StatusOK, map[string]interface{}{
		"message":     "Text saved and parsed successfully",
		"raw_file":    rawName,
		"parsed_file": filestore.LatestParsedName,
		"parsed_data": doc,
	})
}

// GetParsedData handles GET /api/parsed-data, returning the latest parsed
// document, or an empty one when nothing has been parsed yet.
func (h *TranscriptHandler) GetParsedData(w http.ResponseWriter, r *http.Request) {
	data, err := h.store.Read(filestore.LatestParsedName)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			common.RespondRaw(w, http.StatusOK, transcript.Document{
				Columns: []transcript.DocumentColumn{},
				Edges:   []transcript.DocumentEdge{},
			})
			return
		}
		h.respondStoreError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// ParseParagraphTranscript handles POST /api/parse-paragraph-transcript,
// running the paragraph-style show parser and persisting the result.
func (h *TranscriptHandler) ParseParagraphTranscript(w http.ResponseWriter, r *http.Request) {
	var req ParseParagraphRequest
	if err := common.ParseJSONBody(r, &req, 4<<20); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.BadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.StandardErrorCodes.ValidationError, err.Error())
		return
	}

	var rng *rand.Rand
	if req.Randomized {
		seed := req.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}

	doc := transcript.ParseParagraphTranscript(req.Content, rng)
	if err := h.store.WriteJSON(filestore.LatestParsedName, doc); err != nil {
		h.respondStoreError(w, err)
		return
	}

	common.RespondRaw(w, http.StatusOK, map[string]interface{}{
		"message": "Data parsed and saved successfully",
		"data":    doc,
	})
}

// respondStoreError maps a filestore failure onto the HTTP response
func (h *TranscriptHandler) respondStoreError(w http.ResponseWriter, err error) {
	h.logger.Error("filestore operation failed", zap.Error(err))
	common.RespondError(w, http.StatusInternalServerError, common.StandardErrorCodes.InternalError, "storage failure")
}
