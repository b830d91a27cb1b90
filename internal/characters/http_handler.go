package characters

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"go.uber.org/zap"

	"github.com/rpattn/marvel/internal/characterloader"
	"github.com/rpattn/marvel/internal/domain"
	"github.com/rpattn/marvel/internal/middleware"
	"github.com/rpattn/marvel/internal/repository"
)

// Handler serves the characters page, its JSON API and the xlsx export.
type Handler struct {
	repo   repository.CharacterRepository
	logger *zap.Logger
	mux    *http.ServeMux
}

// NewHTTPHandler wires the character routes onto a mux.
func NewHTTPHandler(repo repository.CharacterRepository, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Handler{repo: repo, logger: logger, mux: http.NewServeMux()}
	h.mux.HandleFunc("GET /characters", h.handlePage)
	h.mux.HandleFunc("GET /characters/export", h.handleExport)
	h.mux.HandleFunc("GET /api/characters", h.handleList)
	h.mux.HandleFunc("GET /api/characters/{id}", h.handleGet)
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// load runs the route loader and derives the view from the request's query.
func (h *Handler) load(r *http.Request) (ViewModel, error) {
	characters, err := h.repo.List(r.Context())
	if err != nil {
		return ViewModel{}, err
	}
	return Render(characters, domain.ParseCharacterSort(r.URL.Query())), nil
}

func (h *Handler) handlePage(w http.ResponseWriter, r *http.Request) {
	vm, err := h.load(r)
	if err != nil {
		h.fail(w, r, "load characters", err)
		return
	}
	templ.Handler(Page(vm)).ServeHTTP(w, r)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	vm, err := h.load(r)
	if err != nil {
		h.fail(w, r, "load characters", err)
		return
	}
	writeJSON(w, http.StatusOK, vm)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		http.Error(w, "character id is required", http.StatusBadRequest)
		return
	}

	loader := middleware.CharacterLoaderFromContext(r.Context())
	if loader == nil {
		loader = characterloader.NewCharacterLoader(h.repo)
	}
	character, err := loader.Load(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, fmt.Sprintf("character %q not found", id), http.StatusNotFound)
			return
		}
		h.fail(w, r, "load character", err)
		return
	}
	writeJSON(w, http.StatusOK, character)
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	vm, err := h.load(r)
	if err != nil {
		h.fail(w, r, "load characters", err)
		return
	}

	var buf bytes.Buffer
	if err := WriteWorkbook(&buf, vm); err != nil {
		h.fail(w, r, "export characters", err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", ExportFilename(vm)))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, action string, err error) {
	h.logger.Error("request failed",
		zap.String("action", action),
		zap.String("request_id", middleware.RequestIDFromContext(r.Context())),
		zap.Error(err))
	http.Error(w, fmt.Sprintf("%s: %v", action, err), http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(payload)
}
