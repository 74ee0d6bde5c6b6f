package contact

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"contact-service/common/httputil"

	"github.com/go-chi/chi/v5"
)

//go:generate go run github.com/a-h/templ/cmd/templ@v0.3.906 generate

const maxBodyBytes = 64 << 10

// SuccessMessage is returned to JSON clients after a stored submission.
const SuccessMessage = "Message sent successfully"

type Handler struct {
	service Service
	logger  *slog.Logger
}

func NewHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.HandleFunc("/contact", h.Contact)
}

// Contact dispatches on method: OPTIONS preflight, GET form page, POST submit.
func (h *Handler) Contact(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		httputil.RespondWithHTML(w, r, http.StatusOK, FormPage(r.URL.Path))
	case http.MethodPost:
		h.Submit(w, r)
	default:
		httputil.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	isJSON := strings.Contains(strings.ToLower(r.Header.Get("Content-Type")), "application/json")

	var req SubmitRequest
	if isJSON {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.WarnContext(r.Context(), "failed to decode submission", "error", err)
			httputil.RespondWithJSON(w, http.StatusBadRequest, SubmitResponse{Message: "Invalid request body"})
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			h.logger.WarnContext(r.Context(), "failed to parse submission form", "error", err)
			httputil.RespondWithJSON(w, http.StatusBadRequest, SubmitResponse{Message: "Invalid request body"})
			return
		}
		req = SubmitRequest{
			Name:    r.PostForm.Get("name"),
			Email:   r.PostForm.Get("email"),
			Phone:   r.PostForm.Get("phone"),
			Subject: r.PostForm.Get("subject"),
			Message: r.PostForm.Get("message"),
		}
	}

	submission, err := h.service.Submit(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			h.logger.InfoContext(r.Context(), "submission rejected", "error", err)
			httputil.RespondWithJSON(w, http.StatusBadRequest, SubmitResponse{Message: RequiredFieldsMessage})
			return
		}
		cause := err
		var storeErr *StoreError
		if errors.As(err, &storeErr) {
			cause = storeErr.Err
		}
		httputil.RespondWithJSON(w, http.StatusInternalServerError, SubmitResponse{Message: "Database error: " + cause.Error()})
		return
	}

	if !isJSON {
		httputil.RespondWithHTML(w, r, http.StatusOK, ThankYouPage(submission.ID))
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, SubmitResponse{
		Success:      true,
		Message:      SuccessMessage,
		SubmissionID: submission.ID,
	})
}
