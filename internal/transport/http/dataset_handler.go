package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "github.com/lukeuthy/phLaborMarketPredictiveAnalytics/internal/errors"
	"github.com/lukeuthy/phLaborMarketPredictiveAnalytics/internal/services"
)

// DatasetHandler handles dataset-related HTTP requests.
type DatasetHandler struct {
	service  DatasetServiceInterface
	logger   *slog.Logger
	validate *validator.Validate
}

// NewDatasetHandler creates a new dataset handler.
func NewDatasetHandler(service DatasetServiceInterface, logger *slog.Logger) *DatasetHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DatasetHandler{
		service:  service,
		logger:   logger.With(slog.String("component", "dataset_handler")),
		validate: validator.New(),
	}
}

// Routes returns the dataset routes.
func (h *DatasetHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/load", h.LoadDataset)
	r.Get("/", h.GetDataset)
	r.Get("/summary", h.GetSummary)
	r.Get("/validation", h.GetValidation)
	r.Get("/validation/report", h.GetValidationReport)
	r.Post("/features", h.BuildFeatures)
	r.Post("/export", h.ExportDataset)

	return r
}

// LoadRequest is the payload for POST /load.
type LoadRequest struct {
	Path string `json:"path" validate:"required"`
}

// ExportRequest is the payload for POST /export.
type ExportRequest struct {
	Destination string `json:"destination"`
}

// LoadDataset handles POST /api/v1/dataset/load
func (h *DatasetHandler) LoadDataset(w http.ResponseWriter, r *http.Request) {
	var req LoadRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.renderError(w, r, apierrors.NewAPIError(http.StatusBadRequest, "INVALID_REQUEST", "Invalid request format"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.renderError(w, r, h.validationError(err))
		return
	}

	dataset, err := h.service.Load(r.Context(), req.Path)
	if err != nil {
		h.handleServiceError(w, r, err, "load dataset")
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"meta":   dataset.Meta,
	})
}

// GetDataset handles GET /api/v1/dataset
func (h *DatasetHandler) GetDataset(w http.ResponseWriter, r *http.Request) {
	dataset, err := h.service.Dataset(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err, "get dataset")
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status":       "success",
		"meta":         dataset.Meta,
		"observations": dataset.Observations,
	})
}

// GetSummary handles GET /api/v1/dataset/summary
func (h *DatasetHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.SummaryStatistics(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err, "summary statistics")
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status":     "success",
		"indicators": stats,
	})
}

// GetValidation handles GET /api/v1/dataset/validation
func (h *DatasetHandler) GetValidation(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Validate(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err, "validate dataset")
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status":     "success",
		"validation": report,
	})
}

// GetValidationReport handles GET /api/v1/dataset/validation/report
func (h *DatasetHandler) GetValidationReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.ValidationReport(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err, "validation report")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(report))
}

// BuildFeatures handles POST /api/v1/dataset/features
func (h *DatasetHandler) BuildFeatures(w http.ResponseWriter, r *http.Request) {
	var req services.FeatureRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.renderError(w, r, apierrors.NewAPIError(http.StatusBadRequest, "INVALID_REQUEST", "Invalid request format"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.renderError(w, r, h.validationError(err))
		return
	}

	table, err := h.service.BuildFeatures(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, r, err, "build features")
		return
	}

	rows, cols := table.Shape()
	render.JSON(w, r, map[string]interface{}{
		"status":   "success",
		"rows":     rows,
		"columns":  cols,
		"features": table,
	})
}

// ExportDataset handles POST /api/v1/dataset/export
func (h *DatasetHandler) ExportDataset(w http.ResponseWriter, r *http.Request) {
	var req ExportRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.renderError(w, r, apierrors.NewAPIError(http.StatusBadRequest, "INVALID_REQUEST", "Invalid request format"))
		return
	}

	path, err := h.service.Export(r.Context(), req.Destination)
	if err != nil {
		h.handleServiceError(w, r, err, "export dataset")
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"path":   path,
	})
}

// handleServiceError maps pipeline errors onto API responses.
func (h *DatasetHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error, operation string) {
	h.logger.ErrorContext(r.Context(), "request failed",
		slog.String("operation", operation),
		slog.String("error", err.Error()))
	h.renderError(w, r, apierrors.FromError(err))
}

func (h *DatasetHandler) renderError(w http.ResponseWriter, r *http.Request, apiErr *apierrors.APIError) {
	render.Status(r, apiErr.StatusCode)
	render.JSON(w, r, apierrors.NewErrorResponse(apiErr))
}

// validationError converts validator.v10 failures into field-level details.
func (h *DatasetHandler) validationError(err error) *apierrors.APIError {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apierrors.NewAPIError(http.StatusBadRequest, "VALIDATION_FAILED", "Request validation failed")
	}

	fields := make([]apierrors.ValidationError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		fields = append(fields, apierrors.ValidationError{
			Field:   fe.Field(),
			Message: fe.Tag(),
		})
	}
	return apierrors.NewValidationErrors(fields)
}
