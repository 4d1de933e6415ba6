package lookup

import (
	"net/http"
	"strconv"

	"movieapi/internal/httpx"
	"movieapi/internal/logger"
)

type HTTPHandler struct {
	svc *Service
}

func NewHTTPHandler(svc *Service) *HTTPHandler {
	return &HTTPHandler{svc: svc}
}

type listParams struct {
	Limit int `validate:"min=1,max=100"`
}

// List handles GET /v1/lookups
// @Summary List recent movie lookups
// @Description Audit trail of relayed movie queries, newest first
// @Tags lookups
// @Produce json
// @Param limit query int false "Maximum rows" default(20)
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /v1/lookups [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	params := listParams{Limit: DefaultLimit}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters",
				[]httpx.ErrorDetail{{Field: "limit", Message: "limit must be a number"}})
			return
		}
		params.Limit = n
	}
	if details := httpx.ValidateStruct(params); details != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters", details)
		return
	}

	items, err := h.svc.Recent(r.Context(), params.Limit)
	if err != nil {
		logger.For(r.Context()).WithError(err).Error("list lookups")
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccess(w, r, items, map[string]any{
		"count": len(items),
		"limit": params.Limit,
	})
}
