package controllers

import (
	"log/slog"
	"net/http"

	"bugninjaplatform/internal/delivery/http/helpers"
	"bugninjaplatform/internal/domain"
)

// DeleteResponse is the response body of every DELETE endpoint.
type DeleteResponse struct {
	Status string `json:"status"`
}

// DeleteSuccessResponse is the success response envelope of DELETE endpoints (200).
type DeleteSuccessResponse struct {
	Data  DeleteResponse    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// writeError maps err to a status and writes it. Only unexpected failures are logged;
// backend failures are already logged by the client.
func writeError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	status, code := helpers.StatusFor(err)
	if status == http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	}
	helpers.WriteJSONError(w, status, code, helpers.ErrorMessage(err))
}

func writeDeleted(w http.ResponseWriter) {
	helpers.WriteJSONSuccess(w, http.StatusOK, DeleteResponse{Status: "deleted"})
}

// listParams parses the list query string, writing a 400 on failure.
func listParams(w http.ResponseWriter, r *http.Request) (domain.ListParams, bool) {
	p, err := helpers.ParseListParams(r)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return p, false
	}
	return p, true
}
