// Kinograph - Movie Catalog and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinograph

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/kinograph/internal/logging"
	"github.com/tomtom215/kinograph/internal/metadata"
	"github.com/tomtom215/kinograph/internal/models"
	"github.com/tomtom215/kinograph/internal/recommend"
)

// respondServiceError translates errors from the catalog service, the
// upstream client, and the recommendation engine into the structured error
// contract. Unknown errors become a generic 500 so internal details never
// leak to clients. The failure is logged with the request's correlation
// fields before translation.
func respondServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	logging.CtxErr(ctx, err).Msg("Service request failed")

	switch {
	case errors.Is(err, metadata.ErrNotFound):
		respondError(w, http.StatusNotFound, models.ErrCodeNotFound, "Movie not found", err)
	case errors.Is(err, recommend.ErrItemNotFound):
		respondError(w, http.StatusNotFound, models.ErrCodeNotFound, "Movie not in the recommendation corpus", err)
	case metadata.IsUnavailable(err):
		respondError(w, http.StatusServiceUnavailable, models.ErrCodeUpstreamUnavailable, "Upstream metadata provider temporarily unavailable", err)
	case errors.Is(err, recommend.ErrNotTrained):
		respondError(w, http.StatusServiceUnavailable, models.ErrCodeModelNotReady, "Recommendation model is not trained yet", err)
	case errors.Is(err, recommend.ErrTrainingInProgress):
		respondError(w, http.StatusConflict, models.ErrCodeTrainingInProgress, "A training run is already in progress", err)
	case isUpstreamError(err):
		respondError(w, http.StatusBadGateway, models.ErrCodeUpstreamError, "Upstream metadata provider returned an error", err)
	default:
		respondError(w, http.StatusInternalServerError, models.ErrCodeInternalError, "Internal server error", err)
	}
}

func isUpstreamError(err error) bool {
	var ue *metadata.UpstreamError
	return errors.As(err, &ue)
}
