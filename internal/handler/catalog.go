package handler

import (
	"context"
	"net/http"

	"github.com/osse101/BrandishReveal_Go/internal/catalog"
	"github.com/osse101/BrandishReveal_Go/internal/domain"
)

// BoxLister lists the boxes a catalog knows
type BoxLister interface {
	Boxes(ctx context.Context) ([]catalog.Box, error)
}

// HandleListBoxes handles GET /api/v1/boxes
// @Summary List boxes
// @Tags catalog
// @Produce json
// @Success 200 {object} DataResponse{data=[]catalog.Box}
// @Router /boxes [get]
func HandleListBoxes(boxes BoxLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := boxes.Boxes(r.Context())
		if err != nil {
			respondServiceError(w, r, ErrMsgListBoxesFailed, err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: list})
	}
}

// HandleGetBoxPool handles GET /api/v1/boxes/{name}/pool. Spectator clients
// use it to preload item art.
// @Summary Get the item pool of a box
// @Tags catalog
// @Produce json
// @Param name path string true "Box name"
// @Success 200 {object} DataResponse{data=[]domain.PoolItem}
// @Failure 404 {object} ErrorResponse "Unknown box"
// @Router /boxes/{name}/pool [get]
func HandleGetBoxPool(items catalog.ItemCatalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name, ok := GetPathParam(r, w, ParamBoxName)
		if !ok {
			return
		}
		pool, err := items.Pool(r.Context(), name)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetPoolFailed, err)
			return
		}
		if len(pool) == 0 {
			respondServiceError(w, r, ErrMsgGetPoolFailed, domain.ErrBoxNotFound)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: pool})
	}
}
