package handlers

import (
	"net/http"

	"reward-center/internal/domain"
	"reward-center/internal/solana"
	"reward-center/pkg/logger"

	"github.com/labstack/echo/v4"
)

type StatsHandler struct {
	statsCache domain.CollectionStatsCache
	log        logger.Logger
}

func NewStatsHandler(statsCache domain.CollectionStatsCache, log logger.Logger) *StatsHandler {
	return &StatsHandler{
		statsCache: statsCache,
		log:        log,
	}
}

func (h *StatsHandler) GetCollectionStats(c echo.Context) error {
	collection, err := solana.PubkeyFromBase58(c.Param("collection"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid collection address"})
	}

	stats, err := h.statsCache.GetStats(c.Request().Context(), collection)
	if err != nil {
		h.log.Error("Failed to read collection stats", "error", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"collection":      collection,
		"active_listings": stats.ActiveListings,
		"open_offers":     stats.OpenOffers,
	})
}
