package search

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"platehub/internal/restaurants"
	"platehub/pkg/responses"
	"platehub/pkg/store"
)

type Handler struct {
	RDB *redis.Client
}

func NewHandler(rdb *redis.Client) *Handler {
	return &Handler{RDB: rdb}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/search", h.search) // GET /restaurants/search
}

type hit struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	AvgStars float64 `json:"avg_stars"`
}

func (h *Handler) search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		responses.Error(c, http.StatusBadRequest, "q is required")
		return
	}

	start, end := restaurants.PageRange(c.Query("page"), c.Query("limit"), 10)

	result, err := h.RDB.FTSearchWithArgs(c.Request.Context(), store.IndexKey, q, &redis.FTSearchOptions{
		LimitOffset: int(start),
		Limit:       int(end - start + 1),
	}).Result()
	if err != nil {
		// No index or no search module on this instance.
		responses.Error(c, http.StatusServiceUnavailable, "search is unavailable")
		return
	}

	hits := make([]hit, 0, len(result.Docs))
	for _, doc := range result.Docs {
		item := hit{
			ID:   doc.Fields["id"],
			Name: doc.Fields["name"],
		}
		if avg, err := strconv.ParseFloat(doc.Fields["avg_stars"], 64); err == nil {
			item.AvgStars = avg
		}
		hits = append(hits, item)
	}

	responses.Success(c, gin.H{"total": result.Total, "items": hits}, "")
}
