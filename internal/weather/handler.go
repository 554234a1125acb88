package weather

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"platehub/internal/restaurants"
	"platehub/pkg/responses"
	"platehub/pkg/store"
)

type Handler struct {
	RDB       *redis.Client
	Client    *Client
	Directory *restaurants.Repo
}

func NewHandler(rdb *redis.Client, client *Client, directory *restaurants.Repo) *Handler {
	return &Handler{RDB: rdb, Client: client, Directory: directory}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/:restaurantId/weather", restaurants.RequireRestaurant(h.Directory), h.current)
}

func (h *Handler) current(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("restaurantId")

	location, err := h.RDB.HGet(ctx, store.RestaurantKey(id), "location").Result()
	if err != nil && err != redis.Nil {
		responses.Error(c, http.StatusInternalServerError, "failed to read restaurant location")
		return
	}
	if location == "" {
		responses.Error(c, http.StatusNotFound, "location not found for this restaurant")
		return
	}

	data, err := h.Client.Current(ctx, location, c.DefaultQuery("units", "metric"))
	if err != nil {
		var upstream *UpstreamError
		if errors.As(err, &upstream) {
			responses.Error(c, upstream.Status, "error fetching weather data")
			return
		}
		responses.Error(c, http.StatusBadGateway, "error fetching weather data")
		return
	}

	responses.Success(c, data, "")
}
