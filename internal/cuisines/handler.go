package cuisines

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"platehub/pkg/responses"
	"platehub/pkg/store"
)

type Handler struct {
	Repo *Repo
}

func NewHandler(repo *Repo) *Handler {
	return &Handler{Repo: repo}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.list)             // GET /cuisines
	rg.GET("/:cuisine", h.members) // GET /cuisines/:cuisine
}

func (h *Handler) list(c *gin.Context) {
	names, err := h.Repo.ListCuisines(c.Request.Context())
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "failed to list cuisines")
		return
	}
	responses.Success(c, names, "")
}

// members resolves the member ids to restaurant names, which is how the
// listing is presented. Unknown cuisines simply have no members.
func (h *Handler) members(c *gin.Context) {
	ctx := c.Request.Context()
	ids, err := h.Repo.ListRestaurantsByCuisine(ctx, c.Param("cuisine"))
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "failed to list restaurants")
		return
	}

	pipe := h.Repo.RDB.Pipeline()
	cmds := make([]*redis.StringCmd, 0, len(ids))
	for _, id := range ids {
		cmds = append(cmds, pipe.HGet(ctx, store.RestaurantKey(id), "name"))
	}
	// redis.Nil here only means a member id with no directory record;
	// skip those rather than failing the whole listing.
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		responses.Error(c, http.StatusInternalServerError, "failed to resolve restaurant names")
		return
	}

	names := make([]string, 0, len(cmds))
	for _, cmd := range cmds {
		if name, err := cmd.Result(); err == nil {
			names = append(names, name)
		}
	}
	responses.Success(c, names, "")
}
