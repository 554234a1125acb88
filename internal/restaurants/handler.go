package restaurants

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"platehub/internal/cuisines"
	"platehub/internal/leaderboard"
	"platehub/pkg/responses"
)

type Handler struct {
	Repo     *Repo
	Cuisines *cuisines.Repo
	Board    *leaderboard.Board
}

func NewHandler(repo *Repo, cuisineRepo *cuisines.Repo, board *leaderboard.Board) *Handler {
	return &Handler{Repo: repo, Cuisines: cuisineRepo, Board: board}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.list)   // GET /restaurants
	rg.POST("", h.create) // POST /restaurants
	rg.GET("/:restaurantId", RequireRestaurant(h.Repo), h.detail)
}

type createReq struct {
	Name     string   `json:"name" binding:"required"`
	Location string   `json:"location" binding:"required"`
	Cuisines []string `json:"cuisines" binding:"required,min=1,dive,required"`
}

// list pages the directory in leaderboard order, highest average first.
func (h *Handler) list(c *gin.Context) {
	start, end := PageRange(c.Query("page"), c.Query("limit"), 10)

	ids, err := h.Board.RangeDesc(c.Request.Context(), start, end)
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "failed to list restaurants")
		return
	}

	items, err := h.Repo.GetByIDs(c.Request.Context(), ids)
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "failed to list restaurants")
		return
	}
	responses.Success(c, items, "")
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Error(c, http.StatusBadRequest, "name, location and cuisines are required")
		return
	}

	ctx := c.Request.Context()
	restaurant, err := h.Repo.Create(ctx, strings.TrimSpace(req.Name), strings.TrimSpace(req.Location))
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "create failed")
		return
	}

	if err := h.Cuisines.Register(ctx, restaurant.ID, req.Cuisines); err != nil {
		responses.Error(c, http.StatusInternalServerError, "create failed")
		return
	}
	// Score 0 puts new restaurants at the bottom of the board right away.
	if err := h.Board.Upsert(ctx, restaurant.ID, 0); err != nil {
		responses.Error(c, http.StatusInternalServerError, "create failed")
		return
	}

	restaurant.Cuisines = req.Cuisines
	responses.Success(c, restaurant, "Added new restaurant")
}

func (h *Handler) detail(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("restaurantId")

	restaurant, err := h.Repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			responses.Error(c, http.StatusNotFound, "restaurant not found")
			return
		}
		responses.Error(c, http.StatusInternalServerError, "get failed")
		return
	}

	names, err := h.Cuisines.ListCuisinesOf(ctx, id)
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "get failed")
		return
	}
	restaurant.Cuisines = names

	responses.Success(c, restaurant, "")
}

// PageRange converts 1-indexed page/limit query params into the
// inclusive zero-based rank range the store structures use.
func PageRange(pageRaw, limitRaw string, defLimit int) (start, end int64) {
	page := parseInt(pageRaw, 1)
	limit := parseInt(limitRaw, defLimit)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defLimit
	}
	start = int64(page-1) * int64(limit)
	end = start + int64(limit) - 1
	return start, end
}

func parseInt(s string, def int) int {
	if strings.TrimSpace(s) == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
