package reviews

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"platehub/internal/restaurants"
	"platehub/pkg/responses"
)

type Handler struct {
	Ledger      *Ledger
	Coordinator *Coordinator
	Directory   *restaurants.Repo
}

func NewHandler(ledger *Ledger, coordinator *Coordinator, directory *restaurants.Repo) *Handler {
	return &Handler{Ledger: ledger, Coordinator: coordinator, Directory: directory}
}

// RegisterRoutes attaches the review routes to the /restaurants group.
// Every route here is restaurant-scoped, so all of them sit behind the
// existence guard.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	guard := restaurants.RequireRestaurant(h.Directory)
	rg.POST("/:restaurantId/reviews", guard, h.create)
	rg.GET("/:restaurantId/reviews", guard, h.list)
	rg.DELETE("/:restaurantId/reviews/:reviewId", guard, h.delete)
}

type createReq struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Error(c, http.StatusBadRequest, "rating must be between 1 and 5")
		return
	}

	restaurantID := c.Param("restaurantId")
	res, err := h.Coordinator.Submit(c.Request.Context(), restaurantID, req.Rating, req.Comment)
	if err != nil {
		log.Printf("review submission for %s failed at stage %s: %v", restaurantID, res.Stage, err)
		responses.Error(c, http.StatusInternalServerError, "review submission failed")
		return
	}

	responses.Success(c, res.Review, "Review added")
}

func (h *Handler) list(c *gin.Context) {
	start, end := restaurants.PageRange(c.Query("page"), c.Query("limit"), 3)

	items, err := h.Ledger.Page(c.Request.Context(), c.Param("restaurantId"), start, end)
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "failed to list reviews")
		return
	}
	responses.Success(c, items, "")
}

func (h *Handler) delete(c *gin.Context) {
	reviewID := c.Param("reviewId")
	err := h.Ledger.Remove(c.Request.Context(), c.Param("restaurantId"), reviewID)
	if err != nil {
		if errors.Is(err, ErrReviewNotFound) {
			responses.Error(c, http.StatusNotFound, "review not found")
			return
		}
		responses.Error(c, http.StatusInternalServerError, "delete failed")
		return
	}
	responses.Success(c, reviewID, "Review deleted")
}
