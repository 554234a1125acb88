package restaurants

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"platehub/pkg/responses"
)

// RequireRestaurant guards every route addressed by restaurant id. It
// runs before any other store access, so a miss aborts the request with
// no side effects (no view count, no partial writes).
func RequireRestaurant(repo *Repo) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("restaurantId")
		if id == "" {
			responses.AbortError(c, http.StatusBadRequest, "restaurant id required")
			return
		}

		ok, err := repo.Exists(c.Request.Context(), id)
		if err != nil {
			responses.AbortError(c, http.StatusInternalServerError, "existence check failed")
			return
		}
		if !ok {
			responses.AbortError(c, http.StatusNotFound, "restaurant not found")
			return
		}

		c.Next()
	}
}
