package catalogControllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// paginate reads ?page= and ?limit= with the usual defaults (1, 10).
func paginate(c *gin.Context) (limit, offset int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return limit, (page - 1) * limit
}
