package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/kanban-web/internal/constants"
	"github.com/yukikurage/kanban-web/internal/dto"
)

// GetListParams extracts and clamps skip/limit query parameters
func GetListParams(c *gin.Context) dto.ListParams {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(constants.DefaultLimit)))

	if skip < 0 {
		skip = 0
	}
	if limit < 1 || limit > constants.MaxLimit {
		limit = constants.DefaultLimit
	}

	return dto.ListParams{
		Skip:  skip,
		Limit: limit,
	}
}
