package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/smart-kitchen/backend/internal/stock"
	"github.com/pageza/smart-kitchen/backend/internal/types"
)

// ListUnits returns the units a stock entry may use
func ListUnits(c *gin.Context) {
	units := make([]string, 0, len(stock.Units))
	for _, u := range stock.Units {
		units = append(units, string(u))
	}
	c.JSON(http.StatusOK, types.UnitsResponse{Units: units, Default: string(stock.DefaultUnit)})
}
