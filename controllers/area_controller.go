package controllers

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/our-area/api-go/models"
	"github.com/our-area/api-go/store"
)

type AreaController struct {
	Areas *store.Areas
}

func NewAreaController(areas *store.Areas) *AreaController {
	return &AreaController{Areas: areas}
}

func (ac *AreaController) ListAreas(c *gin.Context) {
	areas, err := ac.Areas.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching areas"})
		return
	}
	c.JSON(http.StatusOK, areas)
}

// GetNearbyAreas filters areas by Haversine distance from the query point.
// There is no spatial index; the area set is small reference data.
func (ac *AreaController) GetNearbyAreas(c *gin.Context) {
	// Zero is a legal coordinate, so presence is checked on the raw
	// query string rather than through binding.
	latStr, lngStr := c.Query("lat"), c.Query("lng")
	if latStr == "" || lngStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lng are required"})
		return
	}
	lat, errLat := strconv.ParseFloat(latStr, 64)
	lng, errLng := strconv.ParseFloat(lngStr, 64)
	if errLat != nil || errLng != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lng must be numbers"})
		return
	}
	radius := 10000.0
	if radiusStr := c.Query("radius"); radiusStr != "" {
		r, err := strconv.ParseFloat(radiusStr, 64)
		if err != nil || r <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "radius must be a positive number"})
			return
		}
		radius = r
	}

	areas, err := ac.Areas.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching areas"})
		return
	}

	nearby := make([]models.Area, 0)
	for _, area := range areas {
		distance := calculateDistance(lat, lng, area.CenterLat, area.CenterLng)
		if distance <= radius {
			area.Distance = distance
			nearby = append(nearby, area)
		}
	}

	c.JSON(http.StatusOK, nearby)
}

func calculateDistance(lat1, lon1, lat2, lon2 float64) float64 {
	const R = 6371000 // Earth's radius in meters

	φ1 := lat1 * math.Pi / 180
	φ2 := lat2 * math.Pi / 180
	Δφ := (lat2 - lat1) * math.Pi / 180
	Δλ := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(Δφ/2)*math.Sin(Δφ/2) +
		math.Cos(φ1)*math.Cos(φ2)*
			math.Sin(Δλ/2)*math.Sin(Δλ/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return R * c // Distance in meters
}
