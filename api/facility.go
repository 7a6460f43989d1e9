package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/carecompass/carecompass-api/facility"
	"github.com/carecompass/carecompass-api/geo"
	"github.com/carecompass/carecompass-api/schema"
)

// listFacilities ranks the registry against the caller's coordinate and an
// optional urgency level. The coordinate is taken from lat/lng query
// parameters, or resolved from a free-form location string when absent.
func (s *Server) listFacilities(c *gin.Context) {
	origin, ok := s.requestOrigin(c)
	if !ok {
		return
	}

	var result *schema.TriageResult
	if urgency := c.Query("urgency"); urgency != "" {
		level := schema.UrgencyLevel(urgency)
		if !level.Valid() {
			abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
			return
		}
		result = &schema.TriageResult{UrgencyLevel: level}
	}

	c.JSON(http.StatusOK, gin.H{
		"facilities": facility.Rank(s.registry, result, origin),
	})
}

func (s *Server) requestOrigin(c *gin.Context) (schema.Location, bool) {
	latParam := c.Query("lat")
	lngParam := c.Query("lng")

	if latParam != "" || lngParam != "" {
		lat, latErr := strconv.ParseFloat(latParam, 64)
		lng, lngErr := strconv.ParseFloat(lngParam, 64)
		if latErr != nil || lngErr != nil {
			abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
			return schema.Location{}, false
		}
		return schema.Location{Latitude: lat, Longitude: lng}, true
	}

	location := c.Query("location")
	if location == "" {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
		return schema.Location{}, false
	}

	origin, err := s.resolver.Resolve(c.Request.Context(), location)
	if err != nil {
		if err == geo.ErrStaleResolution {
			abortWithEncoding(c, http.StatusConflict, errorStaleLocation, err)
			return schema.Location{}, false
		}
		abortWithEncoding(c, http.StatusBadRequest, errorUnknownLocation, err)
		return schema.Location{}, false
	}

	return origin, true
}
