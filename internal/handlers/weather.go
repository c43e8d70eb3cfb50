package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/namefreezers/weather-lookup-api/internal/services"
)

// createWeatherRequest is the JSON body of POST /weather.
// Pointers make "required" mean present and non-null; "" is accepted.
type createWeatherRequest struct {
	Date     *string `json:"date"     binding:"required"`
	Location *string `json:"location" binding:"required"`
	Notes    *string `json:"notes"`
}

// createWeatherResponse is returned by a successful POST /weather
type createWeatherResponse struct {
	ID string `json:"id"`
}

// CreateWeatherHandler handles POST /weather
func CreateWeatherHandler(svc services.WeatherService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createWeatherRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			// 422 Invalid request shape
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": bindingMessage(err)})
			return
		}

		notes := ""
		if req.Notes != nil {
			notes = *req.Notes
		}

		id, err := svc.Create(c.Request.Context(), services.WeatherRequest{
			Date:     *req.Date,
			Location: *req.Location,
			Notes:    notes,
		})
		switch {
		case err == nil:
			// 200 Record created
			c.JSON(http.StatusOK, createWeatherResponse{ID: id})
		case errors.Is(err, services.ErrConfiguration):
			// 500 Missing provider credential
			logger.Error("weather lookup rejected: provider not configured", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "API key not found"})
		case errors.Is(err, services.ErrUpstream):
			// 500 Provider unreachable or returned garbage
			logger.Error("weather lookup failed upstream", zap.String("location", *req.Location), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		default:
			logger.Error("weather lookup failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
	}
}

// GetWeatherHandler handles GET /weather/:id
func GetWeatherHandler(svc services.WeatherService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rec, err := svc.Get(c.Request.Context(), c.Param("id"))
		switch {
		case err == nil:
			// 200 OK
			c.JSON(http.StatusOK, rec)
		case errors.Is(err, services.ErrNotFound):
			// 404 Unknown id
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			logger.Error("weather record lookup failed", zap.String("id", c.Param("id")), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
	}
}

// bindingMessage turns validator errors into "field is required" style text.
func bindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request body: " + err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s is %s", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return strings.Join(msgs, "; ")
}
