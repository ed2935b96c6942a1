package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/weatherfit/backend/recommend"
	"github.com/weatherfit/backend/utils"
)

// RecommendController answers outfit guide lookups, either from a weather
// observation or from a free-text chat query.
type RecommendController struct{}

// NewRecommendController creates a new RecommendController instance.
func NewRecommendController() *RecommendController {
	return &RecommendController{}
}

// Recommend maps query parameters condition, temp_c and wind_kph to an
// outfit guide page with its recommendation text.
func (r *RecommendController) Recommend(ctx *gin.Context) {
	cond := strings.ToLower(strings.TrimSpace(ctx.Query("condition")))
	if cond == "" {
		utils.Error(ctx, http.StatusBadRequest, 40030, "condition is required")
		return
	}

	temp, err := strconv.ParseFloat(ctx.DefaultQuery("temp_c", "0"), 64)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40031, "invalid temp_c")
		return
	}
	wind, err := strconv.ParseFloat(ctx.DefaultQuery("wind_kph", "0"), 64)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40032, "invalid wind_kph")
		return
	}

	rec := recommend.ForConditions(recommend.Conditions{
		Condition:    cond,
		TemperatureC: temp,
		WindKPH:      wind,
	})
	utils.Success(ctx, rec)
}

// Chat answers a chatbot query with matching guide pages. Logged-in users
// are additionally offered the expert handoff.
func (r *RecommendController) Chat(ctx *gin.Context) {
	var req struct {
		Query string `json:"query" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40033, "invalid request payload")
		return
	}

	_, loggedIn := getUserID(ctx)
	utils.Success(ctx, recommend.Chat(req.Query, loggedIn))
}
