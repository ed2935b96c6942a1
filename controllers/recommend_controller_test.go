package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weatherfit/backend/recommend"
)

func newRecommendRouter(userID uint) *gin.Engine {
	rc := NewRecommendController()
	r := gin.New()
	r.Use(asUser(userID, "alice"))
	r.GET("/recommend", rc.Recommend)
	r.POST("/chatbot", rc.Chat)
	return r
}

func TestRecommendEndpoint(t *testing.T) {
	r := newRecommendRouter(0)

	w, resp := doJSON(t, r, http.MethodGet, "/recommend?condition=Clear&temp_c=31", "")
	require.Equal(t, http.StatusOK, w.Code)

	data, _ := json.Marshal(resp.Data)
	var rec recommend.Recommendation
	require.NoError(t, json.Unmarshal(data, &rec))
	assert.Equal(t, recommend.PageHot, rec.Page)
	assert.NotEmpty(t, rec.Text)

	w, resp = doJSON(t, r, http.MethodGet, "/recommend?temp_c=31", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 40030, resp.Code)

	w, resp = doJSON(t, r, http.MethodGet, "/recommend?condition=clear&temp_c=warm", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 40031, resp.Code)
}

func TestChatbotEndpoint(t *testing.T) {
	anon := newRecommendRouter(0)

	w, resp := doJSON(t, anon, http.MethodPost, "/chatbot", `{"query":"cold and rainy"}`)
	require.Equal(t, http.StatusOK, w.Code)

	data, _ := json.Marshal(resp.Data)
	var reply recommend.ChatReply
	require.NoError(t, json.Unmarshal(data, &reply))
	assert.Equal(t, []string{recommend.PageRainy, recommend.PageCold}, reply.Pages)
	assert.False(t, reply.ExpertOK)

	loggedIn := newRecommendRouter(5)
	_, resp = doJSON(t, loggedIn, http.MethodPost, "/chatbot", `{"query":"hot"}`)
	data, _ = json.Marshal(resp.Data)
	require.NoError(t, json.Unmarshal(data, &reply))
	assert.True(t, reply.ExpertOK)
}
