package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForConditionsPage(t *testing.T) {
	tests := []struct {
		name string
		in   Conditions
		want string
	}{
		{"thunderstorm beats heat", Conditions{Condition: "thunderstorm", TemperatureC: 35}, PageRainy},
		{"rain", Conditions{Condition: "rain", TemperatureC: 22}, PageRainy},
		{"drizzle", Conditions{Condition: "drizzle", TemperatureC: 22}, PageRainy},
		{"snow", Conditions{Condition: "snow", TemperatureC: -3}, PageCold},
		{"strong wind beats clear sky", Conditions{Condition: "clear", TemperatureC: 24, WindKPH: 30}, PageWindy},
		{"storm beats wind", Conditions{Condition: "thunderstorm", WindKPH: 40}, PageRainy},
		{"mist", Conditions{Condition: "mist", TemperatureC: 15}, PageCloudy},
		{"haze", Conditions{Condition: "haze", TemperatureC: 15}, PageCloudy},
		{"clear hot", Conditions{Condition: "clear", TemperatureC: 30}, PageHot},
		{"clear cold", Conditions{Condition: "clear", TemperatureC: 12}, PageCold},
		{"clear mild", Conditions{Condition: "clear", TemperatureC: 24}, PageSunny},
		{"clouds hot", Conditions{Condition: "clouds", TemperatureC: 31}, PageHot},
		{"clouds cold", Conditions{Condition: "clouds", TemperatureC: 10}, PageCold},
		{"clouds mild", Conditions{Condition: "clouds", TemperatureC: 25}, PageCloudy},
		{"unknown cold", Conditions{Condition: "squall", TemperatureC: 8}, PageCold},
		{"unknown hot", Conditions{Condition: "squall", TemperatureC: 33}, PageHot},
		{"unknown mild", Conditions{Condition: "squall", TemperatureC: 23}, PageMild},
		{"boundary 20 is mild", Conditions{Condition: "clear", TemperatureC: 20}, PageSunny},
		{"boundary 28 is mild", Conditions{Condition: "clear", TemperatureC: 28}, PageSunny},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ForConditions(tt.in)
			assert.Equal(t, tt.want, got.Page)
			assert.NotEmpty(t, got.Text)
		})
	}
}

func TestForConditionsTextMentionsTemperature(t *testing.T) {
	got := ForConditions(Conditions{Condition: "squall", TemperatureC: 23.4})
	assert.Contains(t, got.Text, "23°C")
}

func TestChatKeywordMatching(t *testing.T) {
	reply := Chat("Is it going to RAIN today?", false)
	assert.Equal(t, []string{PageRainy}, reply.Pages)
	assert.False(t, reply.ExpertOK)
	assert.Contains(t, reply.ExpertMsg, "log in")

	reply = Chat("cold and windy", true)
	assert.Equal(t, []string{PageWindy, PageCold}, reply.Pages)
	assert.True(t, reply.ExpertOK)

	// "warm" and "hot" hit the same row once
	reply = Chat("warm or hot?", false)
	assert.Equal(t, []string{PageHot}, reply.Pages)
}

func TestChatFallback(t *testing.T) {
	reply := Chat("what should I wear to a wedding", false)
	assert.Empty(t, reply.Pages)
	assert.Equal(t, FallbackMessage, reply.Message)
	assert.False(t, reply.ExpertOK)
}
