package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUtils_MinMaxClamp(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(2, Min(2, 7))
	assert.Equal(2, Min(7, 2))
	assert.Equal(7, Max(2, 7))
	assert.Equal(0, Clamp(-4, 0, 10))
	assert.Equal(10, Clamp(14, 0, 10))
	assert.Equal(3, Clamp(3, 0, 10))
}

func TestUtils_FormatTime(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("1.50s", FormatTime(1500*time.Millisecond))
	assert.Equal("2m 5.00s", FormatTime(2*time.Minute+5*time.Second))
	assert.Equal("1h 1m 1.00s", FormatTime(time.Hour+time.Minute+time.Second))
}

func TestUtils_DecorateTextKeepsMessage(t *testing.T) {
	for _, mt := range []MessageType{DefaultMessage, SuccessMessage, ErrorMessage, StatusMessage} {
		assert.True(t, strings.Contains(DecorateText("hexmap", mt), "hexmap"))
	}
}

func TestUtils_SpinnerStops(t *testing.T) {
	var sb strings.Builder
	s := NewSpinner("working", time.Millisecond, false)
	s.writer = &sb
	s.StopMsg = "done\n"
	s.Start()
	time.Sleep(5 * time.Millisecond)
	s.Stop()

	assert.True(t, strings.HasSuffix(sb.String(), "done\n"))
}
