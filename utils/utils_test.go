package utils

import (
	"bytes"
	"image/color"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUtils_MinMax(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(2, Min(2, 5))
	assert.Equal(2, Min(5, 2))
	assert.Equal(5, Max(2, 5))
	assert.Equal(0.5, Abs(-0.5))
	assert.Equal(10, Clamp(42, 0, 10))
	assert.Equal(0, Clamp(-3, 0, 10))
	assert.True(Contains([]string{"a", "b"}, "b"))
	assert.False(Contains([]string{"a", "b"}, "c"))
}

func TestUtils_ParseColor(t *testing.T) {
	assert := assert.New(t)

	c, err := ParseColor("#aaa")
	assert.NoError(err)
	assert.Equal(color.NRGBA{R: 0xaa, G: 0xaa, B: 0xaa, A: 0xff}, c)

	c, err = ParseColor("#FF8000")
	assert.NoError(err)
	assert.Equal(color.NRGBA{R: 0xff, G: 0x80, B: 0x00, A: 0xff}, c)

	c, err = ParseColor("white")
	assert.NoError(err)
	assert.Equal(color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, c)

	_, err = ParseColor("#12345")
	assert.Error(err)
	_, err = ParseColor("not-a-color")
	assert.Error(err)
}

func TestUtils_IsColorString(t *testing.T) {
	assert.True(t, IsColorString("#282828"))
	assert.False(t, IsColorString(""))
	assert.False(t, IsColorString(`#fff" evil="1`))
	assert.False(t, IsColorString("<red>"))
}

func TestUtils_FormatTime(t *testing.T) {
	assert.Equal(t, "1.50s", FormatTime(1500*time.Millisecond))
	assert.Equal(t, "2m 3.00s", FormatTime(2*time.Minute+3*time.Second))
	assert.Equal(t, "1h 0m 5.00s", FormatTime(time.Hour+5*time.Second))
	assert.Equal(t, "1d 1h 0m 0.00s", FormatTime(25*time.Hour))
	assert.Equal(t, "2d 3h 4m 5.25s", FormatTime(51*time.Hour+4*time.Minute+5250*time.Millisecond))
}

func TestSpinner_StopClearsLine(t *testing.T) {
	var out bytes.Buffer
	s := NewSpinner(&out, "rendering", time.Millisecond, false)
	s.StopMsg = "done"

	s.Start()
	s.Start()
	time.Sleep(5 * time.Millisecond)
	s.SetMessage("icon.svg")
	s.Stop()

	text := out.String()
	assert.Contains(t, text, "rendering")
	assert.True(t, strings.HasSuffix(text, "\rdone"), "%q", text)

	// Stopping again only prints the message.
	out.Reset()
	s.Stop()
	assert.Equal(t, "done", out.String())
}
