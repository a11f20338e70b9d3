package icon

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	assert := assert.New(t)
	c := NewDocumentCache(0)

	for i := 0; i < DefaultCacheSize; i++ {
		c.Add(fmt.Sprintf("/icons/%d.svg", i), &Template{})
	}
	assert.Equal(DefaultCacheSize, c.Len())

	// Touch the oldest entry so that the second oldest goes first.
	_, ok := c.Get("/icons/0.svg")
	assert.True(ok)

	c.Add("/icons/new.svg", &Template{})
	assert.Equal(DefaultCacheSize, c.Len())
	assert.True(c.Contains("/icons/0.svg"))
	assert.False(c.Contains("/icons/1.svg"))
	assert.True(c.Contains("/icons/new.svg"))

	c.Purge()
	assert.Equal(0, c.Len())
}

func TestCache_SharedInstances(t *testing.T) {
	assert.Same(t, DefaultDocuments(), DefaultDocuments())
	assert.Same(t, DefaultSurfaces(), DefaultSurfaces())
}

func TestRequest_Key(t *testing.T) {
	assert := assert.New(t)
	r := Request{IconName: "activity-helloworld", FillColor: "#FFFFFF", Width: 55, Height: 55}

	assert.Equal(r.Key(true), r.Key(true))
	assert.NotEqual(r.Key(true), r.Key(false))

	other := r
	other.FillColor = "#000000"
	assert.NotEqual(r.Key(true), other.Key(true))

	other = r
	other.Background = white
	assert.NotEqual(r.Key(true), other.Key(true))

	// Raster sources are keyed by identity, not content.
	a, b := r, r
	a.Raster = NewPixelSource([]byte{1, 2, 3}, 1, 1, 0, false)
	b.Raster = NewPixelSource([]byte{1, 2, 3}, 1, 1, 0, false)
	assert.NotEqual(a.Key(true), b.Key(true))
}

func TestRequest_SourcePriority(t *testing.T) {
	assert := assert.New(t)
	r := Request{IconName: "computer-xo"}
	assert.Equal(NameSource("computer-xo"), r.Source())

	r.File = "/tmp/xo.svg"
	assert.Equal(FileSource("/tmp/xo.svg"), r.Source())

	px := NewPixelSource([]byte{0, 0, 0}, 1, 1, 0, false)
	r.Raster = px
	assert.Equal(px, r.Source())

	assert.Nil((&Request{}).Source())
}
