package recency

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkAndContains(t *testing.T) {
	c := New(3)
	assert.False(t, c.Contains("a::b"))
	c.Mark("a::b")
	assert.True(t, c.Contains("a::b"))
	assert.Equal(t, 1, c.Len())
}

func TestFIFOEviction(t *testing.T) {
	c := New(50)
	for i := 0; i < 51; i++ {
		c.Mark(fmt.Sprintf("artist%d::title%d", i, i))
	}
	assert.False(t, c.Contains("artist0::title0"), "oldest key should be evicted at capacity")
	assert.True(t, c.Contains("artist1::title1"))
	assert.True(t, c.Contains("artist50::title50"))
	assert.Equal(t, 50, c.Len())
}

func TestDuplicateMarkIsNoOp(t *testing.T) {
	c := New(2)
	c.Mark("a")
	c.Mark("b")
	c.Mark("a") // no reorder: "a" stays oldest
	assert.Equal(t, 2, c.Len())

	c.Mark("c")
	assert.False(t, c.Contains("a"), "duplicate mark must not refresh recency")
	assert.True(t, c.Contains("b"))
	assert.True(t, c.Contains("c"))
}

func TestMarkIfFresh(t *testing.T) {
	c := New(2)
	assert.True(t, c.MarkIfFresh("a"))
	assert.False(t, c.MarkIfFresh("a"))
	assert.True(t, c.Contains("a"))
}
