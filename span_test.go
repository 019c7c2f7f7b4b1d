package commonlexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpan(t *testing.T) {
	src := NewSourceText("test", "abc\ndef")
	span := NewSpan(2, 5)

	assert.Equal(t, 3, span.Len())
	assert.False(t, span.IsEmpty())
	assert.True(t, EmptySpan(4).IsEmpty())
	assert.Equal(t, "2..5", span.String())
	assert.Equal(t, "4", EmptySpan(4).String())
	assert.Equal(t, "c\nd", span.Text(src))
	assert.Equal(t, []string{"abc", "def"}, span.Lines(src))
	assert.Equal(t, "1:3 -> 2:2", span.Location(src))

	assert.True(t, span.Contains(Span{3, 5}))
	assert.False(t, span.Contains(Span{1, 3}))
	assert.Equal(t, Span{4, 5}, span.From(4))
}

func TestPosition(t *testing.T) {
	src := NewSourceText("test", "ab\ncd")
	p := Position(3)

	assert.Equal(t, Position(4), p.Next())
	assert.Equal(t, Position(2), p.Prev())
	assert.Equal(t, Position(5), p.Add(2))
	assert.Equal(t, Position(1), p.Sub(2))
	assert.True(t, p.Before(4))
	assert.Equal(t, 2, p.Line(src))
	assert.Equal(t, 1, p.Column(src))
}

func TestCursor(t *testing.T) {
	src := NewSourceText("test", "0123456789abcdef")

	t.Run("Walks forward across windows", func(t *testing.T) {
		cursor := NewCursor(src, 0, 4)
		var walked []byte
		for !cursor.AtEnd(Position(src.Size())) {
			c, ok := cursor.Peek()
			assert.True(t, ok)
			walked = append(walked, c)
			cursor.Next()
		}
		assert.Equal(t, src.String(), string(walked))

		_, ok := cursor.Peek()
		assert.False(t, ok)
	})

	t.Run("Walks backwards", func(t *testing.T) {
		cursor := NewCursor(src, 15, 4)
		var walked []byte
		for cursor.Pos() >= 0 {
			c, ok := cursor.Peek()
			assert.True(t, ok)
			walked = append(walked, c)
			cursor.Prev()
		}
		assert.Equal(t, "fedcba9876543210", string(walked))

		_, ok := cursor.Peek()
		assert.False(t, ok)
	})

	t.Run("Seek", func(t *testing.T) {
		cursor := NewCursor(src, 0, 2)
		cursor.Seek(10)
		c, ok := cursor.Peek()
		assert.True(t, ok)
		assert.Equal(t, byte('a'), c)
		assert.Equal(t, Position(10), cursor.Pos())
	})

	t.Run("Default window", func(t *testing.T) {
		cursor := NewCursor(src, 3, 0)
		c, ok := cursor.Peek()
		assert.True(t, ok)
		assert.Equal(t, byte('3'), c)
	})
}
