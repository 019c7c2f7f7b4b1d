package commonlexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNode(t *testing.T) {
	root := NewNode(1)
	a := &Node{RuleID: 2, Span: Span{0, 1}}
	b := &Node{RuleID: 3, Span: Span{1, 3}}
	b.AddChild(&Node{RuleID: 2, Span: Span{1, 2}})
	root.AddChild(a)
	root.AddChild(b)

	assert.Equal(t, 2, root.Len())
	assert.Same(t, a, root.Child(0))
	assert.Nil(t, root.Child(2))
	assert.Nil(t, root.Child(-1))
	assert.Equal(t, 3, root.Count())

	t.Run("Find", func(t *testing.T) {
		assert.Same(t, a, root.Find(2))
		assert.Same(t, b, root.Find(3))
		assert.Nil(t, root.Find(1), "the node itself isn't a match")
	})

	t.Run("Visit order", func(t *testing.T) {
		var ids []RuleID
		root.Visit(func(n *Node) bool {
			ids = append(ids, n.RuleID)
			return true
		})
		assert.Equal(t, []RuleID{1, 2, 3, 2}, ids)
	})

	t.Run("Visit can prune", func(t *testing.T) {
		var ids []RuleID
		root.Visit(func(n *Node) bool {
			ids = append(ids, n.RuleID)
			return n.RuleID != 3
		})
		assert.Equal(t, []RuleID{1, 2, 3}, ids)
	})

	t.Run("Text", func(t *testing.T) {
		src := NewSourceText("test", "xyz")
		assert.Equal(t, "yz", b.Text(src))
	})
}

func TestNodeAdoptChildren(t *testing.T) {
	parent := NewNode(1)
	parent.AddChild(NewNode(2))

	temp := NewNode(NoRule)
	temp.AddChild(NewNode(3))
	temp.AddChild(NewNode(4))

	parent.AdoptChildren(temp)
	require.Equal(t, 3, parent.Len())
	assert.Equal(t, RuleID(3), parent.Child(1).RuleID)
	assert.Equal(t, RuleID(4), parent.Child(2).RuleID)
	assert.Equal(t, 0, temp.Len())
}

func TestNodeEqual(t *testing.T) {
	build := func(span Span) *Node {
		n := &Node{RuleID: 1, Span: Span{0, 4}}
		n.AddChild(&Node{RuleID: 2, Span: span})
		return n
	}

	assert.True(t, build(Span{0, 2}).Equal(build(Span{0, 2})))
	assert.False(t, build(Span{0, 2}).Equal(build(Span{0, 3})))
	assert.False(t, build(Span{0, 2}).Equal(NewNode(1)))
	assert.False(t, build(Span{0, 2}).Equal(nil))

	var empty *Node
	assert.True(t, empty.Equal(nil))
}
