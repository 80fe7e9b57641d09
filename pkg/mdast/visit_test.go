package mdast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree() *Node {
	return Root(
		New(TypeParagraph,
			Text("a"),
			New(TypeStrong, Text("b")),
			Text("c"),
		),
		New(TypeParagraph, Text("d")),
	)
}

func TestWalk_DocumentOrder(t *testing.T) {
	var seen []string
	WalkText(sampleTree(), func(n *Node, index int, parent *Node) Result {
		seen = append(seen, n.Value)
		return Continue()
	})
	assert.Equal(t, []string{"a", "b", "c", "d"}, seen)
}

func TestWalk_RootIsVisitedWithoutParent(t *testing.T) {
	root := sampleTree()
	called := false
	Walk(root, IsType(TypeRoot), func(n *Node, index int, parent *Node) Result {
		called = true
		assert.Nil(t, parent)
		assert.Equal(t, -1, index)
		return Continue()
	})
	assert.True(t, called)
}

func TestWalk_SkipNodeDoesNotDescend(t *testing.T) {
	var seen []string
	Walk(sampleTree(), nil, func(n *Node, index int, parent *Node) Result {
		if n.Type == TypeStrong {
			return SkipNode()
		}
		if n.IsText() {
			seen = append(seen, n.Value)
		}
		return Continue()
	})
	assert.Equal(t, []string{"a", "c", "d"}, seen)
}

func TestWalk_SpliceIsVisibleToTheRestOfTheWalk(t *testing.T) {
	root := Root(New(TypeParagraph, Text("x"), Text("y")))

	var seen []string
	WalkText(root, func(n *Node, index int, parent *Node) Result {
		seen = append(seen, n.Value)
		if n.Value == "x" {
			parent.Splice(index, 1, Text("x1"), Text("x2"))
		}
		return Continue()
	})

	// x is replaced in place; the walk resumes at index+1 which is now x2.
	assert.Equal(t, []string{"x", "x2", "y"}, seen)
	assert.Len(t, root.Children[0].Children, 3)
}

func TestWalk_RevisitSameIndexAfterReassignment(t *testing.T) {
	root := Root(New(TypeParagraph, Text("open"), Text("close")))

	var seen []string
	WalkText(root, func(n *Node, index int, parent *Node) Result {
		seen = append(seen, n.Value)
		if n.Value == "open" {
			parent.Children = []*Node{Text("merged")}
			return Revisit(index)
		}
		return Continue()
	})

	assert.Equal(t, []string{"open", "merged"}, seen)
}

func TestWalk_SkipToAfterRemoval(t *testing.T) {
	root := Root(New(TypeParagraph, Text("keep"), Text("drop"), Text("tail")))

	var seen []string
	WalkText(root, func(n *Node, index int, parent *Node) Result {
		seen = append(seen, n.Value)
		if n.Value == "drop" {
			parent.Remove(index)
			return SkipTo(index)
		}
		return Continue()
	})

	assert.Equal(t, []string{"keep", "drop", "tail"}, seen)
	require.Len(t, root.Children[0].Children, 2)
	assert.Equal(t, "tail", root.Children[0].Children[1].Value)
}

func TestWalk_Exit(t *testing.T) {
	count := 0
	WalkText(sampleTree(), func(n *Node, index int, parent *Node) Result {
		count++
		return Exit()
	})
	assert.Equal(t, 1, count)
}

func TestNode_SpliceAndClone(t *testing.T) {
	p := New(TypeParagraph, Text("a"), Text("b"), Text("c"))
	p.Splice(1, 1, Text("x"), Text("y"))
	assert.Equal(t, "axyc", p.TextContent())

	c := p.Clone()
	c.Children[0].Value = "changed"
	assert.Equal(t, "axyc", p.TextContent())

	p.Splice(3, 10)
	assert.Equal(t, "axy", p.TextContent())
}
