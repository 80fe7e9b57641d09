package mdast

// action tells Walk what to do after a visitor returns.
type action uint8

const (
	actContinue action = iota
	actSkip
	actExit
)

// Result is returned by a Visitor. The zero value is Continue().
type Result struct {
	act  action
	next int
	jump bool
}

// Continue descends into the visited node and then moves to its next sibling.
func Continue() Result { return Result{} }

// SkipNode does not descend into the visited node's children.
func SkipNode() Result { return Result{act: actSkip} }

// Revisit descends into the visited node and then continues the parent's
// loop at index instead of the next sibling.
func Revisit(index int) Result { return Result{next: index, jump: true} }

// SkipTo does not descend into the visited node and continues the parent's
// loop at index. Used after a visitor removed the node it was given.
func SkipTo(index int) Result { return Result{act: actSkip, next: index, jump: true} }

// Exit stops the walk.
func Exit() Result { return Result{act: actExit} }

// Test selects which nodes are passed to the visitor. A nil Test selects all.
type Test func(n *Node) bool

// IsType returns a Test matching nodes of type t.
func IsType(t NodeType) Test {
	return func(n *Node) bool { return n.Type == t }
}

// Visitor is called for every selected node. index is the position of node
// in parent.Children; for the root, parent is nil and index is -1.
type Visitor func(node *Node, index int, parent *Node) Result

// frame is one entry of the walk's worklist: the parent whose children are
// being iterated and the index of the next child to visit.
type frame struct {
	parent *Node
	index  int
}

// Walk visits root and its descendants in document order (preorder).
//
// The parent's children slice is re-read at every step, so a visitor may
// splice or reassign parent.Children and the remainder of the walk sees the
// new list. Nodes not selected by test are still descended into.
func Walk(root *Node, test Test, visit Visitor) {
	if root == nil {
		return
	}
	if test == nil {
		test = func(*Node) bool { return true }
	}

	if test(root) {
		res := visit(root, -1, nil)
		if res.act != actContinue {
			return
		}
	}
	if len(root.Children) == 0 {
		return
	}

	stack := []frame{{parent: root}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.index < 0 || top.index >= len(top.parent.Children) {
			stack = stack[:len(stack)-1]
			continue
		}

		index := top.index
		parent := top.parent
		child := parent.Children[index]

		res := Result{}
		if test(child) {
			res = visit(child, index, parent)
		}
		if res.act == actExit {
			return
		}

		// The parent loop resumes at the requested index once the child's
		// subtree has been walked.
		if res.jump {
			top.index = res.next
		} else {
			top.index = index + 1
		}

		if res.act != actSkip && len(child.Children) > 0 {
			stack = append(stack, frame{parent: child})
		}
	}
}

// WalkText visits every text node under root.
func WalkText(root *Node, visit Visitor) {
	Walk(root, IsType(TypeText), visit)
}
