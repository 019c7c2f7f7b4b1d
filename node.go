package commonlexer

// Node is an element of the parse tree.  Each node is tagged with the
// id of the rule that created it, covers a span of the source and
// exclusively owns its children.
type Node struct {
	RuleID   RuleID
	Span     Span
	Children []*Node
}

func NewNode(ruleID RuleID) *Node {
	return &Node{RuleID: ruleID}
}

// AddChild appends `child` to the node's children
func (n *Node) AddChild(child *Node) {
	n.Children = append(n.Children, child)
}

// AdoptChildren moves all the children of `other` to the end of the
// node's children, leaving `other` empty.
func (n *Node) AdoptChildren(other *Node) {
	n.Children = append(n.Children, other.Children...)
	other.Children = nil
}

// Child returns the child at `index` or nil if there's none
func (n *Node) Child(index int) *Node {
	if index < 0 || index >= len(n.Children) {
		return nil
	}
	return n.Children[index]
}

func (n *Node) Len() int { return len(n.Children) }

// Text returns the source text covered by the node
func (n *Node) Text(src *SourceText) string {
	return n.Span.Text(src)
}

// Visit walks the tree depth first, parents before children.  When
// `fn` returns false the children of that node are skipped.
func (n *Node) Visit(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, child := range n.Children {
		child.Visit(fn)
	}
}

// Count returns how many nodes are under this one, itself excluded
func (n *Node) Count() int {
	count := 0
	for _, child := range n.Children {
		count += 1 + child.Count()
	}
	return count
}

// Find returns the first node, in depth first order, created by
// `ruleID`.
func (n *Node) Find(ruleID RuleID) *Node {
	var found *Node
	n.Visit(func(c *Node) bool {
		if found != nil {
			return false
		}
		if c != n && c.RuleID == ruleID {
			found = c
			return false
		}
		return true
	})
	return found
}

// Equal tells if both trees have the same shape, rule ids and spans
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.RuleID != other.RuleID || n.Span != other.Span || len(n.Children) != len(other.Children) {
		return false
	}
	for i := range n.Children {
		if !n.Children[i].Equal(other.Children[i]) {
			return false
		}
	}
	return true
}
