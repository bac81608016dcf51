package ast

// Walk traverses the tree rooted at node in depth-first order, calling fn for
// each node. If fn returns false, Walk stops traversing that branch.
func Walk(node Node, fn func(Node) bool) {
	if !node.Valid() {
		return
	}
	if !fn(node) {
		return
	}
	for _, c := range node.Children() {
		Walk(c, fn)
	}
}

// Count returns the number of nodes in the tree rooted at node.
func Count(node Node) int {
	n := 0
	Walk(node, func(Node) bool {
		n++
		return true
	})
	return n
}
