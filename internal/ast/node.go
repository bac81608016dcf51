package ast

import (
	"encoding/json"
	"strconv"

	"github.com/tinypl/tiny/internal/diag"
)

// NodeID addresses a node inside its Tree's arena.
type NodeID int32

// NoNode is the null node address.
const NoNode NodeID = -1

type nodeData struct {
	kind     NodeKind
	params   []Parameter
	children []NodeID
	meta     diag.Metadata
	val      Value
}

// Tree is the arena owning every node of one parsed file. Nodes reference
// their children by index, which keeps the structure a tree: a cycle would
// require a node to point at an id allocated before its parent existed.
type Tree struct {
	nodes []nodeData
}

// NewTree creates an empty arena.
func NewTree() *Tree {
	return &Tree{}
}

// Len returns the number of nodes allocated in the arena.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// New allocates a node with the given kind and children. The parser uses the
// zero-, one-, two- and three-child forms directly as grammar rules reduce;
// arbitrary arity is reachable via AddChildren.
func (t *Tree) New(meta diag.Metadata, kind NodeKind, children ...Node) Node {
	n := t.alloc(nodeData{kind: kind, meta: meta})
	n.AddChildren(children...)
	return n
}

// NewValue allocates a leaf node holding a literal or identifier payload.
func (t *Tree) NewValue(meta diag.Metadata, kind NodeKind, val Value) Node {
	return t.alloc(nodeData{kind: kind, meta: meta, val: val})
}

func (t *Tree) alloc(d nodeData) Node {
	t.nodes = append(t.nodes, d)
	return Node{t: t, id: NodeID(len(t.nodes) - 1)}
}

func (t *Tree) data(id NodeID) *nodeData {
	return &t.nodes[id]
}

// Node is a cheap handle into a Tree. The zero Node is invalid; Valid
// distinguishes it from allocated nodes.
type Node struct {
	t  *Tree
	id NodeID
}

// Valid reports whether the handle addresses an allocated node.
func (n Node) Valid() bool {
	return n.t != nil && n.id >= 0 && int(n.id) < len(n.t.nodes)
}

// ID returns the node's arena address.
func (n Node) ID() NodeID {
	return n.id
}

// Kind returns the node's kind tag.
func (n Node) Kind() NodeKind {
	return n.t.data(n.id).kind
}

// Meta returns the node's source metadata.
func (n Node) Meta() diag.Metadata {
	return n.t.data(n.id).meta
}

// Value returns the node's literal payload. Nodes of non-literal kinds hold
// a None value.
func (n Node) Value() Value {
	return n.t.data(n.id).val
}

// Params returns the node's parameters in insertion order. The slice is the
// node's own storage; callers must treat it as read-only.
func (n Node) Params() []Parameter {
	return n.t.data(n.id).params
}

// NumChildren returns the number of children.
func (n Node) NumChildren() int {
	return len(n.t.data(n.id).children)
}

// Children returns the node's children in order.
func (n Node) Children() []Node {
	ids := n.t.data(n.id).children
	out := make([]Node, len(ids))
	for i, id := range ids {
		out[i] = Node{t: n.t, id: id}
	}
	return out
}

// AddParam attaches a parameter, replacing any existing parameter of the
// same kind so at most one parameter per kind exists on a node.
func (n Node) AddParam(p Parameter) {
	d := n.t.data(n.id)
	for i := range d.params {
		if d.params[i].Kind == p.Kind {
			d.params[i] = p
			return
		}
	}
	d.params = append(d.params, p)
}

// GetParam fetches a parameter by kind. Fails with NotFound if the node has
// no such parameter.
func (n Node) GetParam(kind ParamKind) (Parameter, error) {
	for _, p := range n.t.data(n.id).params {
		if p.Kind == kind {
			return p, nil
		}
	}
	return Parameter{}, newNotFound("node "+n.Kind().String()+" has no parameter "+kind.String(), n.Meta())
}

// HasParam reports whether the node has a parameter of the given kind. It
// never fails and agrees with GetParam.
func (n Node) HasParam(kind ParamKind) bool {
	_, err := n.GetParam(kind)
	return err == nil
}

// AddChildren appends the given nodes as children, preserving order. Every
// child must live in the same arena as n; mixing arenas is a programming
// error and panics.
func (n Node) AddChildren(children ...Node) {
	d := n.t.data(n.id)
	for _, c := range children {
		if c.t != n.t {
			panic("ast: child node belongs to a different tree")
		}
		d.children = append(d.children, c.id)
	}
}

// GetChild fetches the first child whose kind matches. Fails with NotFound
// if no child matches.
func (n Node) GetChild(kind NodeKind) (Node, error) {
	for _, id := range n.t.data(n.id).children {
		if n.t.data(id).kind == kind {
			return Node{t: n.t, id: id}, nil
		}
	}
	return Node{}, newNotFound("node "+n.Kind().String()+" has no child "+kind.String(), n.Meta())
}

// FirstChild fetches the first child positionally, regardless of kind.
// Fails with NotFound when the node has no children.
func (n Node) FirstChild() (Node, error) {
	return n.childAt(0)
}

// SecondChild fetches the second child positionally, regardless of kind.
// Fails with NotFound when the node has fewer than two children.
func (n Node) SecondChild() (Node, error) {
	return n.childAt(1)
}

func (n Node) childAt(i int) (Node, error) {
	ids := n.t.data(n.id).children
	if i >= len(ids) {
		return Node{}, newNotFound("node "+n.Kind().String()+" has no child at position "+strconv.Itoa(i), n.Meta())
	}
	return Node{t: n.t, id: ids[i]}, nil
}

// StringVal returns the text payload of the node's value, failing with
// WrongValueKind when the value holds a different variant.
func (n Node) StringVal() (string, error) {
	return n.Value().StringVal(n.Meta())
}

// IsOperation reports whether the node's kind is an operator kind.
func (n Node) IsOperation() bool {
	return n.Kind().IsOperation()
}

// String returns a short descriptor for debugging and log output, not for
// round-tripping: the kind name plus an abbreviated value if present.
func (n Node) String() string {
	d := n.t.data(n.id)
	if d.val.IsNone() {
		return d.kind.String()
	}

	v := d.val.String()
	if len(v) > 16 {
		v = v[:13] + "..."
	}
	return d.kind.String() + "(" + v + ")"
}

// MarshalJSON serializes the node as {kind, params, children, value?},
// recursing over children in order. The output is deterministic: the same
// tree always yields the same bytes.
func (n Node) MarshalJSON() ([]byte, error) {
	d := n.t.data(n.id)

	out := struct {
		Kind     string      `json:"kind"`
		Params   []Parameter `json:"params"`
		Children []Node      `json:"children"`
		Value    *Value      `json:"value,omitempty"`
	}{
		Kind:     d.kind.String(),
		Params:   d.params,
		Children: n.Children(),
	}
	if out.Params == nil {
		out.Params = []Parameter{}
	}
	if out.Children == nil {
		out.Children = []Node{}
	}
	if !d.val.IsNone() {
		v := d.val
		out.Value = &v
	}
	return json.Marshal(out)
}
