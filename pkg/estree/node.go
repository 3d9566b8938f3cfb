// Package estree serializes internal/ast trees to and from ESTree-shaped
// JSON (spec.md §6), the wire format most JS tooling expects.
package estree

import "encoding/json"

// Node is a generic ESTree node: a "type" tag plus whatever fields that
// type carries. It is a thin map rather than one Go struct per ESTree
// node kind, since the node shapes are a serialization contract owned by
// ESTree, not by this module's own type system.
type Node map[string]any

// MarshalJSON renders n as a plain JSON object.
func (n Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any(n))
}

// UnmarshalJSON populates n from a JSON object.
func (n *Node) UnmarshalJSON(data []byte) error {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*n = Node(m)
	return nil
}

func (n Node) typ() string {
	s, _ := n["type"].(string)
	return s
}

func (n Node) str(key string) string {
	s, _ := n[key].(string)
	return s
}

func (n Node) num(key string) float64 {
	f, _ := n[key].(float64)
	return f
}

func (n Node) boolean(key string) bool {
	b, _ := n[key].(bool)
	return b
}

func (n Node) node(key string) (Node, bool) {
	v, ok := n[key]
	if !ok || v == nil {
		return nil, false
	}
	switch t := v.(type) {
	case Node:
		return t, true
	case map[string]any:
		return Node(t), true
	default:
		return nil, false
	}
}

func (n Node) nodeList(key string) []Node {
	v, ok := n[key]
	if !ok {
		return nil
	}
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]Node, len(raw))
	for i, item := range raw {
		if item == nil {
			continue
		}
		switch t := item.(type) {
		case Node:
			out[i] = t
		case map[string]any:
			out[i] = Node(t)
		}
	}
	return out
}
