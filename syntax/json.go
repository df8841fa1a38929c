package syntax

import (
	"encoding/json"
	"math"
	"strconv"
)

type jsonNode struct {
	Kind     string      `json:"kind"`
	Value    *jsonValue  `json:"value,omitempty"`
	Token    *jsonToken  `json:"token,omitempty"`
	Children []*jsonNode `json:"children,omitempty"`
}

type jsonToken struct {
	Kind   string `json:"kind"`
	Raw    string `json:"raw"`
	Line   int    `json:"line"`
	Offset int    `json:"offset"`
}

type jsonValue struct {
	Kind  string `json:"kind"`
	Value any    `json:"value,omitempty"`
}

func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.toJSON())
}

func (t Token) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		jsonToken
		Value *jsonValue `json:"value,omitempty"`
	}{t.toJSON(), t.Value.toJSON()})
}

func (v Value) MarshalJSON() ([]byte, error) {
	jv := v.toJSON()
	if jv == nil {
		jv = &jsonValue{Kind: v.kind.String()}
	}
	return json.Marshal(jv)
}

func (n *Node) toJSON() *jsonNode {
	jn := &jsonNode{
		Kind: n.Kind.String(),
	}
	if n.Kind.IsLeaf() {
		jn.Value = n.Value.toJSON()
	}
	if n.Token.Kind != TokenInvalid {
		jt := n.Token.toJSON()
		jn.Token = &jt
	}
	if len(n.Children) > 0 {
		jn.Children = make([]*jsonNode, len(n.Children))
		for i, child := range n.Children {
			jn.Children[i] = child.toJSON()
		}
	}
	return jn
}

func (t Token) toJSON() jsonToken {
	return jsonToken{
		Kind:   t.Kind.String(),
		Raw:    t.Raw,
		Line:   t.Line,
		Offset: t.Offset,
	}
}

// toJSON returns nil for Absent so that empty payloads are omitted.
func (v Value) toJSON() *jsonValue {
	switch v.kind {
	case ValueAbsent:
		return nil
	case ValueNumber:
		// JSON has no spelling for infinities or NaN.
		if math.IsInf(v.num, 0) || math.IsNaN(v.num) {
			return &jsonValue{Kind: v.kind.String(), Value: strconv.FormatFloat(v.num, 'g', -1, 64)}
		}
		return &jsonValue{Kind: v.kind.String(), Value: v.num}
	case ValueBoolean:
		return &jsonValue{Kind: v.kind.String(), Value: v.b}
	case ValueEndOfInput:
		return &jsonValue{Kind: v.kind.String()}
	}
	return &jsonValue{Kind: v.kind.String(), Value: v.text}
}
