package skimxml

import "bytes"

// Attribute is a name/value pair from an element declaration. Both fields
// are views into the document; Value has its surrounding quotes trimmed.
type Attribute struct {
	Name  []byte
	Value []byte
}

// Node describes one element's opening declaration. A Node is only valid
// for the duration of the handler call that receives it: its Attributes
// slice aliases parser scratch storage that is reused for the next node.
// Callers that need the data afterwards must copy it out.
type Node struct {
	Name       []byte
	Attributes []Attribute
	bodyDoc    []byte
}

// OnNode is invoked once per encountered element. Returning false stops
// processing at the current nesting level; it is not an error.
type OnNode func(p *Parser, n *Node, userData any) bool

// Attr returns the value of the named attribute, if present.
func (n *Node) Attr(name string) ([]byte, bool) {
	for _, a := range n.Attributes {
		if bytes.Equal(a.Name, []byte(name)) {
			return a.Value, true
		}
	}

	return nil, false
}
