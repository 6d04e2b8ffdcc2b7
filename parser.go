// Package skimxml is a minimal zero-copy scanner for the XML subset cloud
// APIs respond with. It surfaces element names, attributes and text bodies
// as views into the input buffer without building a DOM; entities, CDATA,
// namespaces and comments inside tags are out of scope.
package skimxml

import (
	"bytes"
	"errors"
)

// ErrMalformedInput is the only error the scanner reports. It is terminal
// for the Parser that returned it: abandon the instance or reinitialize.
var ErrMalformedInput = errors.New("skimxml: malformed input")

const (
	maxDeclTokens = 10
	maxNameLen    = 256
)

type stackEntry struct {
	handler  OnNode
	userData any
}

// Parser scans one in-memory XML document left to right. It owns only the
// cursor and the callback stack; the document bytes are borrowed from the
// caller and never copied. Not safe for concurrent use.
type Parser struct {
	doc     []byte
	cbStack []stackEntry

	splitScratch [maxDeclTokens][]byte
	attrScratch  [maxDeclTokens]Attribute
	nameScratch  [maxNameLen + 3]byte
}

func NewParser(doc []byte) *Parser {
	return &Parser{
		doc:     doc,
		cbStack: make([]stackEntry, 0, 4),
	}
}

// CleanUp releases the callback-stack storage. Calling it again is a no-op.
func (p *Parser) CleanUp() {
	p.cbStack = nil
}

// Parse positions the cursor at the first element, discarding any
// <?...?> / <!...> preamble, then runs one root-level sibling step with
// handler on top of a fresh callback stack. Each call consumes exactly one
// root element; iterating root siblings is up to the caller.
func (p *Parser) Parse(handler OnNode, userData any) error {
	p.cbStack = p.cbStack[:0]

	for len(p.doc) > 0 {
		lt := bytes.IndexByte(p.doc, '<')

		if lt < 0 {
			return ErrMalformedInput
		}

		p.doc = p.doc[lt:]

		gt := bytes.IndexByte(p.doc, '>')

		if gt < 0 {
			return ErrMalformedInput
		}

		if len(p.doc) < 2 || (p.doc[1] != '?' && p.doc[1] != '!') {
			break
		}

		p.doc = p.doc[gt+1:]
	}

	p.cbStack = append(p.cbStack, stackEntry{handler, userData})

	return p.nextSibling()
}

// Traverse walks node's children, invoking handler for each until node's
// own closing tag is seen. A handler returning false stops the level
// immediately with the remaining siblings unvisited; that is not an error.
// A traversal that returns ErrMalformedInput leaves the parser unusable.
func (p *Parser) Traverse(node *Node, handler OnNode, userData any) error {
	p.cbStack = append(p.cbStack, stackEntry{handler, userData})

	for {
		rest := p.doc

		lt := bytes.IndexByte(rest, '<')

		if lt < 0 {
			return ErrMalformedInput
		}

		gt := bytes.IndexByte(rest[lt:], '>')

		if gt < 0 {
			return ErrMalformedInput
		}

		closing := lt+1 < len(rest) && rest[lt+1] == '/'

		p.doc = rest[lt+gt+1:]

		if closing {
			break
		}

		child := Node{bodyDoc: p.doc}

		if err := p.loadNodeDecl(rest[lt+1:lt+gt], &child); err != nil {
			return err
		}

		if !handler(p, &child, userData) {
			return nil
		}

		if _, err := p.advanceToClosingTag(&child); err != nil {
			return err
		}
	}

	p.cbStack = p.cbStack[:len(p.cbStack)-1]

	return nil
}

// NodeAsBody returns node's textual body and advances the cursor past the
// node's closing tag. The returned slice is a view into the document.
func (p *Parser) NodeAsBody(node *Node) ([]byte, error) {
	return p.advanceToClosingTag(node)
}

// nextSibling hands the next element at the current level to the handler
// on top of the callback stack. Running out of tags is a clean end. A
// closing tag belongs to the enclosing level: its span is skipped and the
// walk stops without producing a node.
func (p *Parser) nextSibling() error {
	rest := p.doc

	lt := bytes.IndexByte(rest, '<')

	if lt < 0 {
		return nil
	}

	gt := bytes.IndexByte(rest[lt:], '>')

	if gt < 0 {
		return ErrMalformedInput
	}

	closing := lt+1 < len(rest) && rest[lt+1] == '/'

	p.doc = rest[lt+gt+1:]

	if closing {
		return nil
	}

	node := Node{bodyDoc: p.doc}

	if err := p.loadNodeDecl(rest[lt+1:lt+gt], &node); err != nil {
		return err
	}

	top := p.cbStack[len(p.cbStack)-1]
	top.handler(p, &node, top.userData)

	return nil
}

// loadNodeDecl splits the bytes between < and > into the node's name and
// attribute list. Tokens without a = are dropped, not rejected.
func (p *Parser) loadNodeDecl(decl []byte, node *Node) error {
	if n := len(decl); n > 0 && decl[n-1] == '/' {
		decl = decl[:n-1]
	}

	tokens, err := splitOnChar(decl, ' ', p.splitScratch[:])

	if err != nil {
		return err
	}

	if len(tokens) < 1 {
		return ErrMalformedInput
	}

	node.Name = tokens[0]

	if len(tokens) > 1 {
		attrs := p.attrScratch[:0]

		for _, pair := range tokens[1:] {
			name, value, ok := bytes.Cut(pair, []byte{'='})

			if !ok {
				continue
			}

			attrs = append(attrs, Attribute{Name: name, Value: trimQuotes(value)})
		}

		node.Attributes = attrs
	}

	return nil
}

// advanceToClosingTag finds the literal </name> within the node's body
// region. The match is a plain first-occurrence substring search, not a
// nesting-aware scan: a child sharing its ancestor's exact name closes the
// ancestor at the child's closing tag. That shortcut is intentional and
// relied upon for the shallow documents this scanner targets.
func (p *Parser) advanceToClosingTag(node *Node) ([]byte, error) {
	if len(node.Name) > maxNameLen {
		return nil, ErrMalformedInput
	}

	closeTag := append(p.nameScratch[:0], '<', '/')
	closeTag = append(closeTag, node.Name...)
	closeTag = append(closeTag, '>')

	if len(closeTag) > len(node.bodyDoc) {
		return nil, ErrMalformedInput
	}

	i := bytes.Index(node.bodyDoc, closeTag)

	if i < 0 {
		return nil, ErrMalformedInput
	}

	p.doc = node.bodyDoc[i+len(closeTag):]

	return node.bodyDoc[:i], nil
}
