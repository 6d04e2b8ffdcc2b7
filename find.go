package skimxml

import "bytes"

type pathQuery struct {
	path  [][]byte
	depth int
	body  []byte
	found bool
	err   error
}

// Text returns the body of the first element reached by matching element
// names level by level from the document root, the shape of lookup the
// typical cloud API response calls for. The returned slice is a view into
// doc.
func Text(doc []byte, path ...string) ([]byte, error) {
	if len(path) == 0 {
		return nil, ErrMalformedInput
	}

	q := &pathQuery{path: make([][]byte, len(path))}

	for i, name := range path {
		q.path[i] = []byte(name)
	}

	p := NewParser(doc)
	defer p.CleanUp()

	if err := p.Parse(onPathNode, q); err != nil {
		return nil, err
	}

	if q.err != nil {
		return nil, q.err
	}

	if !q.found {
		return nil, ErrMalformedInput
	}

	return q.body, nil
}

func onPathNode(p *Parser, n *Node, userData any) bool {
	q := userData.(*pathQuery)

	if q.found || q.err != nil {
		return false
	}

	if !bytes.Equal(n.Name, q.path[q.depth]) {
		return true
	}

	if q.depth == len(q.path)-1 {
		body, err := p.NodeAsBody(n)

		if err != nil {
			q.err = err
		} else {
			q.body = body
			q.found = true
		}

		return false
	}

	q.depth++

	if err := p.Traverse(n, onPathNode, q); err != nil {
		q.err = err
		return false
	}

	q.depth--

	return !q.found
}
