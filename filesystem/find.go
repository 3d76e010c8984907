package filesystem

import (
	"github.com/brettbedarf/namefs/contract"
)

// NodeSet is a set of nodes keyed by identity
type NodeSet map[Node]struct{}

func (s NodeSet) Add(n Node) {
	s[n] = struct{}{}
}

func (s NodeSet) AddAll(other NodeSet) {
	for n := range other {
		s[n] = struct{}{}
	}
}

func (s NodeSet) Has(n Node) bool {
	_, ok := s[n]
	return ok
}

// Nodes returns the members in no particular order
func (s NodeSet) Nodes() []Node {
	nodes := make([]Node, 0, len(s))
	for n := range s {
		nodes = append(nodes, n)
	}
	return nodes
}

// findNodes collects n and every node below it whose base name is bn. Any
// failure along the way comes back as a single ServiceFailure.
func findNodes(n Node, bn string) (NodeSet, error) {
	result := make(NodeSet)
	name, err := n.BaseName()
	if err != nil {
		return nil, contract.Escalate(err, "service failed to find nodes")
	}
	if name == bn {
		result.Add(n)
	}

	d, ok := n.(interface{ ChildNodes() []Node })
	if !ok {
		return result, nil
	}
	for _, c := range d.ChildNodes() {
		found, err := c.FindNodes(bn)
		if err != nil {
			return nil, contract.Escalate(err, "service failed to find nodes")
		}
		result.AddAll(found)
	}
	return result, nil
}
