package mesh

import (
	"fmt"

	"github.com/chazu/brep/pkg/brep"
)

// NodeID identifies a node within a mesh.
type NodeID int

// Node is a mesh vertex. Initial is the undeformed position; Current moves
// as the structure deforms.
type Node struct {
	ID      NodeID
	Initial brep.Point
	Current brep.Point
}

// NewNode returns a node whose current position equals its initial one.
func NewNode(id NodeID, p brep.Point) *Node {
	return &Node{ID: id, Initial: p, Current: p}
}

// Displace moves the current position by d.
func (n *Node) Displace(d brep.Vector) {
	n.Current = n.Current.Add(d)
}

// Position returns the node's coordinates in configuration cfg.
func (n *Node) Position(cfg brep.Configuration) (brep.Point, error) {
	switch cfg {
	case brep.Reference:
		return n.Initial, nil
	case brep.Current:
		return n.Current, nil
	default:
		return brep.Point{}, cfg.Validate()
	}
}

func (n *Node) String() string {
	return fmt.Sprintf("node %d (%g, %g, %g)", n.ID, n.Current.X, n.Current.Y, n.Current.Z)
}
