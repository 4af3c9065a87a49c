// Package tree builds the organizational forest from flat member records
// with leader_id parent pointers.
package tree

import "team-board/internal/model"

// Node is one member with its direct subordinates, insertion order
// preserved.
type Node struct {
	Member   model.Member
	Children []*Node
}

// Subordinates is the direct-report count shown as a badge.
func (n *Node) Subordinates() int { return len(n.Children) }

// Forest is the built hierarchy. Unattached collects members that could not
// be placed: their leader_id points at a missing member or sits inside a
// leader cycle. The builder never loops on cyclic input.
type Forest struct {
	Roots      []*Node
	Unattached []model.Member
}

// Build constructs the forest. Roots are members with an empty leader_id;
// children are grouped under their leader in input order. Each member is
// attached at most once.
func Build(members []model.Member) Forest {
	byLeader := make(map[string][]model.Member)
	for _, m := range members {
		byLeader[m.LeaderID] = append(byLeader[m.LeaderID], m)
	}

	visited := make(map[string]bool, len(members))
	var attach func(m model.Member) *Node
	attach = func(m model.Member) *Node {
		visited[m.ID] = true
		node := &Node{Member: m}
		for _, child := range byLeader[m.ID] {
			if visited[child.ID] {
				continue
			}
			node.Children = append(node.Children, attach(child))
		}
		return node
	}

	var f Forest
	for _, m := range byLeader[""] {
		if !visited[m.ID] {
			f.Roots = append(f.Roots, attach(m))
		}
	}
	for _, m := range members {
		if !visited[m.ID] {
			f.Unattached = append(f.Unattached, m)
		}
	}
	return f
}

// Walk visits the forest depth-first, parents before children, passing the
// nesting level (roots are level 0). Stops early when fn returns false.
func (f Forest) Walk(fn func(n *Node, level int) bool) {
	var walk func(n *Node, level int) bool
	walk = func(n *Node, level int) bool {
		if !fn(n, level) {
			return false
		}
		for _, c := range n.Children {
			if !walk(c, level+1) {
				return false
			}
		}
		return true
	}
	for _, r := range f.Roots {
		if !walk(r, 0) {
			return
		}
	}
}

// WouldCycle reports whether reassigning memberID's leader to newLeaderID
// would close a leader cycle. Used to reject the assignment at write time.
func WouldCycle(members []model.Member, memberID, newLeaderID string) bool {
	if newLeaderID == "" {
		return false
	}
	leaders := make(map[string]string, len(members))
	for _, m := range members {
		leaders[m.ID] = m.LeaderID
	}
	seen := make(map[string]bool)
	for cur := newLeaderID; cur != ""; cur = leaders[cur] {
		if cur == memberID {
			return true
		}
		if seen[cur] {
			return false // pre-existing cycle not involving memberID
		}
		seen[cur] = true
	}
	return false
}
