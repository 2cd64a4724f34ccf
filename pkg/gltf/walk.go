package gltf

import "fmt"

// Visit is called once per node reached by Walk.
type Visit func(node, parent, depth int) error

// Walk visits the nodes reachable from roots depth first, parents before
// children. Nodes are looked up in the flat Nodes arena and a visited set
// guards against malformed documents: reaching a node twice fails with
// ErrCycle instead of recursing forever. A parent of -1 marks a root.
func (d *Document) Walk(roots []int, visit Visit) error {
	type frame struct {
		node, parent, depth int
	}

	visited := make(map[int]bool, len(d.Nodes))
	stack := make([]frame, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, frame{node: roots[i], parent: -1})
	}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.node < 0 || f.node >= len(d.Nodes) {
			return indexError("node", f.node, len(d.Nodes))
		}
		if visited[f.node] {
			return fmt.Errorf("%w: node %d reached again from node %d", ErrCycle, f.node, f.parent)
		}
		visited[f.node] = true

		if err := visit(f.node, f.parent, f.depth); err != nil {
			return err
		}

		children := d.Nodes[f.node].Children
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: children[i], parent: f.node, depth: f.depth + 1})
		}
	}
	return nil
}

// SceneRoots returns the root nodes of scene i.
func (d *Document) SceneRoots(i int) ([]int, error) {
	if i < 0 || i >= len(d.Scenes) {
		return nil, indexError("scene", i, len(d.Scenes))
	}
	return d.Scenes[i].Nodes, nil
}

// Joint is one joint of a skin's hierarchy.
type Joint struct {
	// Node is the joint's node index.
	Node int

	// Parent is the nearest ancestor that is also a joint of the skin, or
	// -1 for a hierarchy root.
	Parent int

	// Depth counts joint ancestors above this joint.
	Depth int
}

// SkinJoints returns the joints of skin i in hierarchy order. The walk
// starts at the skin's skeleton node when set, otherwise at every node that
// is nobody's child. Joints the walk never reaches are an error, as is a
// node graph in which a joint sits on a cycle.
func (d *Document) SkinJoints(i int) ([]Joint, error) {
	if i < 0 || i >= len(d.Skins) {
		return nil, indexError("skin", i, len(d.Skins))
	}
	skin := d.Skins[i]

	isJoint := make(map[int]bool, len(skin.Joints))
	for _, j := range skin.Joints {
		if j < 0 || j >= len(d.Nodes) {
			return nil, fmt.Errorf("skin %d: %w", i, indexError("joint node", j, len(d.Nodes)))
		}
		isJoint[j] = true
	}

	var roots []int
	if skin.Skeleton != nil {
		roots = []int{*skin.Skeleton}
	} else {
		hasParent := make(map[int]bool, len(d.Nodes))
		for _, n := range d.Nodes {
			for _, c := range n.Children {
				hasParent[c] = true
			}
		}
		for n := range d.Nodes {
			if !hasParent[n] {
				roots = append(roots, n)
			}
		}
		if len(roots) == 0 && len(skin.Joints) > 0 {
			// Every node has a parent, so the graph loops; walking from a
			// joint surfaces the cycle.
			roots = []int{skin.Joints[0]}
		}
	}

	jointParent := make(map[int]int)
	jointDepth := make(map[int]int)
	var out []Joint
	seen := make(map[int]bool, len(skin.Joints))

	err := d.Walk(roots, func(node, parent, _ int) error {
		// Nearest joint ancestor: inherited from the parent unless the
		// parent is a joint itself.
		anc := -1
		if parent >= 0 {
			if isJoint[parent] {
				anc = parent
			} else if p, ok := jointParent[parent]; ok {
				anc = p
			}
		}
		jointParent[node] = anc

		if isJoint[node] && !seen[node] {
			seen[node] = true
			depth := 0
			if anc >= 0 {
				depth = jointDepth[anc] + 1
			}
			jointDepth[node] = depth
			out = append(out, Joint{Node: node, Parent: anc, Depth: depth})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("skin %d: %w", i, err)
	}

	if len(out) != len(isJoint) {
		return nil, fmt.Errorf("skin %d: %d of %d joints unreachable from the skeleton root",
			i, len(isJoint)-len(out), len(isJoint))
	}
	return out, nil
}
