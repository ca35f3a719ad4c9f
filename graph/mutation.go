package graph

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Mutation is the serialized diff of a set of instances, ready for the
// database's mutation endpoint.
type Mutation struct {
	// SetJSON is the set-JSON payload. Empty when nothing changed.
	SetJSON []byte
}

// Empty reports whether the mutation carries no payload.
func (mu *Mutation) Empty() bool {
	return len(mu.SetJSON) == 0
}

// Blank returns the blank-node label assigned to an unsaved instance by
// mutation building, without the "_:" prefix. The database's mutation
// response maps this label to the assigned uid. Empty until the
// instance participates in a mutation.
func (i *Instance) Blank() string {
	return i.blank
}

// BuildMutation serializes the post-load diffs of the given instances
// into a set-JSON mutation. Unsaved instances (no uid) are emitted in
// full under a generated blank-node uid; saved instances contribute
// their dirty scalar properties and each collection's added elements.
// Instances with nothing to report are omitted.
func (m *Mapper) BuildMutation(insts ...*Instance) (*Mutation, error) {
	visited := make(map[*Instance]struct{})
	nodes := make([]map[string]any, 0, len(insts))
	for _, inst := range insts {
		node := m.mutationNode(inst, visited)
		if len(node) > 1 { // more than the uid alone
			nodes = append(nodes, node)
		}
	}
	if len(nodes) == 0 {
		return &Mutation{}, nil
	}
	data, err := json.Marshal(nodes)
	if err != nil {
		return nil, err
	}
	return &Mutation{SetJSON: data}, nil
}

// mutationNode serializes one instance. A revisit through a reference
// cycle yields a uid-only reference node, keeping the payload acyclic.
func (m *Mapper) mutationNode(inst *Instance, visited map[*Instance]struct{}) map[string]any {
	if _, ok := visited[inst]; ok {
		return map[string]any{UIDField: inst.mutationUID()}
	}
	visited[inst] = struct{}{}
	isNew := inst.uid == ""
	node := map[string]any{UIDField: inst.mutationUID()}
	if isNew {
		node[TypeTag] = []string{inst.typ.Name}
	}
	for _, p := range inst.typ.Properties {
		name := serializedName(inst.typ.Name, p.Name, p.External)
		if isNew {
			if v, ok := inst.props[p.Name]; ok {
				node[name] = v
			}
			continue
		}
		for _, dirty := range m.tracker.Diff(inst) {
			if dirty == p.Name {
				node[name] = inst.props[p.Name]
			}
		}
	}
	for _, p := range inst.typ.Predicates {
		c, ok := inst.collections[p.Name]
		if !ok {
			continue
		}
		elems := c.Diff()
		if isNew {
			elems = c.Get()
		}
		if len(elems) == 0 {
			continue
		}
		name := serializedName(inst.typ.Name, p.Name, p.External)
		refs := make([]any, 0, len(elems))
		for _, el := range elems {
			child, ok := el.(*Instance)
			if !ok {
				refs = append(refs, el)
				continue
			}
			ref := m.mutationNode(child, visited)
			if facet, ok := c.Facet(el); ok {
				for fname, fval := range facet.props {
					ref[name+"|"+fname] = fval
				}
			}
			refs = append(refs, ref)
		}
		node[name] = refs
	}
	return node
}

// mutationUID returns the instance's uid, assigning a blank-node label
// on first use for unsaved instances.
func (i *Instance) mutationUID() string {
	if i.uid != "" {
		return i.uid
	}
	if i.blank == "" {
		i.blank = "b" + uuid.NewString()
	}
	return "_:" + i.blank
}
