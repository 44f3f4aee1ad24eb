package graph

import "golang.org/x/exp/maps"

// AddParent appends parent to child's parent list and registers child
// as one of parent's children, after running pre-hooks on both
// endpoints (invariant checks: acyclicity, kind compatibility, sector
// size, the container-semantics rules in internal/container/*) and
// rejecting duplicate edges.
func (g *Graph) AddParent(child, parent *Device) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.addParent(child, parent)
}

func (g *Graph) addParent(child, parent *Device) error {
	for _, p := range child.parents {
		if p == parent.Name {
			return ErrDuplicateEdge
		}
	}
	if err := checkParentKind(child.Kind, parent.Kind); err != nil {
		return err
	}
	if g.dependsOn(parent, child) {
		return ErrCycle
	}
	for _, hook := range preAddParentHooks {
		if err := hook(g, child, parent); err != nil {
			return err
		}
	}
	child.parents = append(child.parents, parent.Name)
	parent.children[child.Name] = true
	g.resolveCache.Purge()
	return nil
}

// RemoveParent detaches parent from child, running pre-hooks that
// enforce redundancy and minimum-member rules before committing.
func (g *Graph) RemoveParent(child, parent *Device) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.removeParent(child, parent)
}

func (g *Graph) removeParent(child, parent *Device) error {
	idx := -1
	for i, p := range child.parents {
		if p == parent.Name {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrNotFound
	}
	for _, hook := range preRemoveParentHooks {
		if err := hook(g, child, parent); err != nil {
			return err
		}
	}
	child.parents = append(child.parents[:idx], child.parents[idx+1:]...)
	delete(parent.children, child.Name)
	g.resolveCache.Purge()
	return nil
}

// preAddParentHook and preRemoveParentHook let internal/container/*
// register kind-specific validation (member-count floors, sector-size
// matching, member format checks) without graph importing those
// packages. Hooks run in registration order and the first error wins.
type preAddParentHook func(g *Graph, child, parent *Device) error
type preRemoveParentHook func(g *Graph, child, parent *Device) error

var preAddParentHooks []preAddParentHook
var preRemoveParentHooks []preRemoveParentHook

// RegisterPreAddParentHook adds a hook run before every AddParent call.
func RegisterPreAddParentHook(hook func(g *Graph, child, parent *Device) error) {
	preAddParentHooks = append(preAddParentHooks, hook)
}

// RegisterPreRemoveParentHook adds a hook run before every RemoveParent call.
func RegisterPreRemoveParentHook(hook func(g *Graph, child, parent *Device) error) {
	preRemoveParentHooks = append(preRemoveParentHooks, hook)
}

// Ancestors returns the transitive closure of device's parents,
// including device itself, with set semantics (no duplicates).
func (g *Graph) Ancestors(device *Device) []*Device {
	g.mu.Lock()
	defer g.mu.Unlock()
	seen := map[string]*Device{}
	g.collectAncestors(device, seen)
	return maps.Values(seen)
}

func (g *Graph) collectAncestors(device *Device, seen map[string]*Device) {
	if _, ok := seen[device.Name]; ok {
		return
	}
	seen[device.Name] = device
	for _, pname := range device.parents {
		if p, ok := g.devices[pname]; ok {
			g.collectAncestors(p, seen)
		}
	}
	if device.Kind == KindLVMLogicalVolume && device.LV != nil && device.LV.OriginOf != "" {
		if origin, ok := g.devices[device.LV.OriginOf]; ok {
			g.collectAncestors(origin, seen)
		}
	}
}

// Descendants returns the transitive closure of device's children,
// including device itself.
func (g *Graph) Descendants(device *Device) []*Device {
	g.mu.Lock()
	defer g.mu.Unlock()
	seen := map[string]*Device{}
	g.collectDescendants(device, seen)
	return maps.Values(seen)
}

func (g *Graph) collectDescendants(device *Device, seen map[string]*Device) {
	if _, ok := seen[device.Name]; ok {
		return
	}
	seen[device.Name] = device
	for cname := range device.children {
		if c, ok := g.devices[cname]; ok {
			g.collectDescendants(c, seen)
		}
	}
}

// DependsOn reports whether b is an ancestor of a (b == a counts).
func (g *Graph) DependsOn(a, b *Device) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.dependsOn(a, b)
}

func (g *Graph) dependsOn(a, b *Device) bool {
	seen := map[string]*Device{}
	g.collectAncestors(a, seen)
	_, ok := seen[b.Name]
	return ok
}
