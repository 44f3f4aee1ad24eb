// Package graph implements the Device Graph (spec component C): a
// typed DAG of storage entities with invariant-checked mutation,
// ancestry queries, and name/UUID resolution.
package graph

import (
	"sync"

	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/exp/maps"
)

// FormatAddedFunc and FormatRemovedFunc are the observer callbacks the
// spec requires be fired synchronously on the mutator's thread once a
// format assignment is in-memory-committed.
type FormatAddedFunc func(device *Device)
type FormatRemovedFunc func(device *Device)

// Graph is the device tree. All public methods acquire a single
// instance-wide lock (the "monitor" from the concurrency model) before
// touching any internal state; true reentrancy is achieved structurally
// rather than via goroutine-aware lock counting: every public method is
// a thin locking wrapper around an unexported method, and unexported
// methods call each other directly without re-locking. This gives the
// same happens-before guarantees the spec asks for without a
// goroutine-ID-tracking mutex, which Go's runtime deliberately makes
// awkward to build correctly.
type Graph struct {
	mu sync.Mutex

	devices  map[string]*Device // by name
	byID     map[int64]*Device
	byUUID   map[string]*Device
	nextID   int64

	resolveCache *lru.Cache // name|uuid|path -> *Device

	onFormatAdded   []FormatAddedFunc
	onFormatRemoved []FormatRemovedFunc
}

const resolveCacheSize = 1024

// New constructs an empty Graph.
func New() *Graph {
	cache, err := lru.New(resolveCacheSize)
	if err != nil {
		// Only non-positive sizes error; resolveCacheSize is a positive
		// constant, so this is unreachable.
		panic(err)
	}
	return &Graph{
		devices:      map[string]*Device{},
		byID:         map[int64]*Device{},
		byUUID:       map[string]*Device{},
		resolveCache: cache,
	}
}

// OnFormatAdded registers a callback fired after a format is assigned.
func (g *Graph) OnFormatAdded(fn FormatAddedFunc) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onFormatAdded = append(g.onFormatAdded, fn)
}

// OnFormatRemoved registers a callback fired after a format is cleared.
func (g *Graph) OnFormatRemoved(fn FormatRemovedFunc) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onFormatRemoved = append(g.onFormatRemoved, fn)
}

// Add inserts device into the graph. The device's ID is assigned if
// zero. Name must be unique and satisfy its kind's naming rule.
func (g *Graph) Add(device *Device) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.add(device)
}

func (g *Graph) add(device *Device) error {
	if err := validateDeviceName(device); err != nil {
		return err
	}
	if _, exists := g.devices[device.Name]; exists {
		return ErrNameConflict
	}
	if device.ID == 0 {
		g.nextID++
		device.ID = g.nextID
	}
	g.devices[device.Name] = device
	g.byID[device.ID] = device
	if device.UUID != "" {
		g.byUUID[device.UUID] = device
	}
	g.resolveCache.Remove(device.Name)
	return nil
}

// Hide removes device from active resolution (by name, UUID and cached
// lookup keys) without severing its edges, so that Unhide can put it
// back with its edges intact.
func (g *Graph) Hide(device *Device) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.devices[device.Name]; !ok {
		return ErrNotFound
	}
	delete(g.devices, device.Name)
	if device.UUID != "" && g.byUUID[device.UUID] == device {
		delete(g.byUUID, device.UUID)
	}
	g.resolveCache.Purge()
	return nil
}

// Unhide restores a previously hidden device. Only device itself is
// restored; descendants hidden by separate Hide calls stay hidden until
// Unhide is called on each of them.
func (g *Graph) Unhide(device *Device) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.add(device)
}

// Get returns the device registered under name. Hidden devices are not
// returned; they are tracked by whoever called Hide.
func (g *Graph) Get(name string) (*Device, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	d, ok := g.devices[name]
	return d, ok
}

// Resolve looks a device up by name, UUID, or sysfs path, matching the
// spec's resolve(name | uuid | path) operation. Results are cached by
// key in an LRU the way the teacher caches LV/VG report lookups.
func (g *Graph) Resolve(key string) (*Device, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.resolve(key)
}

func (g *Graph) resolve(key string) (*Device, error) {
	if cached, ok := g.resolveCache.Get(key); ok {
		return cached.(*Device), nil
	}
	if d, ok := g.devices[key]; ok {
		g.resolveCache.Add(key, d)
		return d, nil
	}
	if d, ok := g.byUUID[key]; ok {
		g.resolveCache.Add(key, d)
		return d, nil
	}
	for _, d := range g.devices {
		if d.SysfsPath != "" && d.SysfsPath == key {
			g.resolveCache.Add(key, d)
			return d, nil
		}
	}
	return nil, ErrNotFound
}

// All returns every device currently registered, matching blivet's
// DeviceTree.devices property; order is unspecified.
func (g *Graph) All() []*Device {
	g.mu.Lock()
	defer g.mu.Unlock()
	return maps.Values(g.devices)
}

// IsLeaf reports whether device has no children, per the graph API.
func (g *Graph) IsLeaf(device *Device) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return device.IsLeaf()
}
