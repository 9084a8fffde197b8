package ai

import (
	"fmt"
	"sort"
	"sync"
)

// PresetInfo contains metadata about a registered heuristic preset.
type PresetInfo struct {
	ID    string
	Title string
}

// Factory creates a new evaluator for a preset.
type Factory func() Evaluator

type preset struct {
	title   string
	factory Factory
}

var (
	presets = make(map[string]preset)
	mu      sync.RWMutex
)

// DefaultPreset is used when no heuristic is configured.
const DefaultPreset = "balanced"

func init() {
	Register(DefaultPreset, "Balanced (mobility, order, merges)", weighted(DefaultWeights()))
	Register("mobility", "Mobility (keep the board open)", weighted(Weights{
		Empty:        600,
		Monotonicity: 10,
		Smoothness:   5,
		Merges:       400,
		MaxTile:      10,
	}))
	Register("corner", "Corner (snake the largest tile into a corner)", weighted(Weights{
		Empty:        200,
		Monotonicity: 120,
		Smoothness:   5,
		Merges:       500,
		MaxTile:      40,
		Corner:       1500,
	}))
}

func weighted(w Weights) Factory {
	return func() Evaluator {
		return &Heuristic{w: w}
	}
}

// Register adds a heuristic preset.
// Panics if a preset with the same ID is already registered.
func Register(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := presets[id]; exists {
		panic(fmt.Sprintf("ai: heuristic preset %q already registered", id))
	}
	presets[id] = preset{title: title, factory: f}
}

// List returns all registered presets, sorted by ID.
func List() []PresetInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]PresetInfo, 0, len(presets))
	for id, p := range presets {
		result = append(result, PresetInfo{ID: id, Title: p.title})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates the evaluator of a preset.
func Create(id string) (Evaluator, error) {
	mu.RLock()
	defer mu.RUnlock()

	p, ok := presets[id]
	if !ok {
		return nil, fmt.Errorf("ai: unknown heuristic preset %q", id)
	}
	return p.factory(), nil
}

// Exists checks if a preset with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := presets[id]
	return ok
}
