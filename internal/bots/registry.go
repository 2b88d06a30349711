package bots

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// PersonaRegistry loads and looks up named personas, mirroring
// holdem/npc.PersonaRegistry's mutex-protected map and LoadFromFile shape.
type PersonaRegistry struct {
	mu       sync.RWMutex
	personas map[string]Persona
}

func NewRegistry() *PersonaRegistry {
	r := &PersonaRegistry{personas: map[string]Persona{}}
	r.personas[Baseline.ID] = Baseline
	return r
}

// LoadFromFile merges personas from a JSON array file into the registry,
// same non-fatal-if-missing treatment as the teacher's main.go NPC-persona
// loading (tries a path, logs and moves on if absent).
func (r *PersonaRegistry) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var list []Persona
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("bots: parse %s: %w", path, err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range list {
		r.personas[p.ID] = p
	}
	return nil
}

func (r *PersonaRegistry) Get(id string) (Persona, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.personas[id]
	return p, ok
}

func (r *PersonaRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.personas)
}
