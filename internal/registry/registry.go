// Package registry maintains the catalog of response agents the supervisor
// can route to. The catalog loads from a YAML file at startup and can be
// hot reloaded while a watcher is running; registration order is preserved
// because scoring ties break toward the first registered agent.
package registry

import (
	"fmt"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/denisogg/langgraph-ma/pkg/models"
)

// agentFile is the on-disk YAML shape of the agent catalog.
type agentFile struct {
	Agents []*models.AgentProfile `yaml:"agents"`
}

// Registry holds the registered agent profiles. Safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	agents map[string]*models.AgentProfile
	order  []string
	path   string

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// New returns a registry seeded with the built-in default agents.
func New() *Registry {
	r := &Registry{
		agents: make(map[string]*models.AgentProfile),
	}
	for _, profile := range defaultAgents() {
		// Defaults are known-valid.
		_ = r.Register(profile)
	}
	return r
}

// Load reads the agent catalog from a YAML file, replacing any previously
// registered agents. Validation is eager: a malformed profile fails the
// whole load and leaves the registry unchanged.
func Load(path string) (*Registry, error) {
	r := &Registry{
		agents: make(map[string]*models.AgentProfile),
		path:   path,
	}
	if err := r.reload(); err != nil {
		return nil, err
	}
	return r, nil
}

// reload re-reads the catalog file. On any error the current catalog is
// kept as-is.
func (r *Registry) reload() error {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return fmt.Errorf("failed to read agent catalog: %w", err)
	}

	var file agentFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse agent catalog: %w", err)
	}
	if len(file.Agents) == 0 {
		return fmt.Errorf("agent catalog %s defines no agents", r.path)
	}

	agents := make(map[string]*models.AgentProfile, len(file.Agents))
	order := make([]string, 0, len(file.Agents))
	for _, profile := range file.Agents {
		if err := validate(profile); err != nil {
			return fmt.Errorf("agent catalog %s: %w", r.path, err)
		}
		if _, exists := agents[profile.ID]; exists {
			return fmt.Errorf("agent catalog %s: duplicate agent id %q", r.path, profile.ID)
		}
		agents[profile.ID] = profile
		order = append(order, profile.ID)
	}

	r.mu.Lock()
	r.agents = agents
	r.order = order
	r.mu.Unlock()
	return nil
}

// validate checks a profile before registration.
func validate(p *models.AgentProfile) error {
	if p == nil {
		return fmt.Errorf("nil agent profile")
	}
	if p.ID == "" {
		return fmt.Errorf("agent profile missing id")
	}
	if p.Name == "" {
		return fmt.Errorf("agent %q missing name", p.ID)
	}
	if len(p.Keywords) == 0 {
		return fmt.Errorf("agent %q has no keywords", p.ID)
	}
	return nil
}

// Register adds a single agent to the catalog. Registering an existing ID
// is an error; use Load to replace the catalog wholesale.
func (r *Registry) Register(profile *models.AgentProfile) error {
	if err := validate(profile); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.agents[profile.ID]; exists {
		return fmt.Errorf("agent %q already registered", profile.ID)
	}
	r.agents[profile.ID] = profile
	r.order = append(r.order, profile.ID)
	return nil
}

// Get returns the profile for an agent ID.
func (r *Registry) Get(id string) (*models.AgentProfile, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	profile, ok := r.agents[id]
	return profile, ok
}

// Profiles returns all registered agents in registration order.
func (r *Registry) Profiles() []*models.AgentProfile {
	r.mu.RLock()
	defer r.mu.RUnlock()
	profiles := make([]*models.AgentProfile, 0, len(r.order))
	for _, id := range r.order {
		profiles = append(profiles, r.agents[id])
	}
	return profiles
}

// IDs returns the registered agent IDs in registration order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids
}

// AgentKeywords returns each agent's trigger keywords, keyed by agent ID.
func (r *Registry) AgentKeywords() map[string][]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keywords := make(map[string][]string, len(r.agents))
	for id, profile := range r.agents {
		keywords[id] = profile.Keywords
	}
	return keywords
}

// ByCapability returns the first registered agent carrying the capability.
func (r *Registry) ByCapability(cap models.Capability) (*models.AgentProfile, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, id := range r.order {
		if r.agents[id].HasCapability(cap) {
			return r.agents[id], true
		}
	}
	return nil, false
}
