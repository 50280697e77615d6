package effect

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/san-kum/ledfx/internal/config"
)

// Factory builds an effect sized to w x h from cfg.
type Factory func(cfg *config.Config, w, h int) (Effect, error)

type entry struct {
	name    string
	desc    string
	factory Factory
}

type Registry struct {
	effects map[string]*entry
	aliases map[string]string
}

func NewRegistry() *Registry {
	return &Registry{
		effects: make(map[string]*entry),
		aliases: make(map[string]string),
	}
}

// Register adds an effect under name and any number of aliases.
func (r *Registry) Register(name, desc string, f Factory, aliases ...string) {
	r.effects[name] = &entry{name: name, desc: desc, factory: f}
	for _, a := range aliases {
		r.aliases[a] = name
	}
}

// Resolve maps a name or alias to the registered name.
func (r *Registry) Resolve(name string) (string, error) {
	if _, ok := r.effects[name]; ok {
		return name, nil
	}
	if canonical, ok := r.aliases[name]; ok {
		return canonical, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownEffect, name)
}

// ResolveDemo maps a numeric demo index to an effect. Numbers without an
// alias fall back to fallback.
func (r *Registry) ResolveDemo(name, fallback string) (string, error) {
	canonical, err := r.Resolve(name)
	if err == nil {
		return canonical, nil
	}
	if _, convErr := strconv.Atoi(name); convErr == nil {
		return r.Resolve(fallback)
	}
	return "", err
}

func (r *Registry) Get(name string, cfg *config.Config, w, h int) (Effect, error) {
	canonical, err := r.Resolve(name)
	if err != nil {
		return nil, err
	}
	return r.effects[canonical].factory(cfg, w, h)
}

func (r *Registry) Describe(name string) string {
	if e, ok := r.effects[name]; ok {
		return e.desc
	}
	return ""
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.effects))
	for name := range r.effects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
