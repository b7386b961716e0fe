package filter

import (
	"fmt"
	"strings"
)

// ConfigurationError reports a filter chain that cannot be resolved.
// It is fatal: the run aborts before any extraction or filtering work,
// since a partially-applied chain would silently change dataset semantics.
type ConfigurationError struct {
	Name string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("unknown filter: %q", e.Name)
}

// Registry maps case-insensitive filter names to filters. It is an
// explicit value constructed once at startup and threaded through, not a
// process-wide singleton.
type Registry struct {
	byName map[string]Filter
	order  []string
}

// NewRegistry builds the registry of built-in filters.
func NewRegistry() *Registry {
	r := &Registry{byName: map[string]Filter{}}
	r.register(PrivateModuleFilter())
	r.register(TestModuleFilter())
	r.register(NonCoreModuleFilter())
	r.register(NoStringTypeFilter())
	r.register(EmptyFilter())
	return r
}

func (r *Registry) register(f Filter) {
	key := strings.ToLower(f.Name())
	if _, exists := r.byName[key]; !exists {
		r.order = append(r.order, f.Name())
	}
	r.byName[key] = f
}

// Resolve validates an entire chain of names up front and returns the
// filters in the requested order. Any unknown name yields a
// *ConfigurationError and no filters at all.
func (r *Registry) Resolve(names []string) ([]Filter, error) {
	filters := make([]Filter, 0, len(names))
	for _, name := range names {
		f, ok := r.byName[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, &ConfigurationError{Name: name}
		}
		filters = append(filters, f)
	}
	return filters, nil
}

// ResolveList splits a comma-separated chain and resolves it.
func (r *Registry) ResolveList(chain string) ([]Filter, error) {
	if strings.TrimSpace(chain) == "" {
		return []Filter{}, nil
	}
	return r.Resolve(strings.Split(chain, ","))
}

// Filters returns all registered filters in registration order.
func (r *Registry) Filters() []Filter {
	filters := make([]Filter, 0, len(r.order))
	for _, name := range r.order {
		filters = append(filters, r.byName[strings.ToLower(name)])
	}
	return filters
}
