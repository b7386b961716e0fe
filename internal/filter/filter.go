// Package filter prunes an assembled entity tree through an ordered chain
// of named, scope-tagged predicate filters. Filters never mutate the tree
// they are given: each application builds a new tree, sharing unmodified
// entities with its input.
package filter

import "github.com/typeminer/typeminer/internal/model"

// Scope identifies the entity granularity a predicate runs at. The
// pipeline driver switches on scopes to decide which tree level to
// rebuild; pruning a container implicitly prunes everything it owns.
type Scope int

const (
	ScopeRepository Scope = iota
	ScopeModule
	ScopeClass
	ScopeCallable
)

func (s Scope) String() string {
	switch s {
	case ScopeRepository:
		return "repository"
	case ScopeModule:
		return "module"
	case ScopeClass:
		return "class"
	case ScopeCallable:
		return "function"
	}
	return "unknown"
}

// ModuleContext gives a module predicate its module plus the identity of
// the owning repository.
type ModuleContext struct {
	Repository *model.Repository
	Module     *model.Module
}

// ClassContext gives a class predicate its class plus the owning module.
// The class is seen after any callable-scope pruning of the same filter.
type ClassContext struct {
	Module *model.Module
	Class  *model.Class
}

// CallableView is the read-only slice of a function or method that
// callable predicates decide on.
type CallableView struct {
	Identifier string
	Parameters []model.Parameter
	Return     *string
}

// CallableContext gives a callable predicate the callable view plus its
// owners. Class is nil for module-level functions.
type CallableContext struct {
	Module   *model.Module
	Class    *model.Class
	Callable CallableView
}

// Filter is a named pruning pass. Exactly the predicates matching its
// scope tags are set; the zero predicate at a scope means "keep all" at
// that scope.
type Filter struct {
	name           string
	scopes         []Scope
	description    string
	keepRepository func(*model.Repository) bool
	keepModule     func(ModuleContext) bool
	keepClass      func(ClassContext) bool
	keepCallable   func(CallableContext) bool
}

// Name returns the registry name of the filter.
func (f Filter) Name() string { return f.name }

// Scopes returns the granularities the filter prunes at.
func (f Filter) Scopes() []Scope { return f.scopes }

// Description returns the one-line summary shown by the CLI.
func (f Filter) Description() string { return f.description }

// Apply runs one bottom-up pruning pass (callables, then classes, then
// modules, then the repository) and returns the new tree. The boolean is
// false when a repository-scope predicate rejects the pruned repository
// as a whole.
func (f Filter) Apply(repo model.Repository) (model.Repository, bool) {
	out := repo
	out.Modules = make([]model.Module, 0, len(repo.Modules))

	for i := range repo.Modules {
		module := repo.Modules[i]

		if f.keepCallable != nil {
			module.Functions = f.pruneFunctions(&module)
			module.Classes = f.pruneMethods(&module)
		}
		if f.keepClass != nil {
			module.Classes = f.pruneClasses(&module)
		}
		if f.keepModule != nil && !f.keepModule(ModuleContext{Repository: &repo, Module: &module}) {
			continue
		}
		out.Modules = append(out.Modules, module)
	}

	if f.keepRepository != nil && !f.keepRepository(&out) {
		return out, false
	}
	return out, true
}

func (f Filter) pruneFunctions(module *model.Module) []model.Function {
	kept := make([]model.Function, 0, len(module.Functions))
	for i := range module.Functions {
		fn := &module.Functions[i]
		ctx := CallableContext{
			Module: module,
			Callable: CallableView{
				Identifier: fn.Identifier,
				Parameters: fn.Parameters,
				Return:     fn.Return,
			},
		}
		if f.keepCallable(ctx) {
			kept = append(kept, *fn)
		}
	}
	return kept
}

func (f Filter) pruneMethods(module *model.Module) []model.Class {
	classes := make([]model.Class, 0, len(module.Classes))
	for i := range module.Classes {
		class := module.Classes[i]
		kept := make([]model.Method, 0, len(class.Methods))
		for j := range class.Methods {
			m := &class.Methods[j]
			ctx := CallableContext{
				Module: module,
				Class:  &class,
				Callable: CallableView{
					Identifier: m.Identifier,
					Parameters: m.Parameters,
					Return:     m.Return,
				},
			}
			if f.keepCallable(ctx) {
				kept = append(kept, *m)
			}
		}
		class.Methods = kept
		classes = append(classes, class)
	}
	return classes
}

func (f Filter) pruneClasses(module *model.Module) []model.Class {
	kept := make([]model.Class, 0, len(module.Classes))
	for i := range module.Classes {
		class := module.Classes[i]
		if f.keepClass(ClassContext{Module: module, Class: &class}) {
			kept = append(kept, class)
		}
	}
	return kept
}

// Pipeline applies filters in caller order; later filters only see what
// earlier filters retained.
type Pipeline struct {
	filters []Filter
}

// NewPipeline builds a pipeline over an already-resolved filter chain.
func NewPipeline(filters []Filter) *Pipeline {
	return &Pipeline{filters: filters}
}

// Run applies every filter in order and returns the final tree. The
// boolean is false when any repository-scope predicate dropped the whole
// repository; the returned tree is still the last state produced.
func (p *Pipeline) Run(repo model.Repository) (model.Repository, bool) {
	keptRepo := true
	for _, f := range p.filters {
		var kept bool
		repo, kept = f.Apply(repo)
		if !kept {
			keptRepo = false
		}
	}
	return repo, keptRepo
}
