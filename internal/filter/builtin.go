package filter

import (
	"path"
	"strings"

	"github.com/typeminer/typeminer/internal/model"
)

// PrivateModuleFilter excludes modules marked non-public by convention:
// an underscore-prefixed file name or any underscore-prefixed directory
// on the module path.
func PrivateModuleFilter() Filter {
	return Filter{
		name:        "PrivateModuleFilter",
		scopes:      []Scope{ScopeModule},
		description: "drop underscore-prefixed (non-public) modules",
		keepModule: func(ctx ModuleContext) bool {
			for _, part := range strings.Split(ctx.Module.FilePath, "/") {
				if strings.HasPrefix(part, "_") {
					return false
				}
			}
			return true
		},
	}
}

// TestModuleFilter excludes modules identified as test code by path or
// name convention: anything under a test/tests directory, or a file stem
// like test_*, *_test, tests, or conftest.
func TestModuleFilter() Filter {
	return Filter{
		name:        "TestModuleFilter",
		scopes:      []Scope{ScopeModule},
		description: "drop test modules by path and name convention",
		keepModule: func(ctx ModuleContext) bool {
			parts := strings.Split(ctx.Module.FilePath, "/")
			for _, part := range parts[:len(parts)-1] {
				if part == "test" || part == "tests" {
					return false
				}
			}
			stem := strings.TrimSuffix(parts[len(parts)-1], path.Ext(parts[len(parts)-1]))
			switch {
			case stem == "test", stem == "tests", stem == "conftest":
				return false
			case strings.HasPrefix(stem, "test_"), strings.HasSuffix(stem, "_test"):
				return false
			}
			return true
		},
	}
}

// NonCoreModuleFilter keeps only modules inside the package's own source
// tree: some path component (or the file stem itself) must equal the
// repository's normalized package name. Vendored code, build output, and
// examples live outside that tree and are dropped.
func NonCoreModuleFilter() Filter {
	return Filter{
		name:        "NonCoreModuleFilter",
		scopes:      []Scope{ScopeModule},
		description: "drop modules outside the package's own source tree",
		keepModule: func(ctx ModuleContext) bool {
			pkg := normalizePackageName(ctx.Repository.Name)
			if pkg == "" {
				return true
			}
			parts := strings.Split(ctx.Module.FilePath, "/")
			for _, part := range parts[:len(parts)-1] {
				if normalizePackageName(part) == pkg {
					return true
				}
			}
			stem := strings.TrimSuffix(parts[len(parts)-1], path.Ext(parts[len(parts)-1]))
			return normalizePackageName(stem) == pkg
		},
	}
}

// NoStringTypeFilter keeps only callables carrying at least one declared
// type: any annotated parameter or an annotated return. Fully untyped
// functions and methods are dropped.
func NoStringTypeFilter() Filter {
	return Filter{
		name:        "NoStringTypeFilter",
		scopes:      []Scope{ScopeCallable},
		description: "drop callables without any type annotation",
		keepCallable: func(ctx CallableContext) bool {
			if ctx.Callable.Return != nil {
				return true
			}
			for _, p := range ctx.Callable.Parameters {
				if p.Type != nil {
					return true
				}
			}
			return false
		},
	}
}

// EmptyFilter drops containers left without children: classes with no
// methods, then modules with neither functions nor classes, and finally
// reports a repository left with zero modules. It is idempotent and
// intended to run last in a chain.
func EmptyFilter() Filter {
	return Filter{
		name:        "EmptyFilter",
		scopes:      []Scope{ScopeRepository, ScopeModule, ScopeClass},
		description: "drop classes, modules, and repositories left empty",
		keepClass: func(ctx ClassContext) bool {
			return len(ctx.Class.Methods) > 0
		},
		keepModule: func(ctx ModuleContext) bool {
			return len(ctx.Module.Functions) > 0 || len(ctx.Module.Classes) > 0
		},
		keepRepository: func(repo *model.Repository) bool {
			return len(repo.Modules) > 0
		},
	}
}

// normalizePackageName lowercases a name and folds dashes to underscores,
// matching how PyPI project names map onto import package names.
func normalizePackageName(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), "-", "_")
}
