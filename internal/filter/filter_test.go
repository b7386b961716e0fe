package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typeminer/typeminer/internal/model"
)

// Test Plan for Filter Application and Pipelines:
// - Apply() never mutates the input tree
// - Pipeline.Run() applies filters left to right; later filters only see
//   what earlier filters retained
// - Filter order changes the outcome when scopes interact
// - Reversed chains converge to the same tree once EmptyFilter runs last
// - An empty pipeline is the identity
// - A repository drop is sticky across later filters

func TestApply_DoesNotMutateInput(t *testing.T) {
	repo := model.Repository{
		Name: "demo",
		Modules: []model.Module{
			{
				Name:     "m",
				FilePath: "m.py",
				Functions: []model.Function{
					{Identifier: "typed", Return: strPtr("int")},
					{Identifier: "untyped"},
				},
			},
		},
	}

	out, _ := NoStringTypeFilter().Apply(repo)

	require.Len(t, out.Modules[0].Functions, 1)
	// The input still has both functions.
	assert.Len(t, repo.Modules[0].Functions, 2)
}

func TestPipeline_EmptyChainIsIdentity(t *testing.T) {
	repo := model.Repository{
		Name: "demo",
		Modules: []model.Module{
			{Name: "hollow", FilePath: "hollow.py"},
		},
	}

	out, kept := NewPipeline(nil).Run(repo)

	assert.True(t, kept)
	assert.Equal(t, repo, out)
}

func TestPipeline_OrderMatters(t *testing.T) {
	// A module whose only callable is untyped: running NoStringTypeFilter
	// before EmptyFilter empties the module and then drops it; EmptyFilter
	// alone would have kept it.
	newRepo := func() model.Repository {
		return model.Repository{
			Name: "demo",
			Modules: []model.Module{
				{
					Name:      "m",
					FilePath:  "m.py",
					Functions: []model.Function{{Identifier: "untyped"}},
				},
			},
		}
	}

	pruneFirst, keptA := NewPipeline([]Filter{NoStringTypeFilter(), EmptyFilter()}).Run(newRepo())
	assert.False(t, keptA)
	assert.Empty(t, pruneFirst.Modules)

	emptyFirst, keptB := NewPipeline([]Filter{EmptyFilter(), NoStringTypeFilter()}).Run(newRepo())
	assert.True(t, keptB)
	require.Len(t, emptyFirst.Modules, 1)
	assert.Empty(t, emptyFirst.Modules[0].Functions)
}

func TestPipeline_ReversedChainConvergesWithTrailingEmptyFilter(t *testing.T) {
	// A class whose only method is untyped: pruning order differs between
	// the two chains, but re-running EmptyFilter last must converge both
	// to the same final tree.
	newRepo := func() model.Repository {
		return model.Repository{
			Name: "demo",
			Modules: []model.Module{
				{
					Name:     "m",
					FilePath: "m.py",
					Classes: []model.Class{
						{Identifier: "C", Methods: []model.Method{{Identifier: "untyped"}}},
					},
				},
			},
		}
	}

	forward, keptForward := NewPipeline([]Filter{
		NoStringTypeFilter(), EmptyFilter(),
	}).Run(newRepo())

	reversed, keptReversed := NewPipeline([]Filter{
		EmptyFilter(), NoStringTypeFilter(), EmptyFilter(),
	}).Run(newRepo())

	assert.Equal(t, forward, reversed)
	assert.Equal(t, keptForward, keptReversed)
	assert.False(t, keptForward)
	assert.Empty(t, forward.Modules)
}

func TestPipeline_RepositoryDropIsSticky(t *testing.T) {
	repo := model.Repository{
		Name: "demo",
		Modules: []model.Module{
			{Name: "hollow", FilePath: "hollow.py"},
		},
	}

	// EmptyFilter drops the repository; the following filter keeps
	// everything, but the drop verdict stands.
	_, kept := NewPipeline([]Filter{EmptyFilter(), PrivateModuleFilter()}).Run(repo)
	assert.False(t, kept)
}

func TestScope_String(t *testing.T) {
	assert.Equal(t, "repository", ScopeRepository.String())
	assert.Equal(t, "module", ScopeModule.String())
	assert.Equal(t, "class", ScopeClass.String())
	assert.Equal(t, "function", ScopeCallable.String())
}
