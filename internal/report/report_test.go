package report

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gantryio/gantry/internal/graph"
	"github.com/gantryio/gantry/internal/model"
	"github.com/gantryio/gantry/internal/project"
)

func fixtureProject() *project.Project {
	billing := &model.Component{
		ID: "billing", Name: "Billing", ModuleName: "billing", Type: model.TypeModule,
		Requirements: []model.Requirement{
			{Name: "spec_file", Category: model.CategorySpecification, Satisfied: true, Score: 1},
			{Name: "implementation_file", Category: model.CategoryCode, Satisfied: false,
				Details: map[string]any{"reason": "File missing"}},
		},
	}
	accounts := &model.Component{
		ID: "accounts", Name: "Accounts", ModuleName: "accounts", Type: model.TypeModule,
		Requirements: []model.Requirement{
			{Name: "spec_file", Category: model.CategorySpecification, Satisfied: true, Score: 1},
		},
	}
	return &project.Project{
		ID:         "shop",
		Components: []*model.Component{billing, accounts},
	}
}

func TestBuild(t *testing.T) {
	p := Build(fixtureProject())

	assert.Equal(t, "shop", p.Project)
	assert.Equal(t, 1, p.Complete)
	require.Len(t, p.Components, 2)

	billing := p.Components[0]
	assert.False(t, billing.Complete)
	assert.Equal(t, 1, billing.Satisfied)
	assert.Equal(t, 2, billing.Total)
	require.Len(t, billing.Requirements, 2)
	assert.Equal(t, "File missing", billing.Requirements[1].Reason)
	assert.Empty(t, billing.Requirements[0].Reason, "satisfied requirements carry no reason")

	accounts := p.Components[1]
	assert.True(t, accounts.Complete)
}

func TestBuildNoRequirementsIsIncomplete(t *testing.T) {
	p := Build(&project.Project{
		ID:         "shop",
		Components: []*model.Component{{ID: "a", Name: "A", Type: model.TypeModule}},
	})
	assert.False(t, p.Components[0].Complete, "a component never synced is not complete")
	assert.Equal(t, 0, p.Complete)
}

func TestProjectJSON(t *testing.T) {
	out, err := Build(fixtureProject()).JSON()
	require.NoError(t, err)

	var parsed Project
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	assert.Equal(t, "shop", parsed.Project)
	assert.Len(t, parsed.Components, 2)
}

func TestProjectText(t *testing.T) {
	out := Build(fixtureProject()).Text()

	assert.Contains(t, out, "COMPONENT")
	assert.Contains(t, out, "Billing")
	assert.Contains(t, out, "1/2")
	assert.Contains(t, out, "implementation_file")
	assert.Contains(t, out, "1/2 components complete")
}

func TestBuildCycles(t *testing.T) {
	a := &model.Component{ID: "a", Name: "A", Type: model.TypeModule}
	b := &model.Component{ID: "b", Name: "B", Type: model.TypeModule}
	p := &project.Project{ID: "shop", Components: []*model.Component{a, b}}

	t.Run("acyclic", func(t *testing.T) {
		rep := BuildCycles(p, nil)
		assert.True(t, rep.Valid)
		assert.Empty(t, rep.Cycles)
		assert.Equal(t, "dependency graph is acyclic\n", rep.Text())
	})

	t.Run("cycle rendered edge by edge", func(t *testing.T) {
		rep := BuildCycles(p, []graph.Cycle{{a, b}})
		assert.False(t, rep.Valid)
		require.Equal(t, [][]string{{"A", "B"}}, rep.Cycles)
		assert.Contains(t, rep.Text(), "A -> B -> A")
	})
}
