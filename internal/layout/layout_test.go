package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gantryio/gantry/internal/model"
)

func TestPathDefaults(t *testing.T) {
	r := NewResolver(Conventions{}, nil)
	c := &model.Component{Name: "Billing", ModuleName: "billing", Type: model.TypeModule}

	tests := []struct {
		kind Kind
		want string
	}{
		{KindSpecification, "docs/design/billing.md"},
		{KindCode, "internal/billing.go"},
		{KindTest, "internal/billing_test.go"},
		{KindReview, "docs/reviews/billing.md"},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.want, r.Path(c, tt.kind))
		})
	}
}

func TestPathPlaceholders(t *testing.T) {
	r := NewResolver(Conventions{
		Specification: "specs/{type}/{name}/{module}.md",
	}, nil)
	c := &model.Component{Name: "Billing", ModuleName: "billing", Type: model.TypeContext}

	assert.Equal(t, "specs/context/Billing/billing.md", r.Path(c, KindSpecification))
}

func TestPathBaseOverridePartial(t *testing.T) {
	// Overriding one convention leaves the defaults for the rest.
	r := NewResolver(Conventions{Code: "lib/{module}.ex"}, nil)
	c := &model.Component{ModuleName: "billing", Type: model.TypeModule}

	assert.Equal(t, "lib/billing.ex", r.Path(c, KindCode))
	assert.Equal(t, "docs/design/billing.md", r.Path(c, KindSpecification))
}

func TestPathPerTypeOverride(t *testing.T) {
	r := NewResolver(
		Conventions{Code: "lib/{module}.ex"},
		map[model.ComponentType]Conventions{
			model.TypeLiveView: {Code: "lib/web/live/{module}.ex"},
		},
	)

	live := &model.Component{ModuleName: "invoice_live", Type: model.TypeLiveView}
	mod := &model.Component{ModuleName: "billing", Type: model.TypeModule}

	assert.Equal(t, "lib/web/live/invoice_live.ex", r.Path(live, KindCode))
	assert.Equal(t, "lib/billing.ex", r.Path(mod, KindCode))
	// Kinds absent from the override fall back to the base.
	assert.Equal(t, "docs/design/invoice_live.md", r.Path(live, KindSpecification))
}

func TestMatch(t *testing.T) {
	r := NewResolver(Conventions{}, nil)
	billing := &model.Component{ID: "billing", Name: "Billing", ModuleName: "billing", Type: model.TypeModule}
	accounts := &model.Component{ID: "accounts", Name: "Accounts", ModuleName: "accounts", Type: model.TypeModule}
	components := []*model.Component{billing, accounts}

	c, kind, ok := r.Match(components, "internal/accounts_test.go")
	require.True(t, ok)
	assert.Same(t, accounts, c)
	assert.Equal(t, KindTest, kind)

	c, kind, ok = r.Match(components, "docs/design/billing.md")
	require.True(t, ok)
	assert.Same(t, billing, c)
	assert.Equal(t, KindSpecification, kind)

	_, _, ok = r.Match(components, "README.md")
	assert.False(t, ok)
}

func TestKinds(t *testing.T) {
	assert.Equal(t, []Kind{KindSpecification, KindCode, KindTest, KindReview}, Kinds())
}
