package docval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gantryio/gantry/internal/model"
)

func TestDocTypeFor(t *testing.T) {
	v := NewValidator()

	assert.Equal(t, "container", v.DocTypeFor(model.TypeContext))
	assert.Equal(t, "container", v.DocTypeFor(model.TypeCoordinator))
	assert.Equal(t, "unit", v.DocTypeFor(model.TypeModule))
	assert.Equal(t, "unit", v.DocTypeFor(model.TypeLiveView))
}

func TestValidate(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name     string
		content  string
		docType  string
		valid    bool
		wantDesc string
	}{
		{
			name:    "valid unit document",
			content: "# Billing\n\n## Purpose\n\nx\n\n## Public API\n\ny\n",
			docType: "unit",
			valid:   true,
		},
		{
			name:    "valid container document",
			content: "## Purpose\n\nx\n\n## Entity Ownership\n\n- Invoice\n\n## Public API\n\ny\n",
			docType: "container",
			valid:   true,
		},
		{
			name:     "missing one section",
			content:  "## Purpose\n\nx\n",
			docType:  "unit",
			wantDesc: "missing required sections: ## Public API",
		},
		{
			name:     "missing several sections",
			content:  "# Billing\n\nprose only\n",
			docType:  "container",
			wantDesc: "missing required sections: ## Purpose, ## Entity Ownership, ## Public API",
		},
		{
			name:     "empty document",
			content:  "  \n\t\n",
			docType:  "unit",
			wantDesc: "document is empty",
		},
		{
			name:     "unregistered schema",
			content:  "## Purpose\n",
			docType:  "ghost",
			wantDesc: `no document schema registered as "ghost"`,
		},
		{
			name:    "indented heading still counts",
			content: "  ## Purpose\n\n## Public API\n",
			docType: "unit",
			valid:   true,
		},
		{
			name:     "heading in prose does not count",
			content:  "the ## Purpose marker\n\n## Public API\n",
			docType:  "unit",
			wantDesc: "missing required sections: ## Purpose",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, desc := v.Validate(tt.content, tt.docType)
			assert.Equal(t, tt.valid, valid)
			if !tt.valid {
				assert.Equal(t, tt.wantDesc, desc)
			}
		})
	}
}

func TestRegisterAndBind(t *testing.T) {
	v := NewValidator()
	v.Register(DocType{Name: "adr", RequiredSections: []string{"## Decision", "## Consequences"}})
	v.Bind(model.TypeTask, "adr")

	require.Equal(t, "adr", v.DocTypeFor(model.TypeTask))

	valid, _ := v.Validate("## Decision\n\nx\n\n## Consequences\n\ny\n", "adr")
	assert.True(t, valid)

	valid, desc := v.Validate("## Decision\n", "adr")
	assert.False(t, valid)
	assert.Contains(t, desc, "## Consequences")
}
