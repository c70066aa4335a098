package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gantryio/gantry/internal/engine"
	"github.com/gantryio/gantry/internal/layout"
	"github.com/gantryio/gantry/internal/model"
)

func writeProject(t *testing.T, content string) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(ConfigPath(root), []byte(content), 0o644))
	return root
}

const validConfig = `
project: shop
components:
  - name: Billing
    module: billing
    type: context
  - name: Invoices
    module: invoices
    type: module
    parent: Billing
  - name: Payments
    module: payments
    type: module
    parent: Billing
    depends_on: [Invoices]
    description: Payment processing
`

func TestLoad(t *testing.T) {
	root := writeProject(t, validConfig)

	p, err := Load(root)
	require.NoError(t, err)

	assert.Equal(t, "shop", p.ID)
	assert.Equal(t, root, p.Root)
	require.Len(t, p.Components, 3)

	billing := p.Components[0]
	assert.Equal(t, "billing", billing.ID, "id defaults to the module name")
	assert.Equal(t, "shop", billing.ProjectID)
	assert.Equal(t, model.TypeContext, billing.Type)
	assert.False(t, billing.HasParent())

	payments := p.Components[2]
	assert.Equal(t, "billing", payments.ParentID, "parent resolved by display name")
	assert.Equal(t, "Payment processing", payments.Description)

	require.Len(t, p.Dependencies, 1)
	assert.Equal(t, model.Dependency{SourceID: "payments", TargetID: "invoices"}, p.Dependencies[0])

	c, ok := p.ComponentByName("Invoices")
	require.True(t, ok)
	assert.Equal(t, "invoices", c.ID)
	_, ok = p.ComponentByName("Refunds")
	assert.False(t, ok)
}

func TestLoadExplicitID(t *testing.T) {
	root := writeProject(t, `
project: shop
components:
  - id: comp-1
    name: Billing
    module: billing
    type: module
`)
	p, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, "comp-1", p.Components[0].ID)
}

func TestLoadLayoutOverrides(t *testing.T) {
	root := writeProject(t, `
project: shop
layout:
  base:
    code: lib/{module}.ex
    test: test/{module}_test.exs
  types:
    liveview:
      code: lib/web/live/{module}.ex
components:
  - name: Billing
    module: billing
    type: module
  - name: InvoiceLive
    module: invoice_live
    type: liveview
`)
	p, err := Load(root)
	require.NoError(t, err)

	billing, live := p.Components[0], p.Components[1]
	assert.Equal(t, "lib/billing.ex", p.Layout.Path(billing, layout.KindCode))
	assert.Equal(t, "lib/web/live/invoice_live.ex", p.Layout.Path(live, layout.KindCode))
	assert.Equal(t, "test/invoice_live_test.exs", p.Layout.Path(live, layout.KindTest))
	assert.Equal(t, "docs/design/billing.md", p.Layout.Path(billing, layout.KindSpecification))
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		config  string
		wantErr string
	}{
		{
			name:    "missing project name",
			config:  "components:\n  - name: A\n    module: a\n    type: module\n",
			wantErr: "invalid gantry.yaml",
		},
		{
			name:    "no components",
			config:  "project: shop\ncomponents: []\n",
			wantErr: "invalid gantry.yaml",
		},
		{
			name:    "unknown type",
			config:  "project: shop\ncomponents:\n  - name: A\n    module: a\n    type: service\n",
			wantErr: "invalid component type",
		},
		{
			name: "duplicate name",
			config: `project: shop
components:
  - name: A
    module: a
    type: module
  - name: A
    module: b
    type: module
`,
			wantErr: `duplicate component name "A"`,
		},
		{
			name: "duplicate module",
			config: `project: shop
components:
  - name: A
    module: a
    type: module
  - name: B
    module: a
    type: module
`,
			wantErr: `duplicate module name "a"`,
		},
		{
			name: "unknown parent",
			config: `project: shop
components:
  - name: A
    module: a
    type: module
    parent: Ghost
`,
			wantErr: `unknown parent "Ghost"`,
		},
		{
			name: "own parent",
			config: `project: shop
components:
  - name: A
    module: a
    type: module
    parent: A
`,
			wantErr: "cannot be its own parent",
		},
		{
			name: "unknown dependency",
			config: `project: shop
components:
  - name: A
    module: a
    type: module
    depends_on: [Ghost]
`,
			wantErr: `unknown dependency "Ghost"`,
		},
		{
			name: "duplicate dependency edge",
			config: `project: shop
components:
  - name: A
    module: a
    type: module
  - name: B
    module: b
    type: module
    depends_on: [A, A]
`,
			wantErr: `duplicate dependency on "A"`,
		},
		{
			name: "unknown layout type",
			config: `project: shop
layout:
  types:
    service:
      code: lib/{module}.ex
components:
  - name: A
    module: a
    type: module
`,
			wantErr: "layout override",
		},
		{
			name:    "not yaml",
			config:  "{{{",
			wantErr: "parsing gantry.yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := writeProject(t, tt.config)
			_, err := Load(root)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading project definition")
}

func TestListFiles(t *testing.T) {
	root := t.TempDir()
	mk := func(parts ...string) {
		path := filepath.Join(append([]string{root}, parts...)...)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	}
	mk("gantry.yaml")
	mk("docs", "design", "billing.md")
	mk("internal", "billing.go")
	mk(".git", "HEAD")
	mk(".gantry", "requirements.db")
	mk("node_modules", "pkg", "index.js")
	mk("deps", "ecto", "mix.exs")

	files, err := ListFiles(root)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"gantry.yaml",
		"docs/design/billing.md",
		"internal/billing.go",
	}, files)
}

func TestSkippedDir(t *testing.T) {
	assert.True(t, SkippedDir(".git"))
	assert.True(t, SkippedDir(".gantry"))
	assert.True(t, SkippedDir("vendor"))
	assert.False(t, SkippedDir("internal"))
}

func TestLoadTestReport(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		run, err := LoadTestReport("")
		require.NoError(t, err)
		assert.Nil(t, run)
	})

	t.Run("missing file means no run", func(t *testing.T) {
		run, err := LoadTestReport(filepath.Join(t.TempDir(), "test-report.json"))
		require.NoError(t, err)
		assert.Nil(t, run)
	})

	t.Run("failures parsed", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test-report.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"failures":[{"file":"internal/billing.go","name":"TestCharge"}]}`), 0o644))

		run, err := LoadTestReport(path)
		require.NoError(t, err)
		require.NotNil(t, run)
		assert.Equal(t, []engine.TestFailure{{File: "internal/billing.go", Name: "TestCharge"}}, run.Failures)
	})

	t.Run("malformed report", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test-report.json")
		require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

		_, err := LoadTestReport(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing test report")
	})
}
