package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gantryio/gantry/internal/model"
)

func TestRefreshStatus(t *testing.T) {
	s := newSyncer(newMemStore(), nil)

	alpha := &model.Component{ID: "alpha", Name: "Alpha", ModuleName: "alpha", Type: model.TypeModule}
	files := []string{
		"docs/design/alpha.md",
		"internal/alpha.go",
		"internal/alpha_test.go",
		"docs/reviews/alpha.md",
	}

	tests := []struct {
		name    string
		files   []string
		results *TestRun
		want    model.Status
	}{
		{
			name:  "all artifacts present, no run",
			files: files,
			want: model.Status{
				SpecExists: true, CodeExists: true, TestExists: true,
				ReviewExists: true, TestStatus: model.TestNotRun,
			},
		},
		{
			name:    "passing run",
			files:   files,
			results: &TestRun{},
			want: model.Status{
				SpecExists: true, CodeExists: true, TestExists: true,
				ReviewExists: true, TestStatus: model.TestPassing,
			},
		},
		{
			name:    "failure attributed by test file",
			files:   files,
			results: &TestRun{Failures: []TestFailure{{File: "internal/alpha_test.go", Name: "TestCharge"}}},
			want: model.Status{
				SpecExists: true, CodeExists: true, TestExists: true,
				ReviewExists: true, TestStatus: model.TestFailing,
			},
		},
		{
			name:    "failure attributed by code file",
			files:   files,
			results: &TestRun{Failures: []TestFailure{{File: "internal/alpha.go", Name: "TestCharge"}}},
			want: model.Status{
				SpecExists: true, CodeExists: true, TestExists: true,
				ReviewExists: true, TestStatus: model.TestFailing,
			},
		},
		{
			name:    "failures in other files do not count",
			files:   files,
			results: &TestRun{Failures: []TestFailure{{File: "internal/beta_test.go", Name: "TestOther"}}},
			want: model.Status{
				SpecExists: true, CodeExists: true, TestExists: true,
				ReviewExists: true, TestStatus: model.TestPassing,
			},
		},
		{
			name:    "missing test file stays not_run even with results",
			files:   []string{"docs/design/alpha.md", "internal/alpha.go"},
			results: &TestRun{},
			want: model.Status{
				SpecExists: true, CodeExists: true, TestStatus: model.TestNotRun,
			},
		},
		{
			name: "nothing present",
			want: model.Status{TestStatus: model.TestNotRun},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alpha.Status = nil
			s.refreshStatus(Input{
				Components:  []*model.Component{alpha},
				Files:       tt.files,
				TestResults: tt.results,
			})
			require.NotNil(t, alpha.Status)
			assert.Equal(t, tt.want, *alpha.Status)
		})
	}
}
