package hcl_adapter

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/burstplan/internal/config"
	"github.com/specialistvlad/burstplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pipelineHCL = `
settings {
  matcher = "minmin"
}

resource "vm0" {
  mips      = 1000
  pes       = 2
  bandwidth = 100
}

resource "vm1" {
  mips           = 500
  bandwidth      = 50
  state          = "busy"
  requested_load = 3
}

task "extract" {
  length = 1200

  file "raw.csv" {
    size = mb(2)
    kind = "output"
  }
}

task "transform" {
  length     = 4000
  pes        = 2
  depends_on = ["extract"]

  file "raw.csv" {
    size = mb(2)
    kind = "input"
  }
  file "clean.parquet" {
    size = max(kb(1500), mb(1))
    kind = "output"
  }
}
`

func TestLoader_Load(t *testing.T) {
	ctx, _ := testutil.NewContext(t)
	dir := testutil.WriteFiles(t, map[string]string{"pipeline.hcl": pipelineHCL})

	model, err := NewLoader().Load(ctx, dir)
	require.NoError(t, err)

	expected := &config.Model{
		Settings: &config.Settings{Planner: config.PlannerHEFT, Matcher: config.MatcherMinMin},
		Resources: []*config.Resource{
			{Name: "vm0", MIPS: 1000, PEs: 2, Bandwidth: 100},
			{Name: "vm1", MIPS: 500, PEs: 1, Bandwidth: 50, State: "busy", RequestedLoad: 3},
		},
		Tasks: []*config.Task{
			{Name: "extract", Length: 1200, PEs: 1, Files: []*config.File{
				{Name: "raw.csv", Size: 2_000_000, Kind: "output"},
			}},
			{Name: "transform", Length: 4000, PEs: 2, DependsOn: []string{"extract"}, Files: []*config.File{
				{Name: "raw.csv", Size: 2_000_000, Kind: "input"},
				{Name: "clean.parquet", Size: 1_500_000, Kind: "output"},
			}},
		},
	}
	if diff := cmp.Diff(expected, model); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoader_MergesFiles(t *testing.T) {
	ctx, _ := testutil.NewContext(t)
	dir := testutil.WriteFiles(t, map[string]string{
		"a_resources.hcl": `
settings {
  planner = "none"
  matcher = "minmin"
}
resource "r0" {
  mips      = 10
  bandwidth = 1
}`,
		"b_tasks.hcl": `
settings {
  matcher = "static"
}
task "only" {
  length = 5
}`,
		"notes.txt": "ignored",
	})

	model, err := NewLoader().Load(ctx, dir)
	require.NoError(t, err)

	assert.Equal(t, &config.Settings{Planner: config.PlannerNone, Matcher: config.MatcherStatic}, model.Settings)
	require.Len(t, model.Resources, 1)
	require.Len(t, model.Tasks, 1)
	assert.Equal(t, "only", model.Tasks[0].Name)
}

func TestLoader_SingleFilePath(t *testing.T) {
	ctx, _ := testutil.NewContext(t)
	dir := testutil.WriteFiles(t, map[string]string{
		"one.hcl": `task "a" { length = 1 }`,
		"two.hcl": `task "b" { length = 1 }`,
	})

	model, err := NewLoader().Load(ctx, filepath.Join(dir, "two.hcl"))
	require.NoError(t, err)
	require.Len(t, model.Tasks, 1)
	assert.Equal(t, "b", model.Tasks[0].Name)
}

func TestLoader_PEsDefaultOnlyWhenOmitted(t *testing.T) {
	ctx, _ := testutil.NewContext(t)
	dir := testutil.WriteFiles(t, map[string]string{"pes.hcl": `
resource "implicit" {
  mips      = 1
  bandwidth = 1
}
resource "explicit" {
  mips      = 1
  bandwidth = 1
  pes       = 0
}
task "implicit" {
  length = 1
}
task "explicit" {
  length = 1
  pes    = 0
}`})

	model, err := NewLoader().Load(ctx, dir)
	require.NoError(t, err)

	require.Len(t, model.Resources, 2)
	assert.Equal(t, 1, model.Resources[0].PEs)
	assert.Equal(t, 0, model.Resources[1].PEs)
	require.Len(t, model.Tasks, 2)
	assert.Equal(t, 1, model.Tasks[0].PEs)
	assert.Equal(t, 0, model.Tasks[1].PEs)
}

func TestLoader_Errors(t *testing.T) {
	testCases := []struct {
		name     string
		content  string
		contains string
	}{
		{
			name:     "syntax error",
			content:  `task "a" {`,
			contains: "failed to parse HCL file",
		},
		{
			name:     "unknown block",
			content:  `runner "x" {}`,
			contains: "failed to decode HCL file",
		},
		{
			name:     "missing required attribute",
			content:  `resource "r" { mips = 1 }`,
			contains: "bandwidth",
		},
		{
			name:     "fractional size",
			content: `
task "a" {
  length = 1
  file "f" {
    size = 1.5
    kind = "input"
  }
}`,
			contains: "failed to decode HCL file",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, _ := testutil.NewContext(t)
			dir := testutil.WriteFiles(t, map[string]string{"bad.hcl": tc.content})

			_, err := NewLoader().Load(ctx, dir)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.contains)
		})
	}

	t.Run("no files", func(t *testing.T) {
		ctx, _ := testutil.NewContext(t)
		_, err := NewLoader().Load(ctx, t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no .hcl files found")
	})
}
