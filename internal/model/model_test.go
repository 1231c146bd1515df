package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatches(t *testing.T) {
	out := FileItem{Name: "a.dat", Size: 10, Kind: FileOutput}
	in := FileItem{Name: "a.dat", Size: 10, Kind: FileInput}

	assert.True(t, Matches(out, in))
	assert.False(t, Matches(in, out), "direction matters")
	assert.False(t, Matches(out, FileItem{Name: "b.dat", Kind: FileInput}))
	assert.False(t, Matches(out, out))
}

func TestParseFileKind(t *testing.T) {
	k, err := ParseFileKind("output")
	require.NoError(t, err)
	assert.Equal(t, FileOutput, k)

	k, err = ParseFileKind("in")
	require.NoError(t, err)
	assert.Equal(t, FileInput, k)

	_, err = ParseFileKind("both")
	assert.ErrorContains(t, err, "unknown file kind")
}

func TestTask_Validate(t *testing.T) {
	t.Run("valid task", func(t *testing.T) {
		task := &Task{ID: "a", Length: 100, PEs: 1, Files: []FileItem{{Name: "f", Size: 1}}}
		assert.NoError(t, task.Validate())
	})

	t.Run("reports every problem", func(t *testing.T) {
		task := &Task{ID: "a", Length: -1, PEs: 0, Files: []FileItem{{Name: "", Size: -5}}}
		err := task.Validate()
		require.Error(t, err)
		assert.ErrorContains(t, err, "length must not be negative")
		assert.ErrorContains(t, err, "pes must be at least 1")
		assert.ErrorContains(t, err, "file name must not be empty")
		assert.ErrorContains(t, err, "negative size")
	})
}

func TestTask_Files(t *testing.T) {
	task := &Task{ID: "a", PEs: 1, Files: []FileItem{
		{Name: "in1", Kind: FileInput},
		{Name: "out1", Kind: FileOutput},
		{Name: "in2", Kind: FileInput},
	}}
	assert.Equal(t, []FileItem{{Name: "in1", Kind: FileInput}, {Name: "in2", Kind: FileInput}}, task.Inputs())
	assert.Equal(t, []FileItem{{Name: "out1", Kind: FileOutput}}, task.Outputs())
	assert.False(t, task.Assigned())

	task.ResourceID = "vm0"
	assert.True(t, task.Assigned())
}

func TestNewPool(t *testing.T) {
	t.Run("keeps order and indexes ids", func(t *testing.T) {
		p, err := NewPool(
			&Resource{ID: "vm0", MIPS: 100, PEs: 1, Bandwidth: 10},
			&Resource{ID: "vm1", MIPS: 200, PEs: 2, Bandwidth: 20, State: ResourceBusy},
		)
		require.NoError(t, err)
		assert.Equal(t, 2, p.Len())
		assert.Equal(t, "vm1", p.Get(1).ID)

		ref, ok := p.Lookup("vm1")
		require.True(t, ok)
		assert.Equal(t, ResourceRef(1), ref)

		_, ok = p.Lookup("missing")
		assert.False(t, ok)

		idle := p.Idle()
		require.Len(t, idle, 1)
		assert.Equal(t, "vm0", idle[0].ID)
		assert.Len(t, p.All(), 2)
	})

	t.Run("aggregates validation errors", func(t *testing.T) {
		_, err := NewPool(
			&Resource{ID: "vm0", MIPS: 0, PEs: 1, Bandwidth: 10},
			&Resource{ID: "vm1", MIPS: 10, PEs: 0, Bandwidth: 0},
			&Resource{ID: "vm2", MIPS: 10, PEs: 1, Bandwidth: 10},
			&Resource{ID: "vm2", MIPS: 10, PEs: 1, Bandwidth: 10},
		)
		require.Error(t, err)
		assert.ErrorContains(t, err, "mips must be positive")
		assert.ErrorContains(t, err, "pes must be at least 1")
		assert.ErrorContains(t, err, "bandwidth must be positive")
		assert.ErrorContains(t, err, "duplicate resource id 'vm2'")
	})

	t.Run("nil resource is reported at its input position", func(t *testing.T) {
		_, err := NewPool(
			&Resource{ID: "vm0", MIPS: 0, PEs: 1, Bandwidth: 10},
			&Resource{ID: "vm1", MIPS: 10, PEs: 1, Bandwidth: 10},
			nil,
		)
		require.Error(t, err)
		assert.ErrorContains(t, err, "resource #2 is nil")
	})

	t.Run("empty pool is allowed", func(t *testing.T) {
		p, err := NewPool()
		require.NoError(t, err)
		assert.Zero(t, p.Len())
	})
}

func TestParseResourceState(t *testing.T) {
	s, err := ParseResourceState("")
	require.NoError(t, err)
	assert.Equal(t, ResourceIdle, s)

	s, err = ParseResourceState("busy")
	require.NoError(t, err)
	assert.Equal(t, ResourceBusy, s)
	assert.Equal(t, "busy", s.String())

	_, err = ParseResourceState("sleeping")
	assert.Error(t, err)
}
