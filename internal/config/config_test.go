package config

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewSetsFixedDefaults(t *testing.T) {
	r := New("riscv-cpu", "riscv-cpu")
	require.Equal(t, DefaultMarch, r.March)
	require.False(t, r.TwoMemory)
	require.Empty(t, r.ExtraFlags)
}

func TestEncodeProducesFixedFieldSet(t *testing.T) {
	r := New("riscv-cpu", "riscv-cpu")
	r.TopModule = "cpu"
	r.Files = []string{"cpu.v"}
	r.IsSimulable = true

	var buf bytes.Buffer
	require.NoError(t, r.Encode(&buf))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Equal(t, "cpu", decoded["top_module"])
	require.Equal(t, true, decoded["is_simulable"])
	require.Contains(t, decoded, "march")
	require.Contains(t, decoded, "two_memory")
}
