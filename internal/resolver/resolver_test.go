package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openwebgate/vaultrelay/internal/connections"
)

func conn(name, agentID string, common bool) connections.Connection {
	return connections.Connection{KeyID: name + "-id", KeyName: name, AgentID: agentID, IsCommon: common}
}

func keyNames(conns []connections.Connection) []string {
	names := make([]string, len(conns))
	for i, c := range conns {
		names[i] = c.KeyName
	}
	return names
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		conn   connections.Connection
		target string
		want   ScopeClass
	}{
		{"matching agent scope", conn("k", "sales", false), "sales", ScopeAgent},
		{"match uses normalized forms", conn("k", "Sales Team", false), "Sales-Team", ScopeAgent},
		{"agent match outranks common flag", conn("k", "sales", true), "sales", ScopeAgent},
		{"common without match", conn("k", "support", true), "sales", ScopeCommon},
		{"common without target", conn("k", "", true), "", ScopeCommon},
		{"unscoped is legacy", conn("k", "", false), "sales", ScopeLegacy},
		{"unscoped without target is legacy", conn("k", "", false), "", ScopeLegacy},
		{"other agent excluded", conn("k", "support", false), "sales", ScopeExcluded},
		{"scoped without target excluded", conn("k", "support", false), "", ScopeExcluded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.conn, tt.target))
		})
	}
}

func TestResolveScenarioA(t *testing.T) {
	conns := []connections.Connection{
		conn("k1", "sales", false),
		conn("k2", "", true),
	}
	resolved := Resolve(conns, "sales")
	assert.Equal(t, []string{"k1", "k2"}, keyNames(resolved))
}

func TestResolveScenarioB(t *testing.T) {
	conns := []connections.Connection{
		conn("k1", "sales", false),
		conn("k2", "", true),
	}
	resolved := Resolve(conns, "support")
	assert.Equal(t, []string{"k2"}, keyNames(resolved))
}

func TestResolveScenarioCUnscopedWithoutTarget(t *testing.T) {
	resolved := Resolve([]connections.Connection{conn("legacy", "", false)}, "")
	assert.Equal(t, []string{"legacy"}, keyNames(resolved))
}

func TestResolveScenarioDEmptyInput(t *testing.T) {
	resolved := Resolve(nil, "sales")
	require.NotNil(t, resolved)
	assert.Empty(t, resolved)
}

func TestResolveOrdering(t *testing.T) {
	conns := []connections.Connection{
		conn("z-common", "", true),
		conn("a-legacy", "", false),
		conn("b-match", "sales", false),
		conn("a-common", "", true),
		conn("a-match", "sales", false),
	}
	resolved := Resolve(conns, "sales")
	assert.Equal(t,
		[]string{"a-match", "b-match", "a-common", "z-common", "a-legacy"},
		keyNames(resolved))
}

func TestResolveInputOrderIndependent(t *testing.T) {
	base := []connections.Connection{
		conn("k1", "sales", false),
		conn("k2", "", true),
		conn("k3", "", false),
		conn("k4", "support", false),
	}
	want := Resolve(base, "sales")

	permutations := [][]int{
		{3, 2, 1, 0},
		{1, 3, 0, 2},
		{2, 0, 3, 1},
	}
	for _, perm := range permutations {
		shuffled := make([]connections.Connection, len(base))
		for i, p := range perm {
			shuffled[i] = base[p]
		}
		assert.Equal(t, want, Resolve(shuffled, "sales"))
	}
}

func TestResolveNeverIncludesExcluded(t *testing.T) {
	conns := []connections.Connection{
		conn("k1", "support", false),
		conn("k2", "billing", false),
	}
	assert.Empty(t, Resolve(conns, "sales"))
	assert.Empty(t, Resolve(conns, ""))
}

func TestResolveDoesNotMutateInput(t *testing.T) {
	conns := []connections.Connection{
		conn("b", "", true),
		conn("a", "", true),
	}
	Resolve(conns, "")
	assert.Equal(t, "b", conns[0].KeyName)
	assert.Equal(t, "a", conns[1].KeyName)
}
