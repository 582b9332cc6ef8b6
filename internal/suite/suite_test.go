package suite

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// makeSuitesDir lays out the fragment of a repository checkout the selector
// cares about and returns the repository root.
func makeSuitesDir(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	err := os.MkdirAll(filepath.Join(root, "test", "e2e", "resources", "suites"), 0o755)
	require.NoError(t, err)

	return root
}

func TestCanonical(t *testing.T) {
	tests := []struct {
		alias   Alias
		want    string
		wantErr bool
	}{
		{alias: Sanity, want: "TestSanity"},
		{alias: P0, want: "TestP0"},
		{alias: P1, want: "TestP1"},
		{alias: CRD, want: "TestCRDValidation"},
		{alias: Upgrade, want: "TestUpgrade"},
		{alias: RBAC, want: "TestRBAC"},
		{alias: LDAP, want: "TestLDAP"},
		{alias: "smoke", wantErr: true},
		{alias: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(string(tt.alias), func(t *testing.T) {
			got, err := tt.alias.Canonical()
			if tt.wantErr {
				assert.Error(t, err)
				assert.False(t, tt.alias.Valid())
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, tt.alias.Valid())
		})
	}
}

func TestNamesOrder(t *testing.T) {
	assert.Equal(t, []string{"sanity", "p0", "p1", "crd", "upgrade", "rbac", "ldap"}, Names())
	assert.Len(t, Aliases(), len(Names()))
}

func TestSelectAlias(t *testing.T) {
	selection, err := Select(P0, nil, "/does/not/matter")
	require.NoError(t, err)

	assert.Equal(t, "TestP0", selection.Name)
	assert.Nil(t, selection.Transient)
}

func TestSelectUnknownAlias(t *testing.T) {
	_, err := Select("nightly", nil, "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "nightly")
}

func TestSelectExplicitTests(t *testing.T) {
	root := makeSuitesDir(t)

	selection, err := Select("", []string{"TestCreateCluster", "TestScaleUp"}, root)
	require.NoError(t, err)
	require.NotNil(t, selection.Transient)

	// The identifier must match the file so the runner can find it.
	assert.Equal(t, filepath.Join(root, "test", "e2e", "resources", "suites"), filepath.Dir(selection.Transient.Path))
	base := filepath.Base(selection.Transient.Path)
	assert.True(t, strings.HasPrefix(base, "single-"))
	assert.True(t, strings.HasSuffix(base, ".yaml"))
	assert.Equal(t, strings.TrimSuffix(base, ".yaml"), selection.Name)

	data, err := os.ReadFile(selection.Transient.Path)
	require.NoError(t, err)

	var definition Definition
	require.NoError(t, yaml.Unmarshal(data, &definition))

	assert.Equal(t, "TestSingle", definition.Suite)
	assert.Equal(t, "240m", definition.Timeout)
	require.Len(t, definition.Groups, 1)
	assert.Equal(t, "Group1", definition.Groups[0].Name)
	assert.Equal(t, []string{"BasicCluster", "NewCluster1"}, definition.Groups[0].Clusters)
	require.Len(t, definition.Groups[0].Testcases, 2)
	assert.Equal(t, "TestCreateCluster", definition.Groups[0].Testcases[0].Name)
	assert.Equal(t, "TestScaleUp", definition.Groups[0].Testcases[1].Name)
}

func TestSelectExplicitTestsUniqueFiles(t *testing.T) {
	root := makeSuitesDir(t)

	first, err := Select("", []string{"TestA"}, root)
	require.NoError(t, err)
	second, err := Select("", []string{"TestA"}, root)
	require.NoError(t, err)

	assert.NotEqual(t, first.Name, second.Name)
	assert.NotEqual(t, first.Transient.Path, second.Transient.Path)
}

func TestSelectMissingSuitesDir(t *testing.T) {
	_, err := Select("", []string{"TestA"}, filepath.Join(t.TempDir(), "no-such-checkout"))
	assert.Error(t, err)
}

func TestTransientRemove(t *testing.T) {
	root := makeSuitesDir(t)

	selection, err := Select("", []string{"TestA"}, root)
	require.NoError(t, err)

	require.NoError(t, selection.Transient.Remove())

	_, err = os.Stat(selection.Transient.Path)
	assert.True(t, os.IsNotExist(err))

	// A second removal reports the failure rather than hiding it.
	assert.Error(t, selection.Transient.Remove())
}
