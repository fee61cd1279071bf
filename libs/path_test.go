package libs

import (
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
)

func TestRootDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.Equal(t, filepath.Join(home, ".rigo-dao"), RootDir(".rigo-dao"))
}

func TestScenarioPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	wd, err := os.Getwd()
	require.NoError(t, err)

	cases := []struct {
		file     string
		expected string
	}{
		{filepath.Join(home, "a.yaml"), filepath.Join(home, "a.yaml")},
		{"scenario.yaml", filepath.Join(wd, "scenario.yaml")},
		{"~/scenarios/b.yaml", filepath.Join(home, "scenarios", "b.yaml")},
	}
	for i, c := range cases {
		path, err := ScenarioPath(c.file)
		require.NoError(t, err, "index", i)
		require.Equal(t, c.expected, path, "index", i)
	}
}
