package libs

import (
	"os"
	"path/filepath"
	"strings"
)

// RootDir returns `dirName` under the user's home directory.
// The working directory is used when there is no home.
func RootDir(dirName string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, dirName)
}

// ScenarioPath resolves the scenario file given on the command line.
// A leading `~/` stands for the home directory.
func ScenarioPath(file string) (string, error) {
	if rest, ok := strings.CutPrefix(file, "~/"); ok {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		file = filepath.Join(home, rest)
	}
	return filepath.Abs(file)
}
