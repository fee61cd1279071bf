package version

import (
	"fmt"
	"github.com/tendermint/tendermint/version"
)

const (
	MAJOR = 0
	MINOR = 2
	PATCH = 0

	// STATE_FORMAT is raised whenever the encoding of the committed ledgers changes.
	// A db written in another format is not opened.
	//  1: initial
	//  2: proposals carry their creation and freezing sequences
	STATE_FORMAT uint64 = 2
)

// GitCommit is set using ldflags.
//
//	ex) -ldflags "-X 'github.com/rigochain/rigo-dao/cmd/version.GitCommit=$(git rev-parse --short HEAD)'"
var GitCommit string

type Info struct {
	Version     string `json:"version"`
	GitCommit   string `json:"gitCommit,omitempty"`
	TMCore      string `json:"tmCore"`
	StateFormat uint64 `json:"stateFormat"`
}

func NewInfo() *Info {
	return &Info{
		Version:     Semver(),
		GitCommit:   GitCommit,
		TMCore:      version.TMCoreSemVer,
		StateFormat: STATE_FORMAT,
	}
}

func Semver() string {
	return fmt.Sprintf("%d.%d.%d", MAJOR, MINOR, PATCH)
}

// String returns `major.minor.patch[-commit]@tmcore`.
func String() string {
	ver := Semver()
	if GitCommit != "" {
		ver += "-" + GitCommit
	}
	return ver + "@" + version.TMCoreSemVer
}
