// Package compileinfo reports the module version and VCS state a binary was
// built from.
package compileinfo

import (
	"fmt"
	"os"
	"runtime/debug"
)

type CompileInfo struct {
	Path       string
	Version    string
	GoVersion  string
	Commit     string
	CommitTime string
	Modified   bool
}

func (c CompileInfo) String() string {
	if c.Path == "" {
		return "degexplore: no build information available"
	}

	if c.Commit == "" {
		return fmt.Sprintf("%s %s built with %s", c.Path, c.Version, c.GoVersion)
	}

	dirty := ""
	if c.Modified {
		dirty = " (modified)"
	}

	return fmt.Sprintf("%s %s built with %s from commit %s%s at %s", c.Path, c.Version, c.GoVersion, c.Commit, dirty, c.CommitTime)
}

// FromBuildInfo extracts the fields of interest from b.
func FromBuildInfo(b *debug.BuildInfo) CompileInfo {
	out := CompileInfo{}
	if b == nil {
		return out
	}

	out.Path = b.Path
	out.Version = b.Main.Version
	out.GoVersion = b.GoVersion
	for _, s := range b.Settings {
		switch s.Key {
		case "vcs.revision":
			out.Commit = s.Value
		case "vcs.time":
			out.CommitTime = s.Value
		case "vcs.modified":
			out.Modified = s.Value == "true"
		}
	}

	return out
}

func Get() CompileInfo {
	b, _ := debug.ReadBuildInfo()
	return FromBuildInfo(b)
}

func PrintToStdErr() {
	fmt.Fprintln(os.Stderr, Get())
}
