// Package version reports which uvflags build produced a compile_flags.txt.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Set with -ldflags "-X uvflags/pkg/version.Version=1.2.3 -X uvflags/pkg/version.Commit=abcdefg -X uvflags/pkg/version.BuildTime=...".
// When left unset, Get falls back to the VCS stamp recorded by the go command.
var (
	Version   = "dev"
	Commit    = ""
	BuildTime = ""
)

// Info describes a build.
type Info struct {
	Version   string
	Commit    string // Short revision, suffixed with "+dirty" for modified trees.
	BuildTime string
	GoVersion string
	Platform  string
}

// Get returns the running build's information.
func Get() Info {
	bi, _ := debug.ReadBuildInfo()
	return fromBuildInfo(bi)
}

func fromBuildInfo(bi *debug.BuildInfo) Info {
	info := Info{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if bi == nil {
		return info.withDefaults()
	}

	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	var dirty bool
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "" {
				info.Commit = s.Value
				if len(info.Commit) > 12 {
					info.Commit = info.Commit[:12]
				}
			}
		case "vcs.time":
			if info.BuildTime == "" {
				info.BuildTime = s.Value
			}
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if dirty && Commit == "" && info.Commit != "" {
		info.Commit += "+dirty"
	}
	return info.withDefaults()
}

func (i Info) withDefaults() Info {
	if i.Commit == "" {
		i.Commit = "unknown"
	}
	if i.BuildTime == "" {
		i.BuildTime = "unknown"
	}
	return i
}

// String renders the build on one line, e.g.
// uvflags 1.2.3 (abcdefg, 2024-04-27T15:04:05Z) go1.23.1 linux/amd64
func (i Info) String() string {
	return fmt.Sprintf("uvflags %s (%s, %s) %s %s", i.Version, i.Commit, i.BuildTime, i.GoVersion, i.Platform)
}
