// Package flags turns raw descriptor settings into a compile_flags.txt flag list.
package flags

import (
	"path"
	"sort"

	"uvflags/pkg/config"
	"uvflags/pkg/keil"
)

// Synthesize builds the ordered flag list: baseline flags, sorted unique
// defines, system includes, then sorted unique project includes.
// descriptorPath may be relative to workDir; workDir must be absolute.
// The result is never empty as long as cfg carries baseline flags or system includes.
func Synthesize(settings keil.Settings, descriptorPath, workDir string, cfg *config.Config) []string {
	defines := uniqueSorted(settings.Defines)
	includes := uniqueSorted(settings.IncludePaths)

	flags := make([]string, 0, len(cfg.BaseFlags)+len(cfg.ExtraFlags)+len(defines)+len(cfg.SystemIncludes)+len(includes))
	flags = append(flags, cfg.Baseline()...)

	for _, d := range defines {
		flags = append(flags, "-D"+d)
	}

	for _, inc := range cfg.SystemIncludes {
		flags = append(flags, "-I"+toSlash(inc))
	}

	descriptorDir := path.Dir(toSlash(descriptorPath))
	if !isAbs(descriptorDir) {
		descriptorDir = join(toSlash(workDir), descriptorDir)
	}
	// Differently spelled entries ("./Inc", "Inc") can resolve to the same directory.
	resolved := make(map[string]struct{}, len(includes))
	for _, inc := range includes {
		p := ResolveInclude(inc, descriptorDir, workDir)
		if _, ok := resolved[p]; ok {
			continue
		}
		resolved[p] = struct{}{}
		flags = append(flags, "-I"+p)
	}
	return flags
}

func uniqueSorted(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	unique := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		unique = append(unique, v)
	}
	sort.Strings(unique)
	return unique
}
