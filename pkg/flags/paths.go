// File: pkg/flags/paths.go
package flags

import (
	"errors"
	"path"
	"path/filepath"
	"strings"
)

var errVolumeMismatch = errors.New("paths are on different volumes")

// toSlash converts Windows separators regardless of the host OS, since
// descriptors are usually authored on Windows.
func toSlash(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

// splitVolume splits a slash path into its volume and the remainder.
// The volume is a drive ("C:") or a UNC share ("//server/share"); POSIX paths
// return an empty volume. A bare share has remainder "/".
func splitVolume(p string) (string, string) {
	if len(p) >= 2 && p[1] == ':' && isLetter(p[0]) {
		return strings.ToUpper(p[:2]), p[2:]
	}
	if strings.HasPrefix(p, "//") && !strings.HasPrefix(p, "///") {
		parts := strings.SplitN(p[2:], "/", 3)
		if len(parts) >= 2 && parts[0] != "" && parts[1] != "" {
			vol := "//" + parts[0] + "/" + parts[1]
			rest := p[len(vol):]
			if rest == "" {
				rest = "/"
			}
			return vol, rest
		}
	}
	return "", p
}

func isLetter(b byte) bool {
	return ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

// isAbs recognises POSIX roots, drive roots and UNC shares on any host.
func isAbs(p string) bool {
	_, rest := splitVolume(p)
	return strings.HasPrefix(rest, "/")
}

func clean(p string) string {
	vol, rest := splitVolume(p)
	return vol + path.Clean(rest)
}

func join(dir, elem string) string {
	vol, rest := splitVolume(dir)
	return vol + path.Join(rest, elem)
}

// rel returns target relative to base. Both must be cleaned absolute slash paths.
func rel(base, target string) (string, error) {
	baseVol, baseRest := splitVolume(base)
	targetVol, targetRest := splitVolume(target)
	if !strings.EqualFold(baseVol, targetVol) {
		return "", errVolumeMismatch
	}
	r, err := filepath.Rel(filepath.FromSlash(baseRest), filepath.FromSlash(targetRest))
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(r), nil
}

// escapes reports whether a relative path climbs above its base.
func escapes(r string) bool {
	return r == ".." || strings.HasPrefix(r, "../")
}

// within reports whether p is root or lies below it.
func within(root, p string) bool {
	rootVol, rootRest := splitVolume(root)
	vol, rest := splitVolume(p)
	if !strings.EqualFold(rootVol, vol) {
		return false
	}
	if rest == rootRest {
		return true
	}
	return strings.HasPrefix(rest, strings.TrimSuffix(rootRest, "/")+"/")
}

// ResolveInclude rewrites an include path recorded in the descriptor so it is
// usable from workDir. Relative entries are anchored at descriptorDir. The result
// is relative to workDir unless that would climb out of it, in which case the
// absolute location is kept. Both directories must be absolute.
func ResolveInclude(include, descriptorDir, workDir string) string {
	inc := toSlash(include)
	root := clean(toSlash(workDir))

	abs := inc
	if !isAbs(inc) {
		abs = join(toSlash(descriptorDir), inc)
	}

	final := abs
	if r, err := rel(root, clean(abs)); err == nil {
		if !escapes(r) || within(root, clean(abs)) {
			final = r
		}
	}
	return strings.TrimPrefix(final, "./")
}
