// Package assets resolves the interactive page's compiled bundle from a
// directory of candidate files and copies static asset trees verbatim.
//
// Bundle file names carry content hashes and a modules directory can hold
// artifacts left over from prior builds. File names alone therefore do not
// identify the current artifact: the script entry is selected by reading
// each candidate and requiring a marker export in its content.
package assets

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	sgerrors "github.com/marcinsydor/sitegen/internal/errors"
)

const (
	scriptExt   = ".js"
	binaryExt   = ".wasm"
	binaryInfix = "_bg"
)

// Sentinel causes for resolution failures, wrapped in a BuildError with
// StageResolve.
var (
	ErrNoConformingScript = errors.New("no script candidate contains the required export marker")
	ErrNoBinaryModule     = errors.New("no binary module candidate found")
)

// Contract is the naming contract of the upstream module compiler. The
// generator depends on it but does not control it.
type Contract struct {
	ScriptPrefix string // File name prefix of compiled bundles
	Marker       string // Export name the current script entry must contain
}

// Bundle is the resolved pair of file names for the interactive page.
type Bundle struct {
	Script string // Script entry file name
	Binary string // Companion binary module file name
}

type candidate struct {
	name    string
	modTime time.Time
}

// Resolve scans dir for the current bundle. Among files matching the script
// prefix and extension, only those whose content contains the marker are
// considered; the binary module is matched independently by the
// prefix+"_bg"+extension pattern. Selection is deterministic regardless of
// enumeration order: newest modification time wins, ties broken by the
// lexicographically greatest name.
func Resolve(dir string, c Contract) (Bundle, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Bundle{}, sgerrors.Wrap(err, sgerrors.StageResolve, "cannot enumerate modules directory").
			WithContext("dir", dir)
	}

	var scripts, binaries []candidate
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, c.ScriptPrefix) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			return Bundle{}, sgerrors.Wrap(err, sgerrors.StageResolve, "cannot stat module candidate").
				WithContext("file", name)
		}

		switch {
		case strings.HasSuffix(name, scriptExt):
			ok, err := containsMarker(filepath.Join(dir, name), c.Marker)
			if err != nil {
				return Bundle{}, sgerrors.Wrap(err, sgerrors.StageResolve, "cannot inspect script candidate").
					WithContext("file", name)
			}
			if ok {
				scripts = append(scripts, candidate{name: name, modTime: info.ModTime()})
			}
		case strings.Contains(name, binaryInfix) && strings.HasSuffix(name, binaryExt):
			binaries = append(binaries, candidate{name: name, modTime: info.ModTime()})
		}
	}

	if len(scripts) == 0 {
		return Bundle{}, sgerrors.Wrap(ErrNoConformingScript, sgerrors.StageResolve, "script entry not resolved").
			WithContext("dir", dir).
			WithContext("marker", c.Marker)
	}
	if len(binaries) == 0 {
		return Bundle{}, sgerrors.Wrap(ErrNoBinaryModule, sgerrors.StageResolve, "binary module not resolved").
			WithContext("dir", dir).
			WithContext("pattern", c.ScriptPrefix+"*"+binaryInfix+"*"+binaryExt)
	}

	return Bundle{
		Script: pick(scripts),
		Binary: pick(binaries),
	}, nil
}

// pick orders candidates newest-first with a lexicographic tie-break and
// returns the winner.
func pick(cands []candidate) string {
	sort.Slice(cands, func(i, j int) bool {
		if !cands[i].modTime.Equal(cands[j].modTime) {
			return cands[i].modTime.After(cands[j].modTime)
		}
		return cands[i].name > cands[j].name
	})
	return cands[0].name
}

func containsMarker(path, marker string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	return strings.Contains(string(data), marker), nil
}
