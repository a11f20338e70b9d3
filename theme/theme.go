// Package theme resolves symbolic icon names to icon files.
//
// A Lookup is the collaborator consulted by the icon buffer whenever an icon
// is requested by name instead of by path. Dir implements the freedesktop
// directory layout used by the Sugar artwork, Material materializes a small
// built-in set of IconVG icons, and Chain combines several lookups.
package theme

import (
	"image"
	"os"
	"path/filepath"
	"strings"
)

// Info describes an icon found in a theme.
type Info struct {
	// Path is the concrete icon file.
	Path string
	// AttachPoints holds the badge attach points reported by the theme,
	// expressed in pixels of the size the icon was looked up at.
	AttachPoints []image.Point
}

// Lookup finds the file of a named icon at the requested pixel size.
type Lookup interface {
	LookupIcon(name string, size int) (Info, bool)
}

// Chain consults its lookups in order and returns the first hit.
type Chain []Lookup

// LookupIcon implements Lookup.
func (c Chain) LookupIcon(name string, size int) (Info, bool) {
	for _, l := range c {
		if l == nil {
			continue
		}
		if info, ok := l.LookupIcon(name, size); ok {
			return info, true
		}
	}
	return Info{}, false
}

// Names of the theme directories searched under every data directory.
var themeNames = []string{"sugar", "hicolor"}

// SearchPath returns the icon theme roots derived from the XDG base
// directory variables, most specific first.
func SearchPath() []string {
	var roots []string

	home, _ := os.UserHomeDir()
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" && home != "" {
		dataHome = filepath.Join(home, ".local", "share")
	}
	dataDirs := os.Getenv("XDG_DATA_DIRS")
	if dataDirs == "" {
		dataDirs = "/usr/local/share:/usr/share"
	}

	bases := []string{}
	if dataHome != "" {
		bases = append(bases, dataHome)
	}
	bases = append(bases, filepath.SplitList(dataDirs)...)

	for _, name := range themeNames {
		if home != "" {
			roots = append(roots, filepath.Join(home, ".icons", name))
		}
		for _, base := range bases {
			if strings.TrimSpace(base) == "" {
				continue
			}
			roots = append(roots, filepath.Join(base, "icons", name))
		}
	}
	return roots
}

// Default returns a chain over every existing root of the search path.
func Default() Chain {
	return Open(SearchPath()...)
}

// Open returns a chain of directory themes for the roots that exist.
// Roots which are missing or cannot be read are skipped.
func Open(roots ...string) Chain {
	var chain Chain
	for _, root := range roots {
		fi, err := os.Stat(root)
		if err != nil || !fi.IsDir() {
			continue
		}
		d, err := NewDir(root)
		if err != nil {
			continue
		}
		chain = append(chain, d)
	}
	return chain
}
