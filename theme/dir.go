package theme

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/sugarlabs/icon/utils"
	"gopkg.in/ini.v1"
)

// Extensions are tried in this order for every candidate directory.
var Extensions = []string{".svg", ".png", ".bmp"}

const (
	dirFixed     = "Fixed"
	dirScalable  = "Scalable"
	dirThreshold = "Threshold"

	defaultThreshold = 2
)

type subdir struct {
	path      string
	kind      string
	size      int
	minSize   int
	maxSize   int
	threshold int
}

// matches reports whether the directory holds icons usable at size
// without rescaling.
func (s subdir) matches(size int) bool {
	switch s.kind {
	case dirFixed:
		return s.size == size
	case dirScalable:
		return s.minSize <= size && size <= s.maxSize
	default:
		return s.size-s.threshold <= size && size <= s.size+s.threshold
	}
}

// distance is zero for a matching directory and grows with the size gap.
func (s subdir) distance(size int) int {
	if s.matches(size) {
		return 0
	}
	switch s.kind {
	case dirScalable:
		if size < s.minSize {
			return s.minSize - size
		}
		return size - s.maxSize
	default:
		return utils.Abs(s.size - size)
	}
}

// Dir is an icon theme rooted at a directory.
//
// When the root contains an index.theme file its Directories are searched,
// closest size first. Icons placed directly in the root are found as well.
type Dir struct {
	Root string
	dirs []subdir
}

// NewDir opens the theme rooted at root.
func NewDir(root string) (*Dir, error) {
	d := &Dir{Root: root}

	index := filepath.Join(root, "index.theme")
	if _, err := os.Stat(index); err != nil {
		if os.IsNotExist(err) {
			return d, nil
		}
		return nil, errors.Wrapf(err, "theme %s", root)
	}

	cfg, err := ini.Load(index)
	if err != nil {
		return nil, errors.Wrapf(err, "theme %s: cannot parse index", root)
	}

	names := cfg.Section("Icon Theme").Key("Directories").Strings(",")
	for _, name := range names {
		sec, err := cfg.GetSection(name)
		if err != nil {
			continue
		}
		size := sec.Key("Size").MustInt(0)
		d.dirs = append(d.dirs, subdir{
			path:      filepath.Join(root, filepath.FromSlash(name)),
			kind:      sec.Key("Type").MustString(dirThreshold),
			size:      size,
			minSize:   sec.Key("MinSize").MustInt(size),
			maxSize:   sec.Key("MaxSize").MustInt(size),
			threshold: sec.Key("Threshold").MustInt(defaultThreshold),
		})
	}
	return d, nil
}

// LookupIcon implements Lookup.
func (d *Dir) LookupIcon(name string, size int) (Info, bool) {
	if name == "" || strings.ContainsRune(name, filepath.Separator) {
		return Info{}, false
	}

	dirs := make([]subdir, len(d.dirs))
	copy(dirs, d.dirs)
	sort.SliceStable(dirs, func(i, j int) bool {
		return dirs[i].distance(size) < dirs[j].distance(size)
	})

	candidates := make([]string, 0, len(dirs)+1)
	for _, s := range dirs {
		candidates = append(candidates, s.path)
	}
	candidates = append(candidates, d.Root)

	for _, dir := range candidates {
		for _, ext := range Extensions {
			path := filepath.Join(dir, name+ext)
			if fi, err := os.Stat(path); err == nil && fi.Mode().IsRegular() {
				return Info{Path: path}, true
			}
		}
	}
	return Info{}, false
}
