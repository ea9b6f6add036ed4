// Package manifest loads and validates the dots.toml manifest.
package manifest

import (
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/dots/pkg/errors"
	"github.com/arthur-debert/dots/pkg/logging"
	"github.com/arthur-debert/dots/pkg/paths"
	"github.com/arthur-debert/dots/pkg/types"
)

// FileName is the manifest file dots searches for.
const FileName = "dots.toml"

// Link declares one remote resource to fetch into the managed tree.
type Link struct {
	// URL of the resource
	URL string `toml:"url"`

	// Path is the destination, relative to the manifest root
	Path string `toml:"path"`

	// SHA256 is the expected digest of the fetched content, lowercase
	// hex. Empty means unverified.
	SHA256 string `toml:"sha256,omitempty"`

	// Marker holds literal marker arguments to embed in the written
	// file, like `--path '{config_dir}/gitui/theme.ron'`. They are not
	// interpreted on the way in; a later run picks them up through
	// marker extraction.
	Marker string `toml:"marker,omitempty"`
}

// Dir declares one local directory to mirror into a destination tree.
type Dir struct {
	// Input is the source directory, relative to the manifest root
	Input string `toml:"input"`

	// Output is the destination tree, interpolated at decode time
	Output paths.OutputPath `toml:"output"`
}

// Manifest is the typed form of dots.toml plus the resolved root.
type Manifest struct {
	// Root is the directory containing the manifest file
	Root string `toml:"-"`

	Links []Link `toml:"link"`
	Dirs  []Dir  `toml:"dir"`
}

// FindRoot walks startDir and its ancestors, closest first, looking
// for the directory that contains the manifest file.
func FindRoot(fs types.FS, startDir string) (string, error) {
	logger := logging.GetLogger("manifest")

	dir := filepath.Clean(startDir)
	for {
		candidate := filepath.Join(dir, FileName)
		if info, err := fs.Stat(candidate); err == nil && !info.IsDir() {
			logger.Debug().Str("root", dir).Msg("found manifest root")
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.Newf(errors.ErrManifestNotFound,
				"no %s found in %s or any parent directory", FileName, startDir).
				WithDetail("startDir", startDir)
		}
		dir = parent
	}
}

// Load reads and parses the manifest at root, returning the validated
// Manifest with root injected.
func Load(fs types.FS, root string) (*Manifest, error) {
	path := filepath.Join(root, FileName)

	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestParse, "failed to read manifest").
			WithDetail("path", path)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestParse, "failed to parse manifest").
			WithDetail("path", path)
	}

	if err := m.validate(); err != nil {
		return nil, err
	}

	m.Root = root
	return &m, nil
}

func (m *Manifest) validate() error {
	for i, link := range m.Links {
		if link.URL == "" {
			return errors.Newf(errors.ErrManifestParse, "link %d has no url", i)
		}
		if link.Path == "" {
			return errors.Newf(errors.ErrManifestParse, "link %q has no path", link.URL)
		}
		if filepath.IsAbs(link.Path) {
			return errors.Newf(errors.ErrManifestParse,
				"link %q path must be relative, got %q", link.URL, link.Path)
		}
		if link.SHA256 != "" && !validDigest(link.SHA256) {
			return errors.Newf(errors.ErrManifestParse,
				"link %q sha256 must be 64 lowercase hex digits, got %q", link.URL, link.SHA256)
		}
	}

	for i, dir := range m.Dirs {
		if dir.Input == "" {
			return errors.Newf(errors.ErrManifestParse, "dir %d has no input", i)
		}
		if filepath.IsAbs(dir.Input) {
			return errors.Newf(errors.ErrManifestParse,
				"dir %q input must be relative", dir.Input)
		}
		if dir.Output.IsZero() {
			return errors.Newf(errors.ErrManifestParse, "dir %q has no output", dir.Input)
		}
	}

	return nil
}

func validDigest(s string) bool {
	if len(s) != 64 {
		return false
	}
	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
