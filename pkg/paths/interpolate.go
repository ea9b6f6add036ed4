package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/arthur-debert/dots/pkg/errors"
	"github.com/arthur-debert/dots/pkg/logging"
)

// OutputPath is a fully interpolated destination path. Once constructed
// it contains no unresolved {name} tokens.
type OutputPath struct {
	path string
}

// New wraps an already-resolved path as an OutputPath.
func New(path string) OutputPath {
	return OutputPath{path: path}
}

// String returns the resolved path.
func (p OutputPath) String() string {
	return p.path
}

// Join returns a new OutputPath with rel joined onto this one.
func (p OutputPath) Join(rel string) OutputPath {
	return OutputPath{path: filepath.Join(p.path, rel)}
}

// IsZero reports whether the path is empty.
func (p OutputPath) IsZero() bool {
	return p.path == ""
}

// UnmarshalText interpolates a template coming out of the manifest, so
// decoded manifests only ever hold resolved paths.
func (p *OutputPath) UnmarshalText(text []byte) error {
	out, err := Interpolate(string(text))
	if err != nil {
		return err
	}
	*p = out
	return nil
}

// baseDirs is the fixed table of named system directories available to
// {name} tokens. Short forms match the original manifest syntax, the
// *_dir forms are the documented spelling.
func baseDirs() map[string]string {
	return map[string]string{
		"config":     xdg.ConfigHome,
		"config_dir": xdg.ConfigHome,
		"data":       xdg.DataHome,
		"data_dir":   xdg.DataHome,
		"cache":      xdg.CacheHome,
		"cache_dir":  xdg.CacheHome,
		"state":      xdg.StateHome,
		"state_dir":  xdg.StateHome,
		"home":       xdg.Home,
	}
}

// Interpolate expands template into an OutputPath.
//
// A leading "~/" becomes the home directory. {name} tokens resolve
// against baseDirs, {$NAME} tokens against the environment. Unknown
// names and unset variables are dropped with a warning; an unterminated
// "{" consumes the rest of the string as the name. The only failure
// mode is the home directory being unresolvable for "~/".
func Interpolate(template string) (OutputPath, error) {
	logger := logging.GetLogger("paths")

	rest := template
	var out strings.Builder

	if strings.HasPrefix(rest, "~/") || rest == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return OutputPath{}, errors.Wrapf(err, errors.ErrPathInterpolate,
				"failed to resolve home directory for %q", template)
		}
		out.WriteString(home)
		rest = strings.TrimPrefix(strings.TrimPrefix(rest, "~"), "/")
		if rest != "" {
			out.WriteString(string(os.PathSeparator))
		}
	}

	dirs := baseDirs()
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			out.WriteString(rest)
			break
		}
		out.WriteString(rest[:open])
		rest = rest[open+1:]

		var name string
		if close := strings.IndexByte(rest, '}'); close >= 0 {
			name = rest[:close]
			rest = rest[close+1:]
		} else {
			// Unterminated brace: the rest of the string is the name.
			name = rest
			rest = ""
		}

		if envName, ok := strings.CutPrefix(name, "$"); ok {
			value, ok := os.LookupEnv(envName)
			if !ok {
				logger.Warn().
					Str("template", template).
					Str("variable", envName).
					Msg("environment variable not set, dropping token")
				continue
			}
			out.WriteString(value)
			continue
		}

		dir, ok := dirs[name]
		if !ok {
			logger.Warn().
				Str("template", template).
				Str("name", name).
				Msg("unknown path token, dropping it")
			continue
		}
		out.WriteString(dir)
	}

	return OutputPath{path: out.String()}, nil
}
