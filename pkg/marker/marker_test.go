package marker

import (
	"strings"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name         string
		contents     string
		wantPath     string
		wantContents string
	}{
		{
			name:         "no marker passes through",
			contents:     "set -x PATH $PATH\nalias ll='ls -l'\n",
			wantContents: "set -x PATH $PATH\nalias ll='ls -l'\n",
		},
		{
			name:         "marker with path override",
			contents:     "# @dots --path '/tmp/routed.conf'\nkey = value\n",
			wantPath:     "/tmp/routed.conf",
			wantContents: "key = value\n",
		},
		{
			name:         "marker in a slash comment",
			contents:     "// @dots --path '/tmp/theme.ron'\n(\n)\n",
			wantPath:     "/tmp/theme.ron",
			wantContents: "(\n)\n",
		},
		{
			name:         "interpolated marker path",
			contents:     "# @dots --path '{config_dir}/gitui/theme.ron'\ntheme\n",
			wantPath:     xdg.ConfigHome + "/gitui/theme.ron",
			wantContents: "theme\n",
		},
		{
			name:         "marker on the only line",
			contents:     "# @dots --path '/tmp/x'",
			wantPath:     "/tmp/x",
			wantContents: "",
		},
		{
			name:         "marker without a path is ignored",
			contents:     "# @dots \nbody\n",
			wantContents: "# @dots \nbody\n",
		},
		{
			name:         "unbalanced quote is ignored",
			contents:     "# @dots --path '/tmp/x\nbody\n",
			wantContents: "# @dots --path '/tmp/x\nbody\n",
		},
		{
			name:         "unknown flag is ignored",
			contents:     "# @dots --frobnicate yes\nbody\n",
			wantContents: "# @dots --frobnicate yes\nbody\n",
		},
		{
			name:         "marker on the second line does not count",
			contents:     "body\n# @dots --path '/tmp/x'\n",
			wantContents: "body\n# @dots --path '/tmp/x'\n",
		},
		{
			name:         "token requires its trailing space",
			contents:     "# @dotsish\nbody\n",
			wantContents: "# @dotsish\nbody\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			directive, contents := Extract(tt.contents)

			assert.Equal(t, tt.wantContents, contents)
			if tt.wantPath == "" {
				assert.Nil(t, directive)
			} else {
				require.NotNil(t, directive)
				assert.Equal(t, tt.wantPath, directive.Path.String())
			}
		})
	}
}

func TestComment(t *testing.T) {
	tests := []struct {
		name string
		line string
		path string
		want string
	}{
		{name: "hash for shell", line: "hello", path: "x/profile.sh", want: "# hello"},
		{name: "hash fallback for unknown extension", line: "hello", path: "x/whatever.xyz", want: "# hello"},
		{name: "hash fallback for no extension", line: "hello", path: "x/Brewfile", want: "# hello"},
		{name: "slashes for ron", line: "hello", path: "theme.ron", want: "// hello"},
		{name: "dashes for lua", line: "hello", path: "init.lua", want: "-- hello"},
		{name: "quote for vim", line: "hello", path: "init.vim", want: "\" hello"},
		{name: "wrapped for html", line: "hello", path: "index.html", want: "<!-- hello -->"},
		{name: "empty line keeps only the delimiter", line: "", path: "a.toml", want: "#"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Comment(tt.line, tt.path))
		})
	}
}

func TestBanner(t *testing.T) {
	banner := Banner("https://example.com/theme.nu", "nushell/theme.nu")

	lines := strings.Split(strings.TrimSuffix(banner, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "# @generated by dots", lines[0])
	assert.Equal(t, "# Do not edit by hand.", lines[1])
	assert.Equal(t, "#", lines[2])
	assert.Equal(t, "# downloaded from: https://example.com/theme.nu", lines[3])
}

func TestInjectHeaderWithoutArgs(t *testing.T) {
	header := InjectHeader("", "https://example.com/x.toml", "x.toml")

	assert.NotContains(t, header, Token)
	assert.Contains(t, header, "# downloaded from: https://example.com/x.toml")
}

func TestInjectHeaderRoundTrip(t *testing.T) {
	// A file dots writes for a link with marker args must be recognized
	// by extraction in a later run.
	header := InjectHeader("--path '/tmp/routed.toml'", "https://example.com/x.toml", "x.toml")
	contents := header + "key = value\n"

	directive, stripped := Extract(contents)

	require.NotNil(t, directive)
	assert.Equal(t, "/tmp/routed.toml", directive.Path.String())
	// Only the marker line is stripped; the banner stays.
	assert.Contains(t, stripped, "# @generated by dots")
	assert.Contains(t, stripped, "key = value\n")
	assert.NotContains(t, strings.Split(stripped, "\n")[0], Token)
}
