// Package marker implements the @dots directive protocol.
//
// A managed file can carry a directive on its first line, embedded in
// whatever comment syntax its destination uses:
//
//	# @dots --path '{config_dir}/gitui/theme.ron'
//
// Extraction recognizes the directive and strips the line; injection
// produces the line (plus the generated-file banner) for content dots
// writes itself, so a later run round-trips through the same protocol.
package marker

import (
	"io"
	"strings"

	shellwords "github.com/mattn/go-shellwords"
	"github.com/spf13/pflag"

	"github.com/arthur-debert/dots/pkg/logging"
	"github.com/arthur-debert/dots/pkg/paths"
)

// Token introduces a directive. The trailing space is part of the
// token: "@dotsfoo" is not a marker.
const Token = "@dots "

// Directive is a parsed marker line.
type Directive struct {
	// Path overrides the file's computed destination
	Path paths.OutputPath
}

// Extract looks for a directive on the first line of contents.
//
// When the line carries the token and its arguments parse to a --path
// override, Extract returns the directive and the contents with the
// marker line removed. In every other case, including malformed
// arguments, it returns (nil, contents) unchanged: a broken marker is
// treated as no marker at all.
func Extract(contents string) (*Directive, string) {
	firstLine, remainder, hasMore := strings.Cut(contents, "\n")

	pos := strings.Index(firstLine, Token)
	if pos < 0 {
		return nil, contents
	}

	directive := parseArgs(firstLine[pos+len(Token):])
	if directive == nil {
		return nil, contents
	}
	if !hasMore {
		return directive, ""
	}
	return directive, remainder
}

// parseArgs parses the text after the token. Returns nil on any
// failure, or when no path override is present.
func parseArgs(args string) *Directive {
	logger := logging.GetLogger("marker")

	words, err := shellwords.Parse(args)
	if err != nil {
		logger.Debug().Err(err).Str("args", args).Msg("unparseable marker arguments, ignoring marker")
		return nil
	}

	flags := pflag.NewFlagSet("marker", pflag.ContinueOnError)
	flags.SetOutput(io.Discard)
	pathTemplate := flags.String("path", "", "write the file to this path")
	if err := flags.Parse(words); err != nil {
		logger.Debug().Err(err).Str("args", args).Msg("unknown marker arguments, ignoring marker")
		return nil
	}
	if *pathTemplate == "" {
		return nil
	}

	output, err := paths.Interpolate(*pathTemplate)
	if err != nil {
		logger.Debug().Err(err).Str("path", *pathTemplate).Msg("marker path does not interpolate, ignoring marker")
		return nil
	}
	return &Directive{Path: output}
}

// Line renders a marker line carrying the literal args, commented for
// the given destination path.
func Line(args, path string) string {
	return Comment(Token+args, path)
}

// Banner returns the generated-file banner for a fetched link, each
// line commented for the destination path.
func Banner(url, path string) string {
	lines := []string{
		"@generated by dots",
		"Do not edit by hand.",
		"",
		"downloaded from: " + url,
	}
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(Comment(line, path))
		b.WriteByte('\n')
	}
	return b.String()
}

// InjectHeader builds the full prefix for fetched content: the marker
// line when args is non-empty, then the banner.
func InjectHeader(args, url, path string) string {
	var b strings.Builder
	if args != "" {
		b.WriteString(Line(args, path))
		b.WriteByte('\n')
	}
	b.WriteString(Banner(url, path))
	return b.String()
}
