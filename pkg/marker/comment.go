package marker

import (
	"path/filepath"
	"strings"
)

// commentStyle is the comment convention for one family of file types.
type commentStyle struct {
	open  string
	close string
}

// stylesByExt maps a destination file's extension to its comment
// syntax. Hash is the fallback for anything unlisted, which covers the
// bulk of config formats.
var stylesByExt = map[string]commentStyle{
	".c":    {open: "//"},
	".cfg":  {open: "#"},
	".clj":  {open: ";"},
	".conf": {open: "#"},
	".cpp":  {open: "//"},
	".css":  {open: "/*", close: "*/"},
	".el":   {open: ";"},
	".fish": {open: "#"},
	".go":   {open: "//"},
	".hs":   {open: "--"},
	".html": {open: "<!--", close: "-->"},
	".ini":  {open: ";"},
	".js":   {open: "//"},
	".json": {open: "//"},
	".kdl":  {open: "//"},
	".lisp": {open: ";"},
	".lua":  {open: "--"},
	".md":   {open: "<!--", close: "-->"},
	".nu":   {open: "#"},
	".py":   {open: "#"},
	".rasi": {open: "//"},
	".ron":  {open: "//"},
	".rs":   {open: "//"},
	".scm":  {open: ";"},
	".sh":   {open: "#"},
	".sql":  {open: "--"},
	".tmux": {open: "#"},
	".toml": {open: "#"},
	".ts":   {open: "//"},
	".vim":  {open: "\""},
	".xml":  {open: "<!--", close: "-->"},
	".yaml": {open: "#"},
	".yml":  {open: "#"},
	".zsh":  {open: "#"},
}

// Comment wraps line in the comment syntax chosen by path's extension.
// An empty line renders as just the comment delimiters.
func Comment(line, path string) string {
	style, ok := stylesByExt[strings.ToLower(filepath.Ext(path))]
	if !ok {
		style = commentStyle{open: "#"}
	}

	var b strings.Builder
	b.WriteString(style.open)
	if line != "" {
		b.WriteByte(' ')
		b.WriteString(line)
	}
	if style.close != "" {
		b.WriteByte(' ')
		b.WriteString(style.close)
	}
	return b.String()
}
