// Package paths implements destination-path interpolation for dots.
//
// Manifest output fields and marker --path arguments are templates like
// "{config_dir}/helix" or "~/bin". Interpolation expands a leading "~/"
// to the home directory and resolves {name} tokens against the XDG base
// directories, with {$NAME} falling through to the environment. The
// policy is deliberately lenient: an unknown token logs a warning and
// drops out of the path instead of failing the run.
package paths
