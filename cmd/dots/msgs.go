package dots

// User-facing strings for the root command.
const (
	rootShort = "A declarative provisioner for your configuration files"
	rootLong  = `dots provisions your configuration files from a declarative manifest.

A dots.toml at the root of your dotfiles repository declares remote
resources to fetch ([[link]]) and local directories to mirror into
interpolated destinations ([[dir]]). Files may carry a one-line @dots
marker that overrides where they are written.

Running dots gathers every input, computes the full set of writes, and
applies them. Independent failures are collected and reported together
instead of aborting at the first one.`
)
