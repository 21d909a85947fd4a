// Package cmd implements the pathfinder subcommands.
//
// Every command loads the paths document named by the global --file flag,
// reporting its diagnostics through the default logger, and then queries
// the resolved table:
//
//	pathfinder get config cache
//	pathfinder list --format yaml
//	eval "$(pathfinder env --prefix pf_ --path bin)"
//	pathfinder check ~/.paths.sdoc /etc/paths.sdoc
//	pathfinder init
//	pathfinder browse
package cmd

var (
	// ConfigIdentifier is the kong variable identifier containing the path to
	// the sdoc configuration file.
	ConfigIdentifier = "config"

	// PathsIdentifier is the kong variable identifier containing the path to
	// the default paths document.
	PathsIdentifier = "paths"
)
