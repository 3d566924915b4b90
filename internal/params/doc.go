// Package params resolves the user config and the catalog into one typed
// record per server name.
//
// An entry that only names a package inherits command, args, env,
// description, tags, repo_url and setup_script from the catalog entry with
// that package name; any field the user entry spells out wins. An entry with
// its own command needs no catalog entry. Entries that can be resolved
// neither way are reported through Errors without affecting the others.
//
// Records are immutable after New except for their working directory, which
// the lifecycle manager sets through UpdateServerPath once a repository has
// been cloned.
package params
