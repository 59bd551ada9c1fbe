// Package resolve turns the version and template strings a user passes on
// the command line into references a package manager can install.
//
// Both resolvers are ordered rule tables: the first rule whose predicate
// matches produces the result. Relative file: paths resolve against the
// directory the user invoked the tool from, never the process working
// directory.
package resolve
