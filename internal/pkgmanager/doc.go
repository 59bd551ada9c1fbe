// Package pkgmanager chooses between yarn and npm and drives the
// dependency install for a new project.
//
// Both managers are reached through runtime.Runner with the project root as
// the child's working directory. yarn additionally receives --cwd so it
// never walks up into an enclosing workspace.
package pkgmanager
