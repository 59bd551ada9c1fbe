// Package bootstrap creates a new project: it validates the name, resolves
// what to install, runs the preflight checks, installs through the chosen
// package manager and hands over to the scripts package's init script.
//
// Everything after the root manifest is written is transactional. If any
// later step fails, the files the install generated are removed again and,
// when nothing else was in it, the project directory too.
//
// The process working directory is never changed. Paths are resolved
// through a WorkingContext captured once at the start of a run.
package bootstrap
