// Package cli defines the command line for create-react-app. There is a
// single root command taking the project directory; flag parsing, logging
// setup and error display live here, and the work is delegated to the
// bootstrap package.
//
// # Logging
//
// --verbose switches the logger to debug level and is also forwarded to the
// package manager. The logger travels on the command context.
package cli
