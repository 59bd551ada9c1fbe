// Package issue defines the error types that travel from the bootstrap
// pipeline up to the single exit handler in main.
//
// Error carries a Kind so callers can tell validation failures from install
// failures without string matching. ActionableError adds remediation hints
// for the user. ExitError tells main which status code to exit with.
package issue
