// Package runtime runs the external programs the bootstrapper depends on:
// package managers for version and config queries, and Node.js for the
// installed scripts package's init entry point. Everything goes through the
// Runner interface so callers can be tested with runtimetest.Runner.
package runtime
