// Package updater checks that the running binary is the latest published
// release. Outdated global installs are refused, since they would bootstrap
// projects with stale defaults. The latest version is looked up through the
// npm registry's dist-tags and cached in the config directory.
package updater
