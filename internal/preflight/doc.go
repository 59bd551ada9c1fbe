// Package preflight inspects the host before anything is installed: tool
// versions, the target directory, the npm working directory, and registry
// reachability.
//
// Checks report through Result and never abort on their own. A Result with
// Fallback set asks the caller to install the legacy scripts package; a
// Result with OK false asks the caller to stop.
package preflight
