package runtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// initScript loads the scripts package's init entry point and applies the
// JSON argument array passed after "--".
const initScript = `var init = require('%s/scripts/init.js');
init.apply(null, JSON.parse(process.argv[1]));`

// maxShownPayload bounds the init payload quoted in failure messages.
const maxShownPayload = 200

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// InitArgs are handed to the scripts package's init function, in order.
type InitArgs struct {
	Root        string
	AppName     string
	Verbose     bool
	OriginalDir string
	// Template is omitted (passed as null) when the installed scripts
	// package does not support templates.
	Template string
}

// MarshalJSON encodes the arguments as the positional array init expects.
func (a InitArgs) MarshalJSON() ([]byte, error) {
	var template any
	if a.Template != "" {
		template = a.Template
	}
	return json.Marshal([]any{a.Root, a.AppName, a.Verbose, a.OriginalDir, template})
}

// Node wraps the node binary.
type Node struct {
	Runner Runner
}

// Version returns the host Node.js version without the leading "v".
func (n *Node) Version(ctx context.Context) (string, error) {
	out, err := n.Runner.Output(ctx, "", "node", "--version")
	if err != nil {
		return "", fmt.Errorf("querying node version: %w", err)
	}
	return strings.TrimPrefix(out, "v"), nil
}

// RunInit invokes <packageName>/scripts/init.js inside root. When yarn
// Plug'n'Play produced a .pnp.js file it is preloaded so require can
// resolve the package.
func (n *Node) RunInit(ctx context.Context, packageName string, args InitArgs) error {
	payload, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("serializing init arguments: %w", err)
	}

	var preload []string
	pnpPath := filepath.Join(args.Root, ".pnp.js")
	if _, err := os.Stat(pnpPath); err == nil {
		preload = []string{"--require", pnpPath}
	}
	script := fmt.Sprintf(initScript, packageName)
	nodeArgs := append(append([]string(nil), preload...), "-e", script, "--", string(payload))

	err = n.Runner.Run(ctx, args.Root, "node", nodeArgs...)
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		shown := append(append([]string(nil), preload...),
			"-e", strings.Join(strings.Fields(script), " "), "--", truncate(string(payload), maxShownPayload))
		return &ExitError{Command: CommandLine("node", shown...), ExitCode: exitErr.ExitCode}
	}
	if err != nil {
		return fmt.Errorf("running %s init script: %w", packageName, err)
	}
	return nil
}
