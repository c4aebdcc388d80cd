package commands

import (
	"strings"

	"github.com/lballo/Site-laura-4/internal/logging"
	"github.com/lballo/Site-laura-4/pkg/interfaces"
)

// CommandLogger returns the commands logger tagged with the command module
// name, so publish and preview executions can be told apart.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	name := strings.TrimSpace(module)
	if name == "" {
		name = "core"
	}
	return logging.WithFields(logging.CommandsLogger(provider), map[string]any{
		"component":      "command",
		"command_module": name,
	})
}
