// Package all registers all shell commands.
package all

import (
	// Register commands.
	_ "github.com/robotalks/pendulum.go/pkg/cli/cmds/cart"
	_ "github.com/robotalks/pendulum.go/pkg/cli/cmds/joystick"
)
