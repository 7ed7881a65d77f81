package joystick

import (
	"fmt"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/pendulum.go/pkg/cli/sh"
	"github.com/robotalks/pendulum.go/pkg/cart"
	"github.com/robotalks/pendulum.go/pkg/joystick/msgs"
)

var (
	// JoystickStatusCmd exposes JoystickStatusQuery command.
	JoystickStatusCmd = ishell.Cmd{
		Name:    "js.status",
		Aliases: []string{"jss"},
		Help:    "",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			sh.DoCommand(c, &msgs.JoystickStatusQuery{})
		}),
	}

	// JoystickDisconnectCmd releases the connected cart.
	JoystickDisconnectCmd = ishell.Cmd{
		Name:    "js.disconnect",
		Aliases: []string{"jsd"},
		Help:    "",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			sh.DoCommand(c, &msgs.JoystickConnect{})
		}),
	}

	// JoystickConnectCmd exposes JoystickConnect command.
	JoystickConnectCmd = ishell.Cmd{
		Name:    "js.connect",
		Aliases: []string{"jsc"},
		Help:    "[TYPE [ID [REGISTRY_URL]]], TYPE defaults to cart",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			var msg msgs.JoystickConnect
			if len(c.Args) >= 2 {
				msg.Type, msg.ID = c.Args[0], c.Args[1]
				if len(c.Args) > 2 {
					msg.RegistryURL = c.Args[2]
				}
			} else {
				s := sh.ShellFrom(c)
				typ := cart.ControllerType
				if len(c.Args) == 1 {
					typ = c.Args[0]
				}
				_, info, err := s.SelectController(sh.TypeFilter(typ))
				if err != nil {
					c.Err(err)
					return
				}
				if info == nil {
					c.Err(fmt.Errorf("no controller discovered"))
					return
				}
				msg.Type, msg.ID = info.Ref.Type, info.Ref.ID
			}
			sh.DoCommand(c, &msg)
		}),
	}
)

func init() {
	sh.AddCmds(
		&JoystickStatusCmd,
		&JoystickConnectCmd,
		&JoystickDisconnectCmd,
	)
}
