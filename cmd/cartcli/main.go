package main

import (
	"github.com/robotalks/pendulum.go/pkg/cart"
	"github.com/robotalks/pendulum.go/pkg/cli/sh"
	env "github.com/robotalks/pendulum.go/pkg/l1/env/connector"

	_ "github.com/robotalks/pendulum.go/pkg/cli/cmds/all"
)

//go-build: CGO_ENABLED=0

func init() {
	env.SetupFlags()
	sh.DefaultControllerType = cart.ControllerType
}

func main() {
	sh.Main()
}
