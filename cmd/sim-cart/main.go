package main

//go-build: CGO_ENABLED=0

import (
	"flag"
	"log"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/pendulum.go/pkg/cart"
	fx "github.com/robotalks/pendulum.go/pkg/framework"
	"github.com/robotalks/pendulum.go/pkg/l0/motor"
	"github.com/robotalks/pendulum.go/pkg/l1"
	env "github.com/robotalks/pendulum.go/pkg/l1/env/controller"
	cartbot "github.com/robotalks/pendulum.go/pkg/sim/bots/cart"
	"github.com/robotalks/pendulum.go/pkg/sim/visualization/see"
)

var interval = 20 * time.Millisecond

func init() {
	env.SetControllerType(cart.ControllerType, l1.ControllerMeta{
		Description: "Simulation: cart and pendulum",
		Labels:      map[string]string{"sim": "true"},
	})
	env.SetupFlags()
	motor.SetupFlags()
	see.SetupFlags()
	cartbot.SetupFlags()
	flag.DurationVar(&interval, "interval", interval, "Simulation loop interval.")
}

func main() {
	flag.Parse()
	defer glog.Flush()

	env := env.NewConfig().MustNewEnv()
	conf, err := motor.LoadConfig()
	if err != nil {
		log.Fatalln(err)
	}
	rig := cartbot.NewConfig().NewRig(env.Config.Info.Ref.Name())
	drv := motor.NewDriver(rig.Device, conf, nil)
	defer drv.Close()

	ctl := cart.NewController(drv, env.Registrar)
	ctl.TelemetryInterval = conf.TelemetryInterval

	vis := see.NewConfig().NewAdapter()
	vis.Mapper = rig
	vis.Subscribe(rig)

	loop := fx.NewLoop().Add(env, ctl, rig, vis)
	loop.Interval = interval
	loop.RunOrFail()
}
