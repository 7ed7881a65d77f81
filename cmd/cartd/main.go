package main

import (
	"flag"
	"os"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/pendulum.go/pkg/cart"
	fx "github.com/robotalks/pendulum.go/pkg/framework"
	"github.com/robotalks/pendulum.go/pkg/l0/encoder"
	"github.com/robotalks/pendulum.go/pkg/l0/motor"
	"github.com/robotalks/pendulum.go/pkg/l1"
	env "github.com/robotalks/pendulum.go/pkg/l1/env/controller"
)

var shutdownTimeout = 2 * time.Second

func init() {
	env.SetControllerType(cart.ControllerType, l1.ControllerMeta{Description: "Cart motor controller"})
	env.SetupFlags()
	motor.SetupFlags()
	encoder.SetupFlags()
	flag.DurationVar(&shutdownTimeout, "shutdown-timeout", shutdownTimeout, "Stop the motor and exit if shutdown takes longer.")
}

// daemon opens the hardware and runs the cart controller.
// The motor is stopped and released whenever run returns.
type daemon struct {
	openMotor   func() (*motor.Driver, *motor.Config, error)
	openEncoder func() (*encoder.Reader, error)
	newEnv      func() (*env.Env, error)
	// runLoop runs the loop until shutdown.
	runLoop func(*fx.Loop) error
}

func newDaemon() *daemon {
	return &daemon{
		openMotor: func() (*motor.Driver, *motor.Config, error) {
			conf, err := motor.LoadConfig()
			if err != nil {
				return nil, nil, err
			}
			drv, err := conf.Open()
			return drv, conf, err
		},
		openEncoder: func() (*encoder.Reader, error) {
			conf := encoder.NewConfig()
			if !conf.Enabled() {
				return nil, nil
			}
			return conf.Open()
		},
		newEnv: func() (*env.Env, error) {
			return env.NewConfig().NewEnv()
		},
		runLoop: func(loop *fx.Loop) error {
			runner := fx.NewRunner().HandleSignals()
			runner.ShutdownTimeout = shutdownTimeout
			return runner.Go(fx.NamedRun("loop", loop)).Wait()
		},
	}
}

func (d *daemon) run() error {
	drv, conf, err := d.openMotor()
	if err != nil {
		return err
	}
	defer func() {
		if err := drv.Close(); err != nil {
			glog.Errorf("close motor: %v", err)
		}
	}()

	enc, err := d.openEncoder()
	if err != nil {
		return err
	}
	if enc != nil {
		defer enc.Close()
	}

	e, err := d.newEnv()
	if err != nil {
		return err
	}
	ctl := cart.NewController(drv, e.Registrar)
	ctl.TelemetryInterval = conf.TelemetryInterval
	ctl.Encoder = enc
	return d.runLoop(fx.NewLoop().Add(e, ctl))
}

func main() {
	flag.Parse()
	err := newDaemon().run()
	if err != nil {
		glog.Errorf("exit: %v", err)
	}
	glog.Flush()
	if err != nil {
		os.Exit(1)
	}
}
