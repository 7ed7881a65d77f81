package joystick

import (
	"flag"
	"time"

	env "github.com/robotalks/pendulum.go/pkg/l1/env/controller"
)

// Config defines the configurations for the controller.
type Config struct {
	DeviceIndex    int
	Verbose        bool
	MaxPercent     float64
	RepeatInterval time.Duration
}

// DefaultRepeatInterval is half of the default cart watchdog timeout.
const DefaultRepeatInterval = 100 * time.Millisecond

var defaultConfig = Config{
	DeviceIndex:    -1,
	MaxPercent:     50,
	RepeatInterval: DefaultRepeatInterval,
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.IntVar(&defaultConfig.DeviceIndex, "device", defaultConfig.DeviceIndex, "Device index, -1 for auto detection.")
	flag.BoolVar(&defaultConfig.Verbose, "verbose", defaultConfig.Verbose, "Print Joystick events.")
	flag.Float64Var(&defaultConfig.MaxPercent, "max-percent", defaultConfig.MaxPercent, "Motor speed (percent) at full deflection.")
	flag.DurationVar(&defaultConfig.RepeatInterval, "repeat-interval", defaultConfig.RepeatInterval, "Resend the jog command while the stick is held, shorter than the cart watchdog timeout.")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a config with defaults.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// NewController creates a controller using the config.
func (c *Config) NewController(e *env.Env) *Controller {
	ctl := NewController(e)
	ctl.DeviceIndex = c.DeviceIndex
	ctl.Verbose = c.Verbose
	ctl.MaxPercent = c.MaxPercent
	ctl.RepeatInterval = c.RepeatInterval
	return ctl
}
