package cart

import (
	"flag"

	"github.com/robotalks/pendulum.go/pkg/sim/device"
	"github.com/robotalks/pendulum.go/pkg/sim/physics/pendulum"
)

// Config defines the configuration of the simulated rig.
type Config struct {
	TrackLength float64
	ArmLength   float64
	CartWidth   float64
	SpeedMax    float64
	Accel       float64
}

// Defaults
const (
	DefaultCartWidth float64 = 100
	DefaultSpeedMax  float64 = 1000
	DefaultAccel     float64 = 16000
)

var defaultConfig = Config{
	TrackLength: pendulum.DefaultParams.TrackLength,
	ArmLength:   pendulum.DefaultParams.ArmLength,
	CartWidth:   DefaultCartWidth,
	SpeedMax:    DefaultSpeedMax,
	Accel:       DefaultAccel,
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.Float64Var(&defaultConfig.TrackLength, "track-length", defaultConfig.TrackLength, "Length (mm) of the track.")
	flag.Float64Var(&defaultConfig.ArmLength, "arm-length", defaultConfig.ArmLength, "Length (mm) of the pendulum arm.")
	flag.Float64Var(&defaultConfig.CartWidth, "cart-width", defaultConfig.CartWidth, "Width (mm) of the cart.")
	flag.Float64Var(&defaultConfig.SpeedMax, "speed-max", defaultConfig.SpeedMax, "Cart speed (mm/s) at full motor speed.")
	flag.Float64Var(&defaultConfig.Accel, "motor-accel", defaultConfig.Accel, "Motor acceleration (speed units/s), 0 for immediate.")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates the default configuration.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// NewRig creates the Rig with a new simulated motor controller.
func (c *Config) NewRig(name string) *Rig {
	params := pendulum.DefaultParams
	params.TrackLength, params.ArmLength = c.TrackLength, c.ArmLength
	smc := device.NewSMC()
	smc.Accel = c.Accel
	r := NewRig(name, smc, pendulum.New(params))
	r.CartWidth = c.CartWidth
	r.SpeedMax = c.SpeedMax
	return r
}
