package motor

import (
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/robotalks/pendulum.go/pkg/l0/comm"
)

// Config defines the configuration of the motor driver.
type Config struct {
	// Port is the serial device, e.g. /dev/ttyACM0.
	Port string `yaml:"port"`
	// Baud is the serial baud rate.
	Baud int `yaml:"baud"`
	// WatchdogTimeout is the maximum gap between move commands
	// before the motor is stopped.
	WatchdogTimeout time.Duration `yaml:"watchdog-timeout"`
	// WatchdogInterval is how often the watchdog is checked.
	WatchdogInterval time.Duration `yaml:"watchdog-interval"`
	// ReadTimeout bounds reading a telemetry reply.
	ReadTimeout time.Duration `yaml:"read-timeout"`
	// TelemetryInterval is the polling period of telemetry.
	TelemetryInterval time.Duration `yaml:"telemetry-interval"`
}

// Defaults
const (
	DefaultPort              = "/dev/ttyACM0"
	DefaultWatchdogTimeout   = 200 * time.Millisecond
	DefaultWatchdogInterval  = 100 * time.Millisecond
	DefaultTelemetryInterval = 100 * time.Millisecond
)

var (
	defaultConfig = Config{
		Port:              DefaultPort,
		Baud:              comm.DefaultBaudRate,
		WatchdogTimeout:   DefaultWatchdogTimeout,
		WatchdogInterval:  DefaultWatchdogInterval,
		ReadTimeout:       comm.DefaultReadTimeout,
		TelemetryInterval: DefaultTelemetryInterval,
	}

	configFile string
)

func init() {
	if val := os.Getenv("PENDULUM_MOTOR_PORT"); val != "" {
		defaultConfig.Port = val
	}
	if val, err := strconv.Atoi(os.Getenv("PENDULUM_MOTOR_BAUD")); err == nil && val > 0 {
		defaultConfig.Baud = val
	}
	configFile = os.Getenv("PENDULUM_MOTOR_CONFIG")
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Port, "port", defaultConfig.Port, "Serial port of the motor controller.")
	flag.IntVar(&defaultConfig.Baud, "baud", defaultConfig.Baud, "Serial baud rate.")
	flag.DurationVar(&defaultConfig.WatchdogTimeout, "watchdog-timeout", defaultConfig.WatchdogTimeout, "Stop the motor if no move command within this duration.")
	flag.DurationVar(&defaultConfig.WatchdogInterval, "watchdog-interval", defaultConfig.WatchdogInterval, "Interval of checking the command watchdog.")
	flag.DurationVar(&defaultConfig.ReadTimeout, "read-timeout", defaultConfig.ReadTimeout, "Timeout of reading a telemetry reply.")
	flag.DurationVar(&defaultConfig.TelemetryInterval, "telemetry-interval", defaultConfig.TelemetryInterval, "Interval of polling telemetry.")
	flag.StringVar(&configFile, "motor-config", configFile, "YAML file overriding motor options.")
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

// LoadConfig creates a config with defaults, merged with the file
// specified by -motor-config if present.
func LoadConfig() (*Config, error) {
	if configFile == "" {
		return NewConfig(), nil
	}
	return LoadConfigFile(configFile)
}

// LoadConfigFile creates a config with defaults and overrides with the YAML file.
func LoadConfigFile(fn string) (*Config, error) {
	data, err := ioutil.ReadFile(fn)
	if err != nil {
		return nil, errors.Wrap(err, "read motor config")
	}
	conf := NewConfig()
	if err := yaml.Unmarshal(data, conf); err != nil {
		return nil, errors.Wrapf(err, "parse motor config %s", fn)
	}
	return conf, conf.Validate()
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	switch {
	case c.Baud <= 0:
		return fmt.Errorf("invalid baud rate %d", c.Baud)
	case c.WatchdogTimeout <= 0:
		return fmt.Errorf("invalid watchdog timeout %v", c.WatchdogTimeout)
	case c.WatchdogInterval <= 0:
		return fmt.Errorf("invalid watchdog interval %v", c.WatchdogInterval)
	case c.ReadTimeout <= 0:
		return fmt.Errorf("invalid read timeout %v", c.ReadTimeout)
	case c.TelemetryInterval <= 0:
		return fmt.Errorf("invalid telemetry interval %v", c.TelemetryInterval)
	}
	return nil
}

// Open opens the serial port and creates the driver.
func (c *Config) Open() (*Driver, error) {
	if c.Port == "" {
		return nil, fmt.Errorf("serial port must be specified")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	port, err := comm.OpenSerial(c.Port, c.Baud)
	if err != nil {
		return nil, err
	}
	return NewDriver(port, c, nil), nil
}
