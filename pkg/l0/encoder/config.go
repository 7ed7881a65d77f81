package encoder

import (
	"flag"
	"os"
	"strconv"

	"github.com/robotalks/pendulum.go/pkg/l0/comm"
)

// DefaultBaudRate is the UART rate of the encoder microcontroller.
const DefaultBaudRate = 2000000

// Config defines the encoder port. An empty Port disables the encoder.
type Config struct {
	Port string
	Baud int
}

var defaultConfig = Config{
	Baud: DefaultBaudRate,
}

func init() {
	if val := os.Getenv("PENDULUM_ENCODER_PORT"); val != "" {
		defaultConfig.Port = val
	}
	if val, err := strconv.Atoi(os.Getenv("PENDULUM_ENCODER_BAUD")); err == nil && val > 0 {
		defaultConfig.Baud = val
	}
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Port, "encoder-port", defaultConfig.Port, "Serial port of the encoder board, empty to disable.")
	flag.IntVar(&defaultConfig.Baud, "encoder-baud", defaultConfig.Baud, "Baud rate of the encoder board.")
}

// NewConfig creates a config with defaults.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// Enabled indicates an encoder port is configured.
func (c *Config) Enabled() bool {
	return c.Port != ""
}

// Open opens the port and creates the Reader.
func (c *Config) Open() (*Reader, error) {
	port, err := comm.OpenSerial(c.Port, c.Baud)
	if err != nil {
		return nil, err
	}
	return NewReader(port), nil
}
