package motor

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "motor")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	fn := filepath.Join(dir, "motor.yaml")
	require.NoError(t, ioutil.WriteFile(fn, []byte(`
port: /dev/ttyUSB1
watchdog-timeout: 300ms
telemetry-interval: 50ms
`), 0644))

	conf, err := LoadConfigFile(fn)
	require.NoError(t, err)
	require.Equal(t, "/dev/ttyUSB1", conf.Port)
	require.Equal(t, 300*time.Millisecond, conf.WatchdogTimeout)
	require.Equal(t, 50*time.Millisecond, conf.TelemetryInterval)
	require.Equal(t, Default().Baud, conf.Baud)
	require.Equal(t, Default().ReadTimeout, conf.ReadTimeout)
}

func TestLoadConfigFileInvalid(t *testing.T) {
	dir, err := ioutil.TempDir("", "motor")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	fn := filepath.Join(dir, "motor.yaml")
	require.NoError(t, ioutil.WriteFile(fn, []byte("baud: -1\n"), 0644))
	_, err = LoadConfigFile(fn)
	require.Error(t, err)

	_, err = LoadConfigFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, NewConfig().Validate())
	conf := NewConfig()
	conf.WatchdogTimeout = 0
	require.Error(t, conf.Validate())
	conf = NewConfig()
	conf.Port = ""
	_, err := conf.Open()
	require.Error(t, err)
}
