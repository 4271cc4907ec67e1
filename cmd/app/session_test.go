package app

import (
	"testing"

	"github.com/Manu343726/csrgen/pkg/config"
	"github.com/Manu343726/csrgen/pkg/logging"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession(t *testing.T) {
	fs := afero.NewMemMapFs()
	v := viper.New()
	config.SetDefaults(v)
	v.Set(config.KeyLogFile, "csrgen.log")
	v.Set(config.KeyLogLevel, "debug")

	session, err := NewSession(v, fs)
	require.NoError(t, err)

	model, err := session.LoadSoC()
	require.NoError(t, err)
	assert.Equal(t, "xtrx", model.Name())

	session.Close()

	content, err := afero.ReadFile(fs, "csrgen.log")
	require.NoError(t, err)
	assert.Contains(t, string(content), `"msg":"loaded soc"`)
}

func TestNewSession_InvalidLogLevel(t *testing.T) {
	v := viper.New()
	config.SetDefaults(v)
	v.Set(config.KeyLogLevel, "chatty")

	_, err := NewSession(v, afero.NewMemMapFs())
	assert.ErrorIs(t, err, logging.ErrInvalidLevel)
}

func TestSession_FatalClosesTheLogFile(t *testing.T) {
	var exitCode int
	previous := exit
	exit = func(code int) { exitCode = code }
	t.Cleanup(func() { exit = previous })

	v := viper.New()
	config.SetDefaults(v)
	v.Set(config.KeyLogFile, "csrgen.log")

	session, err := NewSession(v, afero.NewMemMapFs())
	require.NoError(t, err)

	closed := 0
	closeLog := session.closeLog
	session.closeLog = func() error {
		closed++
		return closeLog()
	}

	session.Fatal(ExitGeneration, "generating headers: %v", "disk full")
	assert.Equal(t, ExitGeneration, exitCode)
	assert.Equal(t, 1, closed)

	session.Close()
	assert.Equal(t, 1, closed, "closing twice does not close the file again")
}
