package cmdutil

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestGetStringConfig(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	assert.Equal(t, ":9090", GetStringConfig("listen", ":9090"), "flag wins when set")

	viper.Set("listen", ":7070")
	assert.Equal(t, ":9090", GetStringConfig("listen", ":9090"), "flag still wins over config")
	assert.Equal(t, ":7070", GetStringConfig("listen", ""), "config used when flag empty")
}

func TestGetIntConfig(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	assert.Equal(t, 10000, GetIntConfig("buffer_size", 10000))

	viper.Set("buffer_size", 500)
	assert.Equal(t, 500, GetIntConfig("buffer_size", 10000), "config wins once set")
}

func TestGetBoolConfig(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	assert.True(t, GetBoolConfig("metrics", true))

	viper.Set("metrics", false)
	assert.False(t, GetBoolConfig("metrics", true))
}

func TestGetDurationConfig(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	assert.Equal(t, 500*time.Millisecond, GetDurationConfig("interval", 500*time.Millisecond))

	viper.Set("interval", "2s")
	assert.Equal(t, 2*time.Second, GetDurationConfig("interval", 500*time.Millisecond))
}
