package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

func TestLog_Subscribe(t *testing.T) {
	sub := Subscribe()
	defer UnSubscribe(sub)

	Warnln("incorrect entry %q on line %d", "a1", 3)

	event := <-sub
	assert.Equal(t, WARNING, event.LogLevel)
	assert.Equal(t, "warning", event.Type())
	assert.Equal(t, `incorrect entry "a1" on line 3`, event.Payload)
}

func TestLog_UnSubscribe(t *testing.T) {
	sub := Subscribe()
	UnSubscribe(sub)
	UnSubscribe(sub)

	_, ok := <-sub
	assert.False(t, ok)
}

func TestLogLevel_YAML(t *testing.T) {
	var cfg struct {
		Level LogLevel `yaml:"log-level"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("log-level: debug"), &cfg))
	assert.Equal(t, DEBUG, cfg.Level)

	assert.Error(t, yaml.Unmarshal([]byte("log-level: loud"), &cfg))
}

func TestLogLevel_JSON(t *testing.T) {
	buf, err := SILENT.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"silent"`, string(buf))

	var l LogLevel
	require.NoError(t, l.UnmarshalJSON([]byte(`"error"`)))
	assert.Equal(t, ERROR, l)
}
