package notify_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tailored-agentic-units/sovereign/notify"
)

func TestDefaultConfig(t *testing.T) {
	cfg := notify.DefaultConfig()

	assert.Equal(t, notify.DefaultEndpoint, cfg.Endpoint)
	assert.Equal(t, 10*time.Second, cfg.Timeout.Std())
	assert.NotEmpty(t, cfg.UserAgent)
	assert.Equal(t, int64(notify.DefaultMaxResponseBytes), cfg.MaxResponseBytes)
}

func TestConfig_Merge(t *testing.T) {
	cfg := notify.DefaultConfig()
	cfg.Merge(&notify.Config{Endpoint: "http://localhost:9000/hook", Timeout: notify.Duration(time.Second)})

	assert.Equal(t, "http://localhost:9000/hook", cfg.Endpoint)
	assert.Equal(t, time.Second, cfg.Timeout.Std())
	assert.Equal(t, notify.DefaultConfig().UserAgent, cfg.UserAgent)
}

func TestConfig_Merge_MaxResponseBytes(t *testing.T) {
	cfg := notify.DefaultConfig()
	cfg.Merge(&notify.Config{MaxResponseBytes: 4096})

	assert.Equal(t, int64(4096), cfg.MaxResponseBytes)
}

func TestConfig_Merge_EmptyPreservesDefault(t *testing.T) {
	cfg := notify.DefaultConfig()
	cfg.Merge(&notify.Config{})

	assert.Equal(t, notify.DefaultConfig(), cfg)
}

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Duration
		wantErr bool
	}{
		{name: "string", in: `"1.5s"`, want: 1500 * time.Millisecond},
		{name: "nanoseconds", in: `2000000000`, want: 2 * time.Second},
		{name: "empty string", in: `""`, want: 0},
		{name: "null", in: `null`, want: 0},
		{name: "negative", in: `"-1s"`, wantErr: true},
		{name: "garbage", in: `"soon"`, wantErr: true},
		{name: "bool", in: `true`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d notify.Duration
			err := json.Unmarshal([]byte(tt.in), &d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Std())
		})
	}
}

func TestDuration_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(notify.Duration(3 * time.Second))
	require.NoError(t, err)
	assert.Equal(t, `"3s"`, string(data))
}
