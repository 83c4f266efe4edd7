package log

import (
	"context"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		format  string
		wantErr int
	}{
		{name: "defaults", level: "info", format: "console", wantErr: 0},
		{name: "json", level: "debug", format: "JSON", wantErr: 0},
		{name: "bad level", level: "verbose", format: "console", wantErr: 1},
		{name: "bad level and format", level: "verbose", format: "xml", wantErr: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := NewOptions()
			opts.Level = tt.level
			opts.Format = tt.format
			assert.Len(t, opts.Validate(), tt.wantErr)
		})
	}
}

func TestOptions_AddFlags(t *testing.T) {
	opts := NewOptions()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	opts.AddFlags(fs)

	require.NoError(t, fs.Parse([]string{"--log.level=debug", "--log.format=json", "--log.output-paths=stdout,/tmp/a.log"}))
	assert.Equal(t, "debug", opts.Level)
	assert.Equal(t, "json", opts.Format)
	assert.Equal(t, []string{"stdout", "/tmp/a.log"}, opts.OutputPaths)
	assert.Contains(t, opts.String(), `"level":"debug"`)
}

func TestL_AttachesRequestFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	lg := NewLogger(zap.New(core))

	ctx := context.WithValue(context.Background(), KeyRequestID, "01HZX") //nolint:staticcheck
	ctx = context.WithValue(ctx, KeyUserID, "u-1")                        //nolint:staticcheck
	lg.L(ctx).Infow("product created", "sku", "SKU-1")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "01HZX", fields[KeyRequestID])
	assert.Equal(t, "u-1", fields[KeyUserID])
	assert.Equal(t, "SKU-1", fields["sku"])
}

func TestWithValues(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	lg := NewLogger(zap.New(core)).WithValues("resource", "Product")

	lg.Debug("hidden")
	lg.Info("visible")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "Product", logs.All()[0].ContextMap()["resource"])
}

func TestContextRoundTrip(t *testing.T) {
	lg := WithName("test")
	ctx := lg.WithContext(context.Background())
	assert.Same(t, lg, FromContext(ctx))
	assert.NotNil(t, FromContext(context.Background()))
}
