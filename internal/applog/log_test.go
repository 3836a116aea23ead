package applog_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felipesere/everdiff/internal/applog"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  applog.Level
		err   bool
	}{
		"error":          {input: "error", want: applog.LevelError},
		"warn":           {input: "warn", want: applog.LevelWarn},
		"warning alias":  {input: "warning", want: applog.LevelWarn},
		"info":           {input: "info", want: applog.LevelInfo},
		"debug":          {input: "debug", want: applog.LevelDebug},
		"case insensitive": {input: "INFO", want: applog.LevelInfo},
		"unknown":        {input: "trace", err: true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := applog.ParseLevel(tc.input)
			if tc.err {
				require.ErrorIs(t, err, applog.ErrUnknownLogLevel)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  applog.Format
		err   bool
	}{
		"json":    {input: "json", want: applog.FormatJSON},
		"logfmt":  {input: "logfmt", want: applog.FormatLogfmt},
		"text":    {input: "text", want: applog.FormatText},
		"unknown": {input: "xml", err: true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := applog.ParseFormat(tc.input)
			if tc.err {
				require.ErrorIs(t, err, applog.ErrUnknownLogFormat)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNewHandlerFromStrings(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	handler, err := applog.NewHandlerFromStrings(&buf, "debug", "json")
	require.NoError(t, err)
	assert.NotNil(t, handler)
}

func TestNewHandlerFromStringsInvalid(t *testing.T) {
	t.Parallel()

	_, err := applog.NewHandlerFromStrings(&bytes.Buffer{}, "loud", "json")
	require.ErrorIs(t, err, applog.ErrInvalidArgument)
}
