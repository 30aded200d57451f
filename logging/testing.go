package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

type testAppender struct {
	tb      testing.TB
	encoder zapcore.Encoder
}

// NewTestAppender returns an appender that writes each entry through `tb.Log`, keeping
// the line attached to the test that produced it. Times are in the local timezone and
// levels are not colored.
func NewTestAppender(tb testing.TB) Appender {
	encoderConfig := NewLoggerConfig().EncoderConfig
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(DefaultTimeFormatStr)
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderConfig.SkipLineEnding = true
	return &testAppender{tb: tb, encoder: zapcore.NewConsoleEncoder(encoderConfig)}
}

// Write logs the console-encoded entry to the test.
func (tapp *testAppender) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	tapp.tb.Helper()
	buf, err := tapp.encoder.EncodeEntry(entry, fields)
	if err != nil {
		tapp.tb.Log(entry.Message)
		return err
	}
	defer buf.Free()
	tapp.tb.Log(buf.String())
	return nil
}

// Sync is a no-op.
func (tapp *testAppender) Sync() error {
	return nil
}
