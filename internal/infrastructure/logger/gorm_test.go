package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

const historyInsert = `INSERT INTO "label_history" ("id","product_id","url","label_url") VALUES ($1,$2,$3,$4)`

func observedGormLogger(level gormlogger.LogLevel, opts ...GormLoggerOption) (*GormLogger, *observer.ObservedLogs) {
	core, recorded := observer.New(zapcore.DebugLevel)
	return NewGormLogger(zap.New(core), level, opts...), recorded
}

func statement(sql string, rows int64) func() (string, int64) {
	return func() (string, int64) { return sql, rows }
}

func TestNewGormLogger(t *testing.T) {
	gl := NewGormLogger(nil, gormlogger.Warn)
	assert.Equal(t, gormlogger.Warn, gl.level)
	assert.Equal(t, defaultSlowThreshold, gl.slowThreshold)

	gl = NewGormLogger(zap.NewNop(), gormlogger.Info, WithSlowThreshold(time.Second))
	assert.Equal(t, time.Second, gl.slowThreshold)

	var _ gormlogger.Interface = gl
}

func TestGormLogger_LogModeCopies(t *testing.T) {
	gl := NewGormLogger(zap.NewNop(), gormlogger.Info)

	silenced, ok := gl.LogMode(gormlogger.Silent).(*GormLogger)
	require.True(t, ok)
	assert.Equal(t, gormlogger.Silent, silenced.level)
	assert.Equal(t, gormlogger.Info, gl.level)
}

func TestGormLogger_Printf(t *testing.T) {
	tests := []struct {
		name  string
		level gormlogger.LogLevel
		log   func(*GormLogger, context.Context)
		want  zapcore.Level
		msg   string
	}{
		{
			name:  "info",
			level: gormlogger.Info,
			log:   func(l *GormLogger, ctx context.Context) { l.Info(ctx, "migrated %s", "label_history") },
			want:  zapcore.InfoLevel,
			msg:   "migrated label_history",
		},
		{
			name:  "warn",
			level: gormlogger.Warn,
			log:   func(l *GormLogger, ctx context.Context) { l.Warn(ctx, "pool at %d", 25) },
			want:  zapcore.WarnLevel,
			msg:   "pool at 25",
		},
		{
			name:  "error",
			level: gormlogger.Error,
			log:   func(l *GormLogger, ctx context.Context) { l.Error(ctx, "lost connection") },
			want:  zapcore.ErrorLevel,
			msg:   "lost connection",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gl, recorded := observedGormLogger(tt.level)
			tt.log(gl, context.Background())

			logs := recorded.All()
			require.Len(t, logs, 1)
			assert.Equal(t, tt.want, logs[0].Level)
			assert.Equal(t, tt.msg, logs[0].Message)
			assert.Equal(t, "gorm", logs[0].LoggerName)
		})
	}

	t.Run("below level", func(t *testing.T) {
		gl, recorded := observedGormLogger(gormlogger.Error)
		gl.Info(context.Background(), "ignored")
		gl.Warn(context.Background(), "ignored")
		assert.Zero(t, recorded.Len())
	})
}

func TestGormLogger_Trace(t *testing.T) {
	slowBegin := time.Now().Add(-time.Second)

	tests := []struct {
		name   string
		level  gormlogger.LogLevel
		begin  time.Time
		err    error
		want   zapcore.Level
		msg    string
		silent bool
	}{
		{name: "query at info", level: gormlogger.Info, begin: time.Now(), want: zapcore.DebugLevel, msg: "SQL Query"},
		{name: "query at warn", level: gormlogger.Warn, begin: time.Now(), silent: true},
		{name: "slow", level: gormlogger.Warn, begin: slowBegin, want: zapcore.WarnLevel, msg: "SLOW SQL >= 200ms"},
		{name: "failure", level: gormlogger.Error, begin: time.Now(), err: errors.New("duplicate key"), want: zapcore.ErrorLevel, msg: "SQL Error"},
		{name: "failure beats slow", level: gormlogger.Warn, begin: slowBegin, err: errors.New("timeout"), want: zapcore.ErrorLevel, msg: "SQL Error"},
		{name: "not found at error", level: gormlogger.Error, begin: time.Now(), err: gormlogger.ErrRecordNotFound, silent: true},
		{name: "not found at info", level: gormlogger.Info, begin: time.Now(), err: gormlogger.ErrRecordNotFound, want: zapcore.DebugLevel, msg: "SQL Query"},
		{name: "silent", level: gormlogger.Silent, begin: slowBegin, err: errors.New("x"), silent: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gl, recorded := observedGormLogger(tt.level)
			gl.Trace(context.Background(), tt.begin, statement(historyInsert, 1), tt.err)

			if tt.silent {
				assert.Zero(t, recorded.Len())
				return
			}
			logs := recorded.All()
			require.Len(t, logs, 1)
			assert.Equal(t, tt.want, logs[0].Level)
			assert.Equal(t, tt.msg, logs[0].Message)

			fields := logs[0].ContextMap()
			assert.Equal(t, historyInsert, fields["sql"])
			assert.Equal(t, int64(1), fields["rows"])
			_, hasErr := fields["error"]
			assert.Equal(t, tt.msg == "SQL Error", hasErr)
		})
	}
}

func TestGormLogger_Trace_SlowThresholdDisabled(t *testing.T) {
	gl, recorded := observedGormLogger(gormlogger.Warn, WithSlowThreshold(0))
	gl.Trace(context.Background(), time.Now().Add(-time.Minute), statement(historyInsert, 1), nil)
	assert.Zero(t, recorded.Len())
}

func TestGormLogger_Trace_LabelContext(t *testing.T) {
	gl, recorded := observedGormLogger(gormlogger.Info)

	ctx, l := WithRequestID(spanContext(t), zap.NewNop(), "req-42")
	ctx, _ = WithSKU(ctx, l, "SOFA-01")
	gl.Trace(ctx, time.Now(), statement(historyInsert, 1), nil)

	logs := recorded.All()
	require.Len(t, logs, 1)
	fields := logs[0].ContextMap()
	assert.Equal(t, "req-42", fields["request_id"])
	assert.Equal(t, "SOFA-01", fields["sku"])
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", fields["trace_id"])
}

func TestGormLogger_Trace_NoContextFields(t *testing.T) {
	gl, recorded := observedGormLogger(gormlogger.Info)
	gl.Trace(context.Background(), time.Now(), statement("SELECT 1", 1), nil)

	fields := recorded.All()[0].ContextMap()
	assert.NotContains(t, fields, "request_id")
	assert.NotContains(t, fields, "sku")
	assert.NotContains(t, fields, "trace_id")
}

func TestMapGormLogLevel(t *testing.T) {
	tests := map[string]gormlogger.LogLevel{
		"silent":  gormlogger.Silent,
		"error":   gormlogger.Error,
		"warn":    gormlogger.Warn,
		"info":    gormlogger.Info,
		"debug":   gormlogger.Info,
		"unknown": gormlogger.Warn,
		"":        gormlogger.Warn,
	}
	for in, want := range tests {
		assert.Equal(t, want, MapGormLogLevel(in), in)
	}
}
