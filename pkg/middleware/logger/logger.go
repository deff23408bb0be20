package logger

import (
	"context"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

type ServiceEnv struct {
	Platform string
	Service  string
	Env      string
}

type LogConfig struct {
	Path       string
	LogLevel   string
	ServiceEnv ServiceEnv
}

var global *otelzap.SugaredLogger

func Init(conf *LogConfig) {
	level, err := zapcore.ParseLevel(conf.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	fileSink := zapcore.AddSync(&lumberjack.Logger{
		Filename:   conf.Path,
		MaxSize:    100,
		MaxBackups: 5,
		MaxAge:     30,
	})

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), fileSink, level),
		zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(os.Stdout), level),
	)

	base := zap.New(core,
		zap.AddCaller(),
		zap.AddCallerSkip(2),
		zap.Fields(
			zap.String("platform", conf.ServiceEnv.Platform),
			zap.String("service", conf.ServiceEnv.Service),
			zap.String("env", conf.ServiceEnv.Env),
		),
	)

	global = otelzap.New(base, otelzap.WithMinLevel(level)).Sugar()
}

func Close() {
	if global != nil {
		_ = global.Desugar().Sync()
	}
}

func get() *otelzap.SugaredLogger {
	if global == nil {
		// tests and early init paths
		global = otelzap.New(zap.NewNop()).Sugar()
	}
	return global
}

func Debugf(ctx context.Context, format string, args ...any) {
	get().DebugfContext(ctx, format, args...)
}

func Infof(ctx context.Context, format string, args ...any) {
	get().InfofContext(ctx, format, args...)
}

func Warnf(ctx context.Context, format string, args ...any) {
	get().WarnfContext(ctx, format, args...)
}

func Errorf(ctx context.Context, format string, args ...any) {
	get().ErrorfContext(ctx, format, args...)
}

func Fatalf(ctx context.Context, format string, args ...any) {
	get().FatalfContext(ctx, format, args...)
}

// LogWithWriter is the gin access-log middleware.
func LogWithWriter() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()
		Infof(ctx, "%s %s status: %d cost: %s client: %s",
			ctx.Request.Method,
			ctx.Request.URL.Path,
			ctx.Writer.Status(),
			time.Since(start),
			ctx.ClientIP())
	}
}
