// Command hcesim runs the card-emulation service on a terminal.
//
// Command APDUs are read from stdin as hex, one per line, and answered on
// stdout. On a terminal the input is line-edited behind an "hce> " prompt. Control lines manage the response table and the configuration
// (see shell.go). Forwarded commands are written as a CBOR stream to
// -notify-out, or logged when no file is given.
//
// Usage:
//
//	hcesim [flags]
//
// Flags:
//
//	-config string      YAML configuration file
//	-log-level string   Log level: debug, info, warn, error (default from HCE_LOG_LEVEL, else "info")
//	-notify-out string  File receiving forwarded commands as CBOR
//
// Built with the pcsc tag, the nfc capability check probes the PC/SC service.
//
// Examples:
//
//	# Answer on port 5 once, then inspect what was forwarded
//	printf 'put 5 CAFE\n00A4040507A000DADADADADA\n' | hcesim -notify-out fwd.cbor
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/chzyer/readline"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gregLibert/hce/pkg/hce"
	"github.com/gregLibert/hce/pkg/tlv"
)

var (
	configFile string
	logLevel   string
	notifyOut  string
)

// newProbe builds the capability probe; nil leaves the service without one.
var newProbe func(logger *zap.Logger) hce.CapabilityProbe

func init() {
	flag.StringVar(&configFile, "config", "", "YAML configuration file")
	flag.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flag.StringVar(&notifyOut, "notify-out", "", "File receiving forwarded commands as CBOR")
}

func main() {
	flag.Parse()

	rl, err := newLineReader(os.Stdin, os.Stdout, os.Stderr, readline.DefaultIsTerminal())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Logs go through readline so they do not clobber the prompt.
	logger := newLogger(logLevel, rl.Stderr())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, rl, logger)
	stop()
	_ = rl.Close()

	if err != nil {
		logger.Error("hcesim failed", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}

func run(ctx context.Context, rl *readline.Instance, logger *zap.Logger) error {
	cfg, err := loadConfig(configFile)
	if err != nil {
		return err
	}

	queue := hce.NewQueue(hce.DefaultQueueSize)
	opts := []hce.Option{
		hce.WithLogger(logger.Named("hce")),
		hce.WithNotifier(queue),
		hce.WithSelectHook(func(aid []byte) {
			logger.Info("selected", zap.String("aid", tlv.Spaced(aid)))
		}),
	}
	if newProbe != nil {
		opts = append(opts, hce.WithProbe(newProbe(logger.Named("pcsc"))))
	}

	svc, err := hce.NewService(cfg.Service, opts...)
	if err != nil {
		return err
	}
	for port, data := range cfg.Responses {
		if err := svc.PutResponse(port, data); err != nil {
			return fmt.Errorf("pre-loaded response: %w", err)
		}
	}

	var wg sync.WaitGroup
	var drainErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		drainErr = drain(ctx, queue, logger)
	}()

	sh := &shell{svc: svc, out: rl.Stdout()}
	done := make(chan error, 1)
	go func() { done <- sh.run(rl) }()

	var readErr error
	select {
	case readErr = <-done:
	case <-ctx.Done():
		logger.Info("interrupted")
		_ = rl.Close()
	}

	queue.Close()
	wg.Wait()

	if n := queue.Dropped(); n > 0 {
		logger.Warn("notifications dropped", zap.Uint64("count", n))
	}
	if errors.Is(drainErr, context.Canceled) {
		drainErr = nil
	}
	return errors.Join(readErr, drainErr)
}

// drain consumes the queue until it is closed.
func drain(ctx context.Context, q *hce.Queue, logger *zap.Logger) error {
	if notifyOut == "" {
		for n := range q.C() {
			logger.Info("forwarded",
				zap.Uint8("port", uint8(n.Port)),
				zap.String("header", tlv.Spaced(n.Header)),
				zap.String("data", tlv.Spaced(n.Data)))
		}
		return nil
	}

	f, err := os.Create(notifyOut)
	if err != nil {
		// Keep the queue drained so Process never sees back pressure.
		for range q.C() {
		}
		return fmt.Errorf("failed to open notification stream: %w", err)
	}
	defer f.Close()

	return hce.NewStreamWriter(f).Run(ctx, q.C())
}

// newLogger builds a development logger writing to w. The level comes from
// the flag, then HCE_LOG_LEVEL, and defaults to info.
func newLogger(level string, w io.Writer) *zap.Logger {
	if level == "" {
		level = os.Getenv("HCE_LOG_LEVEL")
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.Lock(zapcore.AddSync(w)),
		parseLevel(level),
	)
	return zap.New(core, zap.Development(), zap.AddCaller(), zap.AddStacktrace(zap.WarnLevel))
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zap.DebugLevel
	case "warn":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}
