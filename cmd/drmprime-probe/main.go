//go:build linux

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"runtime"

	"github.com/facebookincubator/go-belt"
	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/facebookincubator/go-belt/tool/logger/implementation/logrus"
	"github.com/spf13/pflag"
	"github.com/xaionaro-go/drmprime/egl"
	"github.com/xaionaro-go/drmprime/glconv"
	drmlogger "github.com/xaionaro-go/drmprime/logger"
	"github.com/xaionaro-go/drmprime/types"
	"github.com/xaionaro-go/observability"
	"golang.org/x/sys/unix"
	"gopkg.in/yaml.v3"
)

func init() {
	// EGL contexts are current per OS thread
	runtime.LockOSThread()
}

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "syntax: %s [options] [<URL-to-decode>]\n", os.Args[0])
		pflag.PrintDefaults()
	}

	loggerLevel := logger.LevelWarning
	pflag.Var(&loggerLevel, "log-level", "Log level")
	netPprofAddr := pflag.String("net-pprof-listen-addr", "", "an address to listen for incoming net/pprof connections")
	configPath := pflag.String("config", "", "path to a YAML config file")
	dumpConfig := pflag.Bool("dump-config", false, "print the effective config and exit")
	renderNode := pflag.String("render-node", "", "the DRM render node to use (overrides the config)")
	codecName := pflag.String("codec", "", "force the decoder by name, e.g. h264_v4l2m2m (overrides the config)")
	maxFrames := pflag.Uint("frames", 0, "amount of frames to import (overrides the config)")
	var chroma types.PixelFormat
	pflag.Var(&chroma, "chroma", "the DRM PRIME chroma the decoder exports (overrides the config)")
	var hwDeviceType types.HardwareDeviceType
	pflag.Var(&hwDeviceType, "hw-device-type", "the hardware device type to decode on (overrides the config)")
	var decoderOptions types.DictionaryItems
	pflag.Var(&decoderOptions, "decoder-option", "a key=value option passed to the decoder (repeatable)")
	pflag.Parse()
	if len(pflag.Args()) > 1 {
		pflag.Usage()
		os.Exit(1)
	}

	l := logrus.Default().WithLevel(loggerLevel)
	ctx := logger.CtxWithLogger(context.Background(), l)
	logger.Default = func() logger.Logger {
		return l
	}
	defer belt.Flush(ctx)

	if *netPprofAddr != "" {
		observability.Go(ctx, func() { l.Error(http.ListenAndServe(*netPprofAddr, nil)) })
	}

	drmlogger.RedirectAstiav(l)

	cfg, err := readConfig(*configPath)
	if err != nil {
		l.Fatal(err)
	}
	if *renderNode != "" {
		cfg.RenderNode = *renderNode
		cfg.Decoder.HardwareDeviceName = types.HardwareDeviceName(*renderNode)
	}
	if *codecName != "" {
		cfg.Decoder.CodecName = *codecName
	}
	cfg.Decoder.Options = append(cfg.Decoder.Options, decoderOptions...)
	if *maxFrames != 0 {
		cfg.MaxFrames = *maxFrames
	}
	if chroma != types.UndefinedPixelFormat {
		cfg.Chroma = chroma
	}
	if pflag.CommandLine.Changed("hw-device-type") {
		cfg.Decoder.HardwareDeviceType = hwDeviceType
	}

	if *dumpConfig {
		b, err := yaml.Marshal(cfg)
		if err != nil {
			l.Fatal(err)
		}
		os.Stdout.Write(b)
		return
	}

	if err := checkRenderNode(cfg.RenderNode); err != nil {
		l.Warnf("%v", err)
	}

	eglCtx, err := egl.NewHeadlessContextWithConfig(ctx, cfg.EGL)
	if err != nil {
		l.Fatalf("unable to create an EGL context: %v", err)
	}
	defer func() {
		if err := eglCtx.Close(); err != nil {
			l.Errorf("unable to close the EGL context: %v", err)
		}
	}()
	platform := eglCtx.Platform()
	major, minor := eglCtx.Version()
	fmt.Printf("EGL %d.%d (%s), GL renderer: %s\n", major, minor, platform.Vendor(), platform.Renderer())

	caps := glconv.ProbeCapabilities(ctx, platform, cfg.GLConv.TextureTarget)
	fmt.Printf("capabilities: %+v\n", caps)
	if err := caps.Check(); err != nil {
		fmt.Printf("zero-copy import is not possible: %v\n", err)
		os.Exit(2)
	}

	if len(pflag.Args()) == 0 {
		return
	}

	if err := decodeAndImport(ctx, cfg, platform, pflag.Arg(0)); err != nil {
		if types.IsDecline(err) {
			fmt.Printf("zero-copy path declined: %v\n", err)
			os.Exit(2)
		}
		l.Fatal(err)
	}
}

func checkRenderNode(path string) error {
	if !types.HardwareDeviceName(path).IsRenderNode() {
		return fmt.Errorf("'%s' does not look like a DRM render node", path)
	}
	var stat unix.Stat_t
	if err := unix.Stat(path, &stat); err != nil {
		return fmt.Errorf("unable to stat render node '%s': %w", path, err)
	}
	if stat.Mode&unix.S_IFMT != unix.S_IFCHR {
		return fmt.Errorf("'%s' is not a character device", path)
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK); err != nil {
		return fmt.Errorf("no read/write access to '%s': %w", path, err)
	}
	return nil
}

var errEndOfInput = errors.New("end of input")
