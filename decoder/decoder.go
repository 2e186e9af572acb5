// decoder.go implements a libav hardware decoder filling esdrm pictures.

package decoder

import (
	"context"
	"errors"
	"fmt"

	"github.com/asticode/go-astiav"
	"github.com/asticode/go-astikit"
	"github.com/facebookincubator/go-belt"
	"github.com/xaionaro-go/drmprime/logger"
	"github.com/xaionaro-go/drmprime/picture"
	"github.com/xaionaro-go/drmprime/types"
	"github.com/xaionaro-go/xsync"
)

// Decoder decodes packets into pooled pictures without copying: each
// decoded AV_PIX_FMT_DRM_PRIME frame is received into the raw buffer of a
// picture obtained through the Provider.
type Decoder struct {
	locker       xsync.Mutex
	closer       *astikit.Closer
	codec        *astiav.Codec
	codecContext *astiav.CodecContext
	stream       frameStream
	provider     *Provider
}

// frameStream is the send/receive half of a codec context.
type frameStream interface {
	SendPacket(pkt *astiav.Packet) error
	ReceiveFrame(f *astiav.Frame) error
}

func New(
	ctx context.Context,
	codecParameters *astiav.CodecParameters,
	cfg Config,
) (_ret *Decoder, _err error) {
	ctx = belt.WithField(ctx, "codec_id", codecParameters.CodecID())
	ctx = belt.WithField(ctx, "hw_dev_type", cfg.HardwareDeviceType)
	logger.Tracef(ctx, "New(%#+v)", cfg)
	defer func() { logger.Tracef(ctx, "/New(%#+v): %v", cfg, _err) }()

	if !cfg.HardwareDeviceType.ProducesDRMPrime() {
		return nil, fmt.Errorf("hardware device type %s does not export DRM PRIME frames: %w", cfg.HardwareDeviceType, types.ErrNotHandled)
	}

	d := &Decoder{
		closer: astikit.NewCloser(),
	}
	defer func() {
		if _err != nil {
			logger.Debugf(ctx, "got an error, closing the decoder: %v", _err)
			_ = d.Close(ctx)
		}
	}()

	if cfg.CodecName != "" {
		d.codec = astiav.FindDecoderByName(cfg.CodecName)
	} else {
		d.codec = astiav.FindDecoder(codecParameters.CodecID())
	}
	if d.codec == nil {
		return nil, fmt.Errorf("unable to find a decoder using name '%s' or codec ID %v", cfg.CodecName, codecParameters.CodecID())
	}
	logger.Debugf(ctx, "decoder: '%s'", d.codec.Name())

	d.codecContext = astiav.AllocCodecContext(d.codec)
	if d.codecContext == nil {
		return nil, fmt.Errorf("unable to allocate codec context: %w", types.ErrNoMem)
	}
	d.closer.Add(d.codecContext.Free)

	if err := codecParameters.ToCodecContext(d.codecContext); err != nil {
		return nil, fmt.Errorf("codecParameters.ToCodecContext(...) returned error: %w", err)
	}

	if d.hasHardwareDeviceConfig(ctx, cfg.HardwareDeviceType) {
		hwDeviceContext, err := astiav.CreateHardwareDeviceContext(
			cfg.HardwareDeviceType.Astiav(),
			string(cfg.HardwareDeviceName),
			nil,
			0,
		)
		if err != nil {
			return nil, fmt.Errorf("unable to create hardware (%s:%s) device context: %w", cfg.HardwareDeviceType, cfg.HardwareDeviceName, err)
		}
		d.closer.Add(hwDeviceContext.Free)
		d.codecContext.SetHardwareDeviceContext(hwDeviceContext)
	} else {
		// v4l2m2m-like decoders export DRM PRIME frames without a device context
		logger.Debugf(ctx, "decoder '%s' has no %s device context config, relying on get_format", d.codec.Name(), cfg.HardwareDeviceType)
	}

	d.codecContext.SetPixelFormatCallback(func(pfs []astiav.PixelFormat) astiav.PixelFormat {
		for _, pf := range pfs {
			if pf == astiav.PixelFormatDrmPrime {
				return pf
			}
		}
		logger.Errorf(ctx, "the decoder does not offer %s among %v", astiav.PixelFormatDrmPrime, pfs)
		return astiav.PixelFormatNone
	})

	opts, err := dictionaryFromItems(ctx, cfg.Options)
	if err != nil {
		return nil, err
	}
	if opts != nil {
		defer opts.Free()
	}
	if err := d.codecContext.Open(d.codec, opts); err != nil {
		return nil, fmt.Errorf("unable to open the codec context: %w", err)
	}

	d.stream = d.codecContext

	d.provider, err = Create(ctx, astiav.PixelFormatDrmPrime)
	if err != nil {
		return nil, fmt.Errorf("unable to create the buffer provider: %w", err)
	}
	d.closer.Add(func() {
		if err := d.provider.Close(ctx); err != nil {
			logger.Errorf(ctx, "unable to close the buffer provider: %v", err)
		}
	})

	return d, nil
}

// hasHardwareDeviceConfig returns true if the decoder decodes on a device
// context of the given type.
func (d *Decoder) hasHardwareDeviceConfig(
	ctx context.Context,
	hwType types.HardwareDeviceType,
) bool {
	for _, hwCfg := range d.codec.HardwareConfigs() {
		logger.Tracef(ctx, "hw config: %v %v %v", hwCfg.PixelFormat(), hwCfg.MethodFlags(), hwCfg.HardwareDeviceType())
		if hwCfg.HardwareDeviceType() != hwType.Astiav() {
			continue
		}
		if !hwCfg.MethodFlags().Has(astiav.CodecHardwareConfigMethodFlagHwDeviceCtx) {
			logger.Tracef(ctx, "skipping this config, since it does not support a hardware device context")
			continue
		}
		return true
	}
	return false
}

func (d *Decoder) String() string {
	if d.codec == nil {
		return "Decoder(<closed>)"
	}
	return fmt.Sprintf("Decoder(%s)", d.codec.Name())
}

// SendPacket passes a packet to the decoder; a nil packet starts
// draining. It returns ErrNeedDrain if the decoder has not accepted the
// packet.
func (d *Decoder) SendPacket(
	ctx context.Context,
	pkt *astiav.Packet,
) error {
	return xsync.DoR1(xsync.WithNoLogging(ctx, true), &d.locker, func() error {
		return d.sendPacketLocked(pkt)
	})
}

// Flush signals the end of the input; the decoded frames left in the
// decoder are then returned by ReceivePicture until ErrNoFrame.
func (d *Decoder) Flush(ctx context.Context) error {
	logger.Debugf(ctx, "flushing %s", d)
	return d.SendPacket(ctx, nil)
}

var (
	// ErrNoFrame is returned by ReceivePicture when the decoder needs more
	// input (or is drained).
	ErrNoFrame = errors.New("no decoded frame available")

	// ErrNeedDrain is returned when the decoder did not accept a packet
	// because its output is full. The packet stays with the caller, who
	// has to receive the pending pictures and send the packet again.
	ErrNeedDrain = errors.New("the decoded frames have to be received before sending more packets")
)

func (d *Decoder) sendPacketLocked(pkt *astiav.Packet) error {
	if d.stream == nil {
		return fmt.Errorf("the decoder is closed")
	}
	err := d.stream.SendPacket(pkt)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, astiav.ErrEagain):
		return fmt.Errorf("%w: %w", ErrNeedDrain, err)
	default:
		return fmt.Errorf("unable to send the packet: %w", err)
	}
}

// ReceivePicture takes a picture from the pool and receives the next
// decoded frame into its raw buffer. The returned picture has a single
// hold owned by the caller.
func (d *Decoder) ReceivePicture(
	ctx context.Context,
	pool *picture.Pool,
) (*picture.Picture, error) {
	return xsync.DoR2(xsync.WithNoLogging(ctx, true), &d.locker, func() (*picture.Picture, error) {
		return d.receivePictureLocked(ctx, pool)
	})
}

func (d *Decoder) receivePictureLocked(
	ctx context.Context,
	pool *picture.Pool,
) (*picture.Picture, error) {
	if d.stream == nil {
		return nil, fmt.Errorf("the decoder is closed")
	}
	pic := pool.Get(ctx)
	if pic == nil {
		return nil, fmt.Errorf("the picture pool is exhausted: %w", types.ErrNoMem)
	}

	f, err := d.provider.GetAVFrame(ctx, pic)
	if err != nil {
		pic.Release()
		return nil, err
	}

	err = d.stream.ReceiveFrame(f)
	switch {
	case err == nil:
	case errors.Is(err, astiav.ErrEagain), errors.Is(err, astiav.ErrEof):
		pic.Release()
		return nil, fmt.Errorf("%w: %w", ErrNoFrame, err)
	default:
		pic.Release()
		return nil, fmt.Errorf("unable to receive a frame: %w", err)
	}

	if f.PixelFormat() != astiav.PixelFormatDrmPrime {
		pic.Release()
		return nil, fmt.Errorf("the decoder produced %s instead of %s: %w", f.PixelFormat(), astiav.PixelFormatDrmPrime, types.ErrNotHandled)
	}
	return pic, nil
}

// DecodeInto sends the packet and receives the next decoded frame into a
// picture of the pool. It returns ErrNoFrame if the decoder accepted the
// packet but needs more input to output a frame. On ErrNeedDrain the
// packet was not consumed: receive the pending pictures with
// ReceivePicture and call DecodeInto with the same packet again.
func (d *Decoder) DecodeInto(
	ctx context.Context,
	pkt *astiav.Packet,
	pool *picture.Pool,
) (*picture.Picture, error) {
	return xsync.DoR2(xsync.WithNoLogging(ctx, true), &d.locker, func() (*picture.Picture, error) {
		if err := d.sendPacketLocked(pkt); err != nil {
			return nil, err
		}
		return d.receivePictureLocked(ctx, pool)
	})
}

func (d *Decoder) Close(ctx context.Context) error {
	return xsync.DoR1(ctx, &d.locker, func() error {
		if d.closer == nil {
			return nil
		}
		belt.Flush(ctx)
		err := d.closer.Close()
		d.closer = nil
		d.codecContext = nil
		d.stream = nil
		d.codec = nil
		return err
	})
}
