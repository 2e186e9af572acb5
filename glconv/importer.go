// importer.go implements importing DRM PRIME pictures as GL textures.

// Package glconv binds the planes of decoded DRM PRIME pictures to GL
// textures through EGL images without copying the pixel data.
package glconv

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/davecgh/go-spew/spew"
	"github.com/xaionaro-go/drmprime/drm"
	"github.com/xaionaro-go/drmprime/esdrm"
	"github.com/xaionaro-go/drmprime/frame"
	"github.com/xaionaro-go/drmprime/internal"
	"github.com/xaionaro-go/drmprime/logger"
	"github.com/xaionaro-go/drmprime/picture"
	"github.com/xaionaro-go/drmprime/types"
)

type Importer struct {
	Platform     Platform
	Format       types.VideoFormat
	Config       Config
	Capabilities Capabilities

	// AllocFunc is the raw buffer allocator of the pools returned by
	// GetPool; nil means frame.Alloc.
	AllocFunc esdrm.AllocFunc

	counters types.ImportCounters
}

// Open returns an importer for pictures of the given format, or declines
// with types.ErrUnsupported if either the format or the platform is not
// supported.
func Open(
	ctx context.Context,
	platform Platform,
	format types.VideoFormat,
	cfg Config,
) (_ret *Importer, _err error) {
	logger.Debugf(ctx, "Open(%s, %#+v)", format, cfg)
	defer func() { logger.Debugf(ctx, "/Open(%s, %#+v): %v", format, cfg, _err) }()

	internal.Assert(ctx, platform != nil, "platform is nil")

	if _, ok := BufferFormat(format.Chroma); !ok {
		return nil, fmt.Errorf("chroma %s: %w", format.Chroma, types.ErrUnsupported)
	}
	if cfg.TextureTarget == 0 {
		cfg.TextureTarget = DefaultConfig().TextureTarget
	}

	caps := ProbeCapabilities(ctx, platform, cfg.TextureTarget)
	logger.Debugf(ctx, "capabilities: %#+v", caps)
	if err := caps.Check(); err != nil {
		return nil, err
	}

	return &Importer{
		Platform:     platform,
		Format:       format,
		Config:       cfg,
		Capabilities: caps,
	}, nil
}

func (imp *Importer) String() string {
	return fmt.Sprintf("glconv(%s)", imp.Format)
}

// SamplingChroma returns the chroma the textures have to be sampled as.
func (imp *Importer) SamplingChroma() types.PixelFormat {
	return imp.Format.Chroma.SamplingFormat()
}

// GetStats returns the counters of the UpdateTextures calls.
func (imp *Importer) GetStats() types.ImportStatistics {
	return imp.counters.ToStats()
}

// GetPool returns a pool of pictures of the importer's format.
func (imp *Importer) GetPool(
	ctx context.Context,
	count uint,
) (*picture.Pool, error) {
	return esdrm.NewPool(ctx, imp.Format, count, imp.AllocFunc)
}

// UpdateTextures binds every plane of the decoded picture to the matching
// texture. textures, widths and heights are indexed by plane. The EGL
// images are destroyed before returning: the textures keep the storage.
func (imp *Importer) UpdateTextures(
	ctx context.Context,
	pic *picture.Picture,
	textures []Texture,
	widths []int32,
	heights []int32,
) (_err error) {
	logger.Tracef(ctx, "UpdateTextures(%s, %v)", pic, textures)
	defer func() { logger.Tracef(ctx, "/UpdateTextures(%s, %v): %v", pic, textures, _err) }()

	if err := imp.Capabilities.Check(); err != nil {
		return err
	}

	var buffer frame.Buffer
	if pic != nil && pic.Context() != nil {
		buffer = esdrm.BufferFromContext(pic.Context())
	}
	if buffer == nil {
		return types.ErrNoBuffer
	}

	desc := buffer.DRMFrameDescriptor()
	if desc == nil {
		return types.ErrNoDescriptor
	}
	defer func() { imp.counters.Account(_err, bufferSize(desc)) }()

	layer := desc.Layer()
	if layer == nil || len(layer.Planes) <= 1 {
		return fmt.Errorf("descriptor %s has less than two planes: %w", desc, types.ErrUnsupported)
	}

	planeFormats, ok := PlaneFormats(layer.Format)
	if !ok {
		return fmt.Errorf("format %s: %w", layer.Format, types.ErrUnsupported)
	}
	planeCount := len(planeFormats)
	if len(layer.Planes) != planeCount {
		return fmt.Errorf("format %s has %d planes, but the descriptor has %d: %w", layer.Format, planeCount, len(layer.Planes), types.ErrUnsupported)
	}
	if len(textures) < planeCount || len(widths) < planeCount || len(heights) < planeCount {
		return fmt.Errorf("%d planes, but %d textures and %d/%d sizes: %w", planeCount, len(textures), len(widths), len(heights), types.ErrUnsupported)
	}

	if err := desc.Validate(); err != nil {
		return fmt.Errorf("%w: %w", types.ErrImportFailed, err)
	}

	objects := make([]*drm.Object, planeCount)
	for i, plane := range layer.Planes {
		obj, err := desc.PlaneObject(i)
		if err != nil {
			return fmt.Errorf("%w: %w", types.ErrImportFailed, err)
		}
		if !fitsAttribute(plane.Offset) || !fitsAttribute(plane.Pitch) || !fitsAttribute(int64(obj.FD)) {
			return fmt.Errorf("plane #%d (fd %d, offset %d, pitch %d) does not fit into EGL attributes: %w", i, obj.FD, plane.Offset, plane.Pitch, types.ErrUnsupported)
		}
		objects[i] = obj
	}

	images := make([]Image, 0, planeCount)
	defer func() {
		for _, img := range images {
			if err := imp.Platform.DestroyImage(img); err != nil {
				logger.Errorf(ctx, "unable to destroy image %#x: %v", uintptr(img), err)
			}
		}
	}()

	for i, plane := range layer.Planes {
		obj := objects[i]
		if obj.Modifier != drm.ModifierLinear {
			logger.Debugf(ctx, "plane #%d has modifier %s, importing it as linear", i, obj.Modifier)
		}
		attrs := PlaneImageAttributes(
			widths[i], heights[i],
			planeFormats[i],
			obj.FD,
			plane.Offset, plane.Pitch,
			drm.ModifierLinear,
		)
		img, err := imp.Platform.CreateImage(attrs)
		if err == nil && img == NoImage {
			err = errors.New("EGL_NO_IMAGE_KHR")
		}
		if err != nil {
			logger.Errorf(ctx, "unable to import plane #%d (%s) with attributes %s: %v\n%s", i, planeFormats[i], attrs, err, spew.Sdump(desc))
			return types.ErrPlaneImport{Plane: i, Err: err}
		}
		images = append(images, img)
	}

	for i, img := range images {
		imp.Platform.BindTexture(imp.Config.TextureTarget, textures[i])
		imp.Platform.ImageTargetTexture2D(imp.Config.TextureTarget, img)
	}
	imp.counters.Planes.Count.Add(uint64(len(images)))
	return nil
}

func bufferSize(desc *drm.FrameDescriptor) uint64 {
	var size uint64
	for _, obj := range desc.Objects {
		size += obj.Size
	}
	return size
}

func (imp *Importer) Close(ctx context.Context) error {
	logger.Debugf(ctx, "closing %s", imp)
	return nil
}

func fitsAttribute(v int64) bool {
	return v >= 0 && v <= math.MaxInt32
}
