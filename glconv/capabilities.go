package glconv

import (
	"context"
	"fmt"
	"strings"

	"github.com/xaionaro-go/drmprime/logger"
	"github.com/xaionaro-go/drmprime/types"
)

const (
	ExtensionImageBase             = "EGL_KHR_image_base"
	ExtensionDMABufImport          = "EGL_EXT_image_dma_buf_import"
	ExtensionDMABufImportModifiers = "EGL_EXT_image_dma_buf_import_modifiers"
	ExtensionOESEGLImage           = "GL_OES_EGL_image"
	ExtensionOESEGLImageExternal   = "GL_OES_EGL_image_external"
)

// Capabilities is the result of the one-time platform probe.
type Capabilities struct {
	// ImageKHR: eglCreateImageKHR/eglDestroyImageKHR are available.
	ImageKHR bool

	// DMABufImport: EGL_EXT_image_dma_buf_import.
	DMABufImport bool

	// DMABufImportModifiers: EGL_EXT_image_dma_buf_import_modifiers. Not
	// required: only the linear modifier is ever passed.
	DMABufImportModifiers bool

	// OESEGLImage: the GL extension allowing to sample an EGL image
	// through the texture target in use.
	OESEGLImage bool

	// SamplingExtension is the name of the GL extension OESEGLImage was
	// probed for.
	SamplingExtension string

	// ImageTargetTexture2D: glEGLImageTargetTexture2DOES is available.
	ImageTargetTexture2D bool
}

// ProbeCapabilities queries the platform once.
func ProbeCapabilities(
	ctx context.Context,
	platform Platform,
	target TextureTarget,
) Capabilities {
	eglExts := platform.EGLExtensions()
	glExts := platform.GLExtensions()
	logger.Tracef(ctx, "EGL extensions: %s", eglExts)
	logger.Tracef(ctx, "GL extensions: %s", glExts)

	samplingExt := ExtensionOESEGLImage
	if target == TextureTargetExternalOES {
		samplingExt = ExtensionOESEGLImageExternal
	}

	return Capabilities{
		ImageKHR:              platform.HasImageKHR(),
		DMABufImport:          HasExtension(eglExts, ExtensionDMABufImport),
		DMABufImportModifiers: HasExtension(eglExts, ExtensionDMABufImportModifiers),
		OESEGLImage:           HasExtension(glExts, samplingExt),
		SamplingExtension:     samplingExt,
		ImageTargetTexture2D:  platform.HasImageTargetTexture2D(),
	}
}

// Missing returns the names of the required capabilities that are absent.
func (c Capabilities) Missing() []string {
	var missing []string
	if !c.ImageKHR {
		missing = append(missing, "eglCreateImageKHR")
	}
	if !c.DMABufImport {
		missing = append(missing, ExtensionDMABufImport)
	}
	if !c.OESEGLImage {
		ext := c.SamplingExtension
		if ext == "" {
			ext = ExtensionOESEGLImage
		}
		missing = append(missing, ext)
	}
	if !c.ImageTargetTexture2D {
		missing = append(missing, "glEGLImageTargetTexture2DOES")
	}
	return missing
}

// Check returns an error wrapping types.ErrUnsupported if a required
// capability is absent.
func (c Capabilities) Check() error {
	missing := c.Missing()
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("missing %s: %w", strings.Join(missing, ", "), types.ErrUnsupported)
}
