// platform.go defines the platform GPU import layer the importer drives.

package glconv

import (
	"strings"
)

// Image is an EGLImageKHR handle.
type Image uintptr

// NoImage is EGL_NO_IMAGE_KHR.
const NoImage = Image(0)

// Texture is a GL texture name.
type Texture uint32

type TextureTarget uint32

const (
	TextureTarget2D          = TextureTarget(0x0DE1) // GL_TEXTURE_2D
	TextureTargetExternalOES = TextureTarget(0x8D65) // GL_TEXTURE_EXTERNAL_OES
)

func (t TextureTarget) String() string {
	switch t {
	case TextureTarget2D:
		return "GL_TEXTURE_2D"
	case TextureTargetExternalOES:
		return "GL_TEXTURE_EXTERNAL_OES"
	}
	return "GL_TEXTURE_<unknown>"
}

// Platform is the EGL/GLES surface the importer needs. All the calls are
// made on the thread owning the current GL context.
type Platform interface {
	// EGLExtensions returns EGL_EXTENSIONS of the current display.
	EGLExtensions() string

	// GLExtensions returns GL_EXTENSIONS of the current context.
	GLExtensions() string

	// HasImageKHR returns true if eglCreateImageKHR and
	// eglDestroyImageKHR are available.
	HasImageKHR() bool

	// HasImageTargetTexture2D returns true if
	// glEGLImageTargetTexture2DOES is available.
	HasImageTargetTexture2D() bool

	// CreateImage calls eglCreateImageKHR(dpy, EGL_NO_CONTEXT,
	// EGL_LINUX_DMA_BUF_EXT, NULL, attrs).
	CreateImage(attrs ImageAttributes) (Image, error)

	DestroyImage(img Image) error

	BindTexture(target TextureTarget, tex Texture)

	// ImageTargetTexture2D calls glEGLImageTargetTexture2DOES.
	ImageTargetTexture2D(target TextureTarget, img Image)
}

// HasExtension returns true if ext is one of the space-separated names in
// exts. Prefixes of longer names do not match.
func HasExtension(exts, ext string) bool {
	for _, candidate := range strings.Fields(exts) {
		if candidate == ext {
			return true
		}
	}
	return false
}
