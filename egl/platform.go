//go:build linux

package egl

import (
	"errors"
	"fmt"

	"github.com/xaionaro-go/drmprime/glconv"
)

// Platform is glconv.Platform on an initialized EGL display. The calls
// must come from the thread the GL context is current on.
type Platform struct {
	Display uintptr
}

var _ glconv.Platform = (*Platform)(nil)

// CurrentPlatform returns the platform on the display of the context
// current on the calling thread.
func CurrentPlatform() (*Platform, error) {
	if err := Load(); err != nil {
		return nil, err
	}
	dpy := eglGetCurrentDisplay()
	if dpy == 0 {
		return nil, errors.New("no current EGL display")
	}
	return &Platform{Display: dpy}, nil
}

func (p *Platform) EGLExtensions() string {
	return goString(eglQueryString(p.Display, eglExtensions))
}

func (p *Platform) GLExtensions() string {
	return goString(glGetString(glExtensions))
}

func (p *Platform) HasImageKHR() bool {
	return eglCreateImageKHR != nil && eglDestroyImageKHR != nil
}

func (p *Platform) HasImageTargetTexture2D() bool {
	return glEGLImageTargetTexture2DOES != nil
}

func (p *Platform) CreateImage(attrs glconv.ImageAttributes) (glconv.Image, error) {
	if !p.HasImageKHR() {
		return glconv.NoImage, errors.New("eglCreateImageKHR is not available")
	}
	list := attrs.EGL()
	img := eglCreateImageKHR(p.Display, 0, glconv.TargetLinuxDMABuf, 0, &list[0])
	if img == 0 {
		return glconv.NoImage, fmt.Errorf("eglCreateImageKHR(%s): %w", attrs, lastError())
	}
	return glconv.Image(img), nil
}

func (p *Platform) DestroyImage(img glconv.Image) error {
	if eglDestroyImageKHR(p.Display, uintptr(img)) == 0 {
		return fmt.Errorf("eglDestroyImageKHR: %w", lastError())
	}
	return nil
}

func (p *Platform) BindTexture(target glconv.TextureTarget, tex glconv.Texture) {
	glBindTexture(uint32(target), uint32(tex))
}

func (p *Platform) ImageTargetTexture2D(target glconv.TextureTarget, img glconv.Image) {
	glEGLImageTargetTexture2DOES(uint32(target), uintptr(img))
}

func (p *Platform) Vendor() string {
	return goString(eglQueryString(p.Display, eglVendor))
}

func (p *Platform) Version() string {
	return goString(eglQueryString(p.Display, eglVersion))
}

func (p *Platform) Renderer() string {
	return goString(glGetString(glRenderer))
}

// GenTextures creates n texture names.
func (p *Platform) GenTextures(n int) []glconv.Texture {
	if n <= 0 {
		return nil
	}
	names := make([]uint32, n)
	glGenTextures(int32(n), &names[0])
	result := make([]glconv.Texture, n)
	for i, name := range names {
		result[i] = glconv.Texture(name)
	}
	return result
}

func (p *Platform) DeleteTextures(textures []glconv.Texture) {
	if len(textures) == 0 {
		return
	}
	names := make([]uint32, len(textures))
	for i, tex := range textures {
		names[i] = uint32(tex)
	}
	glDeleteTextures(int32(len(names)), &names[0])
}
