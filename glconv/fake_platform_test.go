package glconv

import (
	"errors"
	"fmt"
)

type binding struct {
	Target  TextureTarget
	Texture Texture
	Image   Image
}

type fakePlatform struct {
	eglExts    string
	glExts     string
	noImageKHR bool
	noTarget2D bool
	failPlane  int

	nextImage Image
	created   []ImageAttributes
	live      map[Image]struct{}
	destroyed []Image
	bound     Texture
	bindings  []binding
}

var _ Platform = (*fakePlatform)(nil)

func newFakePlatform() *fakePlatform {
	return &fakePlatform{
		eglExts:   "EGL_KHR_image_base EGL_EXT_image_dma_buf_import EGL_EXT_image_dma_buf_import_modifiers",
		glExts:    "GL_OES_EGL_image GL_OES_EGL_image_external GL_EXT_texture_rg",
		failPlane: -1,
		nextImage: 0x100,
		live:      map[Image]struct{}{},
	}
}

func (p *fakePlatform) EGLExtensions() string { return p.eglExts }
func (p *fakePlatform) GLExtensions() string  { return p.glExts }
func (p *fakePlatform) HasImageKHR() bool     { return !p.noImageKHR }

func (p *fakePlatform) HasImageTargetTexture2D() bool {
	return !p.noTarget2D
}

func (p *fakePlatform) CreateImage(attrs ImageAttributes) (Image, error) {
	if len(p.created) == p.failPlane {
		return NoImage, errors.New("EGL_BAD_MATCH")
	}
	p.created = append(p.created, attrs)
	img := p.nextImage
	p.nextImage++
	p.live[img] = struct{}{}
	return img, nil
}

func (p *fakePlatform) DestroyImage(img Image) error {
	if _, ok := p.live[img]; !ok {
		return fmt.Errorf("image %#x is not alive", uintptr(img))
	}
	delete(p.live, img)
	p.destroyed = append(p.destroyed, img)
	return nil
}

func (p *fakePlatform) BindTexture(target TextureTarget, tex Texture) {
	p.bound = tex
}

func (p *fakePlatform) ImageTargetTexture2D(target TextureTarget, img Image) {
	p.bindings = append(p.bindings, binding{Target: target, Texture: p.bound, Image: img})
}
