package frame

/*
#cgo pkg-config: libavutil
#include <libavutil/frame.h>
#include <libavutil/hwcontext_drm.h>
*/
import "C"

import (
	"unsafe"

	"github.com/xaionaro-go/drmprime/drm"
)

func descriptorFromAVFrame(ptr unsafe.Pointer) *drm.FrameDescriptor {
	if ptr == nil {
		return nil
	}
	avFrame := (*C.AVFrame)(ptr)
	if avFrame.data[0] == nil {
		return nil
	}
	desc := (*C.AVDRMFrameDescriptor)(unsafe.Pointer(avFrame.data[0]))

	result := &drm.FrameDescriptor{}
	for i := 0; i < int(desc.nb_objects) && i < len(desc.objects); i++ {
		obj := &desc.objects[i]
		result.Objects = append(result.Objects, drm.Object{
			FD:       int(obj.fd),
			Size:     uint64(obj.size),
			Modifier: drm.Modifier(obj.format_modifier),
		})
	}
	for i := 0; i < int(desc.nb_layers) && i < len(desc.layers); i++ {
		layer := &desc.layers[i]
		l := drm.Layer{Format: drm.FourCC(layer.format)}
		for j := 0; j < int(layer.nb_planes) && j < len(layer.planes); j++ {
			plane := &layer.planes[j]
			l.Planes = append(l.Planes, drm.Plane{
				ObjectIndex: int(plane.object_index),
				Offset:      int64(plane.offset),
				Pitch:       int64(plane.pitch),
			})
		}
		result.Layers = append(result.Layers, l)
	}
	return result
}
