// hardware_device_name.go defines the HardwareDeviceName type.

package types

import (
	"strings"
)

// HardwareDeviceName is the device a hardware device context is opened on,
// for example "/dev/dri/renderD128". Empty means the libav default.
type HardwareDeviceName string

const renderNodePrefix = "/dev/dri/renderD"

// IsRenderNode returns true if the name is a DRM render node path.
func (n HardwareDeviceName) IsRenderNode() bool {
	return strings.HasPrefix(string(n), renderNodePrefix) && len(n) > len(renderNodePrefix)
}

func (n HardwareDeviceName) String() string {
	if n == "" {
		return "<default>"
	}
	return string(n)
}
