// hardware_device_type.go defines the HardwareDeviceType enum and its methods.

// Package types provides common types and errors used throughout the drmprime project.
package types

import (
	"fmt"
	"strings"

	"github.com/asticode/go-astiav"
)

type HardwareDeviceType int

const (
	// the values match libav's enum AVHWDeviceType:
	HardwareDeviceTypeNone   = HardwareDeviceType(0x0)
	HardwareDeviceTypeVAAPI  = HardwareDeviceType(0x3)
	HardwareDeviceTypeDRM    = HardwareDeviceType(0x8)
	HardwareDeviceTypeVulkan = HardwareDeviceType(0xb)
)

func (t HardwareDeviceType) String() string {
	switch t {
	case HardwareDeviceTypeNone:
		return "none"
	case HardwareDeviceTypeVAAPI:
		return "vaapi"
	case HardwareDeviceTypeDRM:
		return "drm"
	case HardwareDeviceTypeVulkan:
		return "vulkan"
	}
	return fmt.Sprintf("unknown_%X", int64(t))
}

// ProducesDRMPrime returns true if frames decoded on a device of this type
// may be exported as AV_PIX_FMT_DRM_PRIME without a copy.
func (t HardwareDeviceType) ProducesDRMPrime() bool {
	switch t {
	case HardwareDeviceTypeDRM, HardwareDeviceTypeVAAPI:
		return true
	}
	return false
}

func (t HardwareDeviceType) Astiav() astiav.HardwareDeviceType {
	return astiav.HardwareDeviceType(t)
}

func HardwareDeviceTypeFromString(s string) (HardwareDeviceType, error) {
	s = strings.Trim(strings.ToLower(s), " \"\n\r\t")
	for _, candidate := range []HardwareDeviceType{
		HardwareDeviceTypeNone,
		HardwareDeviceTypeVAAPI,
		HardwareDeviceTypeDRM,
		HardwareDeviceTypeVulkan,
	} {
		if candidate.String() == s {
			return candidate, nil
		}
	}
	return HardwareDeviceTypeNone, fmt.Errorf("unknown hardware device type: '%s'", s)
}

func (t HardwareDeviceType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *HardwareDeviceType) UnmarshalText(b []byte) error {
	v, err := HardwareDeviceTypeFromString(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Set implements pflag.Value.
func (t *HardwareDeviceType) Set(s string) error {
	return t.UnmarshalText([]byte(s))
}

// Type implements pflag.Value.
func (t *HardwareDeviceType) Type() string {
	return "hardware-device-type"
}
