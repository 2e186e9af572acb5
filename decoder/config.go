package decoder

import (
	"github.com/xaionaro-go/drmprime/types"
)

type Config struct {
	// CodecName forces a decoder implementation (for example "h264_v4l2m2m");
	// by default it is chosen by the codec ID of the stream.
	CodecName string `yaml:"codec_name,omitempty"`

	HardwareDeviceType types.HardwareDeviceType `yaml:"hardware_device_type"`

	// HardwareDeviceName is the device to open, for example
	// "/dev/dri/renderD128"; empty means the libav default.
	HardwareDeviceName types.HardwareDeviceName `yaml:"hardware_device_name,omitempty"`

	// Options are passed to avcodec_open2, for example
	// "num_capture_buffers" of the v4l2m2m decoders.
	Options types.DictionaryItems `yaml:"options,omitempty"`
}

func DefaultConfig() Config {
	return Config{
		HardwareDeviceType: types.HardwareDeviceTypeDRM,
	}
}
