package hwaccel

import (
	"errors"
	"fmt"
	"strconv"

	"mptrim/internal/config"
)

// Accel identifies a hardware acceleration backend.
type Accel int

const (
	AccelNone Accel = iota
	AccelVAAPI
	AccelVideoToolbox
)

func (a Accel) String() string {
	switch a {
	case AccelVAAPI:
		return "vaapi"
	case AccelVideoToolbox:
		return "videotoolbox"
	default:
		return "software"
	}
}

// Options carries the raw acceleration flags. For the string flags an empty
// value means unset and DeviceAuto means the flag was passed bare.
type Options struct {
	VAAPI                string
	VAAPIDecimate        string
	VideoToolbox         bool
	VideoToolboxDecimate bool
}

// DeviceAuto marks a VA-API flag passed without an explicit device path.
const DeviceAuto = "auto"

// Selection is the validated acceleration plan for both passes.
type Selection struct {
	Transcode       Accel
	Decimate        Accel
	TranscodeDevice string
	DecimateDevice  string
}

// Resolve validates the flag combination and resolves device paths. All
// rules fail here, before any subprocess starts.
func Resolve(opts Options) (Selection, error) {
	usesVAAPI := opts.VAAPI != "" || opts.VAAPIDecimate != ""
	usesVT := opts.VideoToolbox || opts.VideoToolboxDecimate
	if usesVAAPI && usesVT {
		return Selection{}, errors.New("VA-API and Video Toolbox flags are mutually exclusive")
	}

	var sel Selection

	switch {
	case opts.VideoToolbox:
		sel.Transcode = AccelVideoToolbox
	case opts.VAAPI != "":
		device := opts.VAAPI
		if device == DeviceAuto {
			resolved, err := defaultRenderDevice()
			if err != nil {
				return Selection{}, fmt.Errorf("--vaapi given without a device and none could be resolved: %w", err)
			}
			device = resolved
		}
		sel.Transcode = AccelVAAPI
		sel.TranscodeDevice = device
	}

	switch {
	case opts.VideoToolboxDecimate:
		sel.Decimate = AccelVideoToolbox
	case opts.VAAPIDecimate != "":
		device := opts.VAAPIDecimate
		if device == DeviceAuto {
			if sel.Transcode != AccelVAAPI || sel.TranscodeDevice == "" {
				return Selection{}, errors.New("--vaapi-decimate set to use the --vaapi device, but --vaapi not set")
			}
			device = sel.TranscodeDevice
		}
		sel.Decimate = AccelVAAPI
		sel.DecimateDevice = device
	}

	return sel, nil
}

// DecimateArgs returns the input-side hwaccel arguments for the analysis
// pass.
func (s Selection) DecimateArgs() []string {
	switch s.Decimate {
	case AccelVideoToolbox:
		return []string{"-hwaccel", "videotoolbox"}
	case AccelVAAPI:
		return []string{"-hwaccel", "vaapi", "-hwaccel_device", s.DecimateDevice}
	default:
		return nil
	}
}

// TranscodeArgs returns the input-side hwaccel arguments for the
// cut-and-encode pass. Video Toolbox encoders accept software frames, so
// only VA-API needs hardware surfaces on the input side.
func (s Selection) TranscodeArgs() []string {
	if s.Transcode != AccelVAAPI {
		return nil
	}
	return []string{"-hwaccel", "vaapi", "-hwaccel_device", s.TranscodeDevice, "-hwaccel_output_format", "vaapi"}
}

// EncoderArgs returns the video codec selection and quality arguments,
// starting with the codec name for use after -c:v.
func (s Selection) EncoderArgs(enc config.Encode) []string {
	switch s.Transcode {
	case AccelVideoToolbox:
		return []string{"hevc_videotoolbox", "-q:v", strconv.Itoa(enc.VideoToolboxQScale)}
	case AccelVAAPI:
		return []string{"hevc_vaapi", "-qp", strconv.Itoa(enc.VAAPIQP)}
	default:
		return []string{enc.SoftwareCodec, "-preset", enc.SoftwarePreset, "-crf", strconv.Itoa(enc.SoftwareCRF)}
	}
}

// Label summarizes the selection for logs and the run ledger.
func (s Selection) Label() string {
	label := s.Transcode.String()
	if s.Decimate != AccelNone {
		label += "+" + s.Decimate.String() + "-decimate"
	}
	return label
}
