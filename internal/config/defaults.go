package config

const (
	defaultLogDir             = "~/.local/share/mptrim/logs"
	defaultHistoryPath        = "~/.local/share/mptrim/history.db"
	defaultFFmpegBinary       = "ffmpeg"
	defaultFFprobeBinary      = "ffprobe"
	defaultDecimateFilter     = "mpdecimate=lo=64*4:hi=64*10"
	defaultFrameDuration      = 0.04
	defaultMergeTolerance     = 0.01
	defaultSoftwareCodec      = "libx265"
	defaultSoftwarePreset     = "fast"
	defaultSoftwareCRF        = 30
	defaultVAAPIQP            = 24
	defaultVideoToolboxQScale = 65
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Engine: Engine{
			FFmpegBinary:  defaultFFmpegBinary,
			FFprobeBinary: defaultFFprobeBinary,
		},
		Decimate: Decimate{
			Filter:         defaultDecimateFilter,
			FrameDuration:  defaultFrameDuration,
			MergeTolerance: defaultMergeTolerance,
		},
		Encode: Encode{
			SoftwareCodec:      defaultSoftwareCodec,
			SoftwarePreset:     defaultSoftwarePreset,
			SoftwareCRF:        defaultSoftwareCRF,
			VAAPIQP:            defaultVAAPIQP,
			VideoToolboxQScale: defaultVideoToolboxQScale,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		History: History{
			Enabled: true,
			Path:    defaultHistoryPath,
		},
	}
}
