package main

import (
	"github.com/spf13/cobra"

	"mptrim/internal/hwaccel"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var flags trimFlags

	rootCmd := &cobra.Command{
		Use:           "mptrim [flags] <file>",
		Short:         "Trim near-duplicate frames from a video clip",
		Long: "mptrim runs ffmpeg's mpdecimate filter to find spans of near-duplicate\n" +
			"frames, then re-encodes the clip with those spans removed and audio kept\n" +
			"in sync.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runTrim(cmd, configFlag, flags, args[0])
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	fl := rootCmd.Flags()
	fl.BoolVar(&flags.keep, "keep", false, "Keep the original file")
	fl.IntVar(&flags.skip, "skip", 2, "Skip re-encoding when fewer than N keep spans are found")
	fl.StringVar(&flags.vaapi, "vaapi", "", "Use a VA-API device for hardware accelerated transcoding")
	fl.Lookup("vaapi").NoOptDefVal = hwaccel.DeviceAuto
	fl.StringVar(&flags.vaapiDecimate, "vaapi-decimate", "", "Use a VA-API device for the analysis pass decode")
	fl.Lookup("vaapi-decimate").NoOptDefVal = hwaccel.DeviceAuto
	fl.BoolVar(&flags.videoToolbox, "videotoolbox", false, "Use Apple Video Toolbox for hardware accelerated transcoding")
	fl.BoolVar(&flags.videoToolboxDecimate, "videotoolbox-decimate", false, "Use Apple Video Toolbox for the analysis pass decode")
	fl.BoolVar(&flags.debug, "debug", false, "Verbose ffmpeg logging, retain all artifacts, delete nothing")
	fl.BoolVar(&flags.outputToCwd, "output-to-cwd", false, "Write the output to the current directory instead of next to the input")
	fl.StringVar(&flags.vfparams, "vfparams", "", "Override the mpdecimate filter parameter string")

	rootCmd.AddCommand(newHistoryCommand(&configFlag))
	rootCmd.AddCommand(newConfigCommand(&configFlag))
	rootCmd.AddCommand(newDepsCommand(&configFlag))

	return rootCmd
}
