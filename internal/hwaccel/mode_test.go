package hwaccel

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"mptrim/internal/config"
)

func stubRenderDevice(t *testing.T, device string, err error) {
	t.Helper()
	restore := defaultRenderDevice
	defaultRenderDevice = func() (string, error) { return device, err }
	t.Cleanup(func() { defaultRenderDevice = restore })
}

func TestResolveSoftwareDefault(t *testing.T) {
	sel, err := Resolve(Options{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if sel.Transcode != AccelNone || sel.Decimate != AccelNone {
		t.Fatalf("unexpected selection: %+v", sel)
	}
	if sel.DecimateArgs() != nil || sel.TranscodeArgs() != nil {
		t.Fatalf("software mode must add no hwaccel args: %+v", sel)
	}
	if sel.Label() != "software" {
		t.Fatalf("unexpected label: %s", sel.Label())
	}
}

func TestResolveVAAPIExplicitDevice(t *testing.T) {
	sel, err := Resolve(Options{VAAPI: "/dev/dri/renderD129"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := []string{"-hwaccel", "vaapi", "-hwaccel_device", "/dev/dri/renderD129", "-hwaccel_output_format", "vaapi"}
	if !reflect.DeepEqual(sel.TranscodeArgs(), want) {
		t.Fatalf("transcode args: %v", sel.TranscodeArgs())
	}
}

func TestResolveVAAPIAutoDevice(t *testing.T) {
	stubRenderDevice(t, "/dev/dri/renderD128", nil)
	sel, err := Resolve(Options{VAAPI: DeviceAuto})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if sel.TranscodeDevice != "/dev/dri/renderD128" {
		t.Fatalf("device not resolved: %+v", sel)
	}
}

func TestResolveVAAPIAutoDeviceUnavailable(t *testing.T) {
	stubRenderDevice(t, "", errors.New("no render nodes"))
	if _, err := Resolve(Options{VAAPI: DeviceAuto}); err == nil {
		t.Fatal("expected error when no render node exists")
	}
}

func TestResolveDecimateBorrowsTranscodeDevice(t *testing.T) {
	sel, err := Resolve(Options{VAAPI: "/dev/dri/renderD130", VAAPIDecimate: DeviceAuto})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := []string{"-hwaccel", "vaapi", "-hwaccel_device", "/dev/dri/renderD130"}
	if !reflect.DeepEqual(sel.DecimateArgs(), want) {
		t.Fatalf("decimate args: %v", sel.DecimateArgs())
	}
}

func TestResolveDecimateWithoutAnyDevice(t *testing.T) {
	if _, err := Resolve(Options{VAAPIDecimate: DeviceAuto}); err == nil {
		t.Fatal("expected error for bare --vaapi-decimate without --vaapi")
	}
}

func TestResolveDecimateOwnDevice(t *testing.T) {
	sel, err := Resolve(Options{VAAPIDecimate: "/dev/dri/renderD131"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if sel.DecimateDevice != "/dev/dri/renderD131" || sel.Transcode != AccelNone {
		t.Fatalf("unexpected selection: %+v", sel)
	}
}

func TestResolveMutuallyExclusiveBackends(t *testing.T) {
	cases := []Options{
		{VAAPI: "/dev/dri/renderD128", VideoToolbox: true},
		{VAAPIDecimate: "/dev/dri/renderD128", VideoToolboxDecimate: true},
		{VAAPI: DeviceAuto, VideoToolboxDecimate: true},
	}
	for _, opts := range cases {
		if _, err := Resolve(opts); err == nil {
			t.Fatalf("expected mutual-exclusion error for %+v", opts)
		}
	}
}

func TestVideoToolboxArgs(t *testing.T) {
	sel, err := Resolve(Options{VideoToolbox: true, VideoToolboxDecimate: true})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !reflect.DeepEqual(sel.DecimateArgs(), []string{"-hwaccel", "videotoolbox"}) {
		t.Fatalf("decimate args: %v", sel.DecimateArgs())
	}
	if sel.TranscodeArgs() != nil {
		t.Fatalf("videotoolbox encode should not need input hwaccel args: %v", sel.TranscodeArgs())
	}
	if sel.Label() != "videotoolbox+videotoolbox-decimate" {
		t.Fatalf("unexpected label: %s", sel.Label())
	}
}

func TestEncoderArgs(t *testing.T) {
	enc := config.Encode{
		SoftwareCodec:      "libx265",
		SoftwarePreset:     "fast",
		SoftwareCRF:        30,
		VAAPIQP:            24,
		VideoToolboxQScale: 65,
	}

	sw := Selection{}
	if !reflect.DeepEqual(sw.EncoderArgs(enc), []string{"libx265", "-preset", "fast", "-crf", "30"}) {
		t.Fatalf("software encoder args: %v", sw.EncoderArgs(enc))
	}
	va := Selection{Transcode: AccelVAAPI, TranscodeDevice: "/dev/dri/renderD128"}
	if !reflect.DeepEqual(va.EncoderArgs(enc), []string{"hevc_vaapi", "-qp", "24"}) {
		t.Fatalf("vaapi encoder args: %v", va.EncoderArgs(enc))
	}
	vt := Selection{Transcode: AccelVideoToolbox}
	if !reflect.DeepEqual(vt.EncoderArgs(enc), []string{"hevc_videotoolbox", "-q:v", "65"}) {
		t.Fatalf("videotoolbox encoder args: %v", vt.EncoderArgs(enc))
	}
}

func TestResolveRenderDeviceScansDir(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"card0", "renderD129", "renderD128"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	restore := renderDeviceDir
	renderDeviceDir = dir
	t.Cleanup(func() { renderDeviceDir = restore })

	device, err := resolveRenderDevice()
	if err != nil {
		t.Fatalf("resolveRenderDevice: %v", err)
	}
	if device != filepath.Join(dir, "renderD128") {
		t.Fatalf("expected lowest render node, got %s", device)
	}
}

func TestResolveRenderDeviceEmptyDir(t *testing.T) {
	restore := renderDeviceDir
	renderDeviceDir = t.TempDir()
	t.Cleanup(func() { renderDeviceDir = restore })

	if _, err := resolveRenderDevice(); err == nil {
		t.Fatal("expected error for directory without render nodes")
	}
}
