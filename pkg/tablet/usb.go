package tablet

import (
	"context"
	"fmt"
	"time"

	"github.com/google/gousb"
)

const defaultReadTimeout = 5 * time.Second

// DeviceKind categorizes discovered input devices.
type DeviceKind string

const (
	DeviceKindUSB DeviceKind = "usb"
	DeviceKindSim DeviceKind = "simulator"
)

// DeviceInfo describes a detected digitizer.
type DeviceInfo struct {
	Kind        DeviceKind
	Description string
	VendorID    uint16
	ProductID   uint16
	Serial      string
}

// Label returns a user-friendly description for the device.
func (d DeviceInfo) Label() string {
	if d.Description != "" {
		return d.Description
	}
	if d.Kind != "" {
		return fmt.Sprintf("%s (%04X:%04X)", string(d.Kind), d.VendorID, d.ProductID)
	}
	return fmt.Sprintf("Device %04X:%04X", d.VendorID, d.ProductID)
}

type knownUSBDevice struct {
	VendorID    uint16
	Description string
}

// Digitizer vendors matched during discovery. Product IDs vary per model,
// so matching is by vendor only.
var knownDigitizerVendors = []knownUSBDevice{
	{VendorID: 0x056A, Description: "Wacom tablet"},
	{VendorID: 0x256C, Description: "Huion tablet"},
	{VendorID: 0x28BD, Description: "XP-Pen tablet"},
	{VendorID: 0x5543, Description: "UC-Logic tablet"},
}

// Discover enumerates connected digitizers matching known vendors. It
// always returns at least the simulator entry so the tools can run without
// hardware connected.
func Discover(ctx context.Context) ([]DeviceInfo, error) {
	var results []DeviceInfo
	usb := gousb.NewContext()
	defer usb.Close()

	_, err := usb.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		select {
		case <-ctx.Done():
			return false
		default:
		}

		if info, ok := classifyUSBDevice(desc); ok {
			results = append(results, info)
		}
		return false
	})
	if err != nil && err != gousb.ErrorAccess {
		return results, err
	}

	results = append(results, DeviceInfo{
		Kind:        DeviceKindSim,
		Description: "Simulator (no hardware)",
	})

	return results, nil
}

func classifyUSBDevice(desc *gousb.DeviceDesc) (DeviceInfo, bool) {
	for _, known := range knownDigitizerVendors {
		if uint16(desc.Vendor) == known.VendorID {
			return DeviceInfo{
				Kind:        DeviceKindUSB,
				Description: known.Description,
				VendorID:    known.VendorID,
				ProductID:   uint16(desc.Product),
			}, true
		}
	}
	return DeviceInfo{}, false
}

// USBTablet reads pen reports from a digitizer's interrupt IN endpoint.
type USBTablet struct {
	ctx  *gousb.Context
	dev  *gousb.Device
	intf *gousb.Interface
	epIn *gousb.InEndpoint

	reportLen int
	timeout   time.Duration

	vid uint16
	pid uint16
}

// OpenUSB opens the digitizer with the given VID/PID and claims its pen
// interface.
func OpenUSB(vid, pid uint16) (*USBTablet, error) {
	ctx := gousb.NewContext()

	dev, err := ctx.OpenDeviceWithVIDPID(gousb.ID(vid), gousb.ID(pid))
	if err != nil {
		ctx.Close()
		return nil, fmt.Errorf("tablet: USB error: %w", err)
	}
	if dev == nil {
		ctx.Close()
		return nil, fmt.Errorf("tablet: device not found (VID:0x%04X PID:0x%04X)", vid, pid)
	}

	// Detach the kernel HID driver where the platform supports it.
	if err := dev.SetAutoDetach(true); err != nil {
		// Not fatal on all platforms.
	}

	t := &USBTablet{
		ctx:       ctx,
		dev:       dev,
		reportLen: ReportLength,
		timeout:   defaultReadTimeout,
		vid:       vid,
		pid:       pid,
	}

	if err := t.claimInterface(); err != nil {
		dev.Close()
		ctx.Close()
		return nil, err
	}

	return t, nil
}

// claimInterface finds and claims the HID interface carrying pen reports.
func (t *USBTablet) claimInterface() error {
	cfg, err := t.dev.Config(1)
	if err != nil {
		return fmt.Errorf("tablet: failed to get config: %w", err)
	}

	hidIntfNum := -1
	for _, intf := range cfg.Desc.Interfaces {
		if len(intf.AltSettings) > 0 {
			alt := intf.AltSettings[0]
			if alt.Class == gousb.ClassHID {
				hidIntfNum = intf.Number
				break
			}
		}
	}
	if hidIntfNum == -1 {
		hidIntfNum = 0
	}

	intf, err := cfg.Interface(hidIntfNum, 0)
	if err != nil {
		return fmt.Errorf("tablet: failed to claim interface %d: %w", hidIntfNum, err)
	}
	t.intf = intf

	if err := t.findEndpoint(); err != nil {
		intf.Close()
		return err
	}
	return nil
}

// findEndpoint discovers the interrupt IN endpoint pen reports arrive on.
func (t *USBTablet) findEndpoint() error {
	setting := t.intf.Setting

	inAddr := 0
	for _, ep := range setting.Endpoints {
		if ep.TransferType == gousb.TransferTypeInterrupt && ep.Direction == gousb.EndpointDirectionIn {
			inAddr = ep.Number
			if ep.MaxPacketSize > t.reportLen {
				t.reportLen = ep.MaxPacketSize
			}
			break
		}
	}
	if inAddr == 0 {
		return fmt.Errorf("tablet: interrupt IN endpoint not found")
	}

	epIn, err := t.intf.InEndpoint(inAddr)
	if err != nil {
		return fmt.Errorf("tablet: failed to open IN endpoint: %w", err)
	}
	t.epIn = epIn
	return nil
}

// Info queries the device string descriptors.
func (t *USBTablet) Info() (TabletInfo, error) {
	if t.dev == nil {
		return TabletInfo{}, fmt.Errorf("tablet: device closed")
	}
	serial, _ := t.dev.SerialNumber()
	manufacturer, _ := t.dev.Manufacturer()
	product, _ := t.dev.Product()
	return TabletInfo{
		Name:         fmt.Sprintf("%s %s", manufacturer, product),
		Vendor:       manufacturer,
		Model:        product,
		SerialNumber: serial,
		MaxPressure:  axisMax,
	}, nil
}

// ReadSample blocks until the next pen report arrives, then decodes it.
func (t *USBTablet) ReadSample(ctx context.Context) (Sample, error) {
	if t.epIn == nil {
		return Sample{}, fmt.Errorf("tablet: device closed")
	}
	buf := make([]byte, t.reportLen)
	n, err := t.epIn.ReadContext(ctx, buf)
	if err != nil {
		return Sample{}, fmt.Errorf("tablet: USB read failed: %w", err)
	}
	return DecodeReport(buf[:n])
}

// Close releases USB resources.
func (t *USBTablet) Close() error {
	if t.intf != nil {
		t.intf.Close()
		t.intf = nil
	}
	t.epIn = nil
	if t.dev != nil {
		t.dev.Close()
		t.dev = nil
	}
	if t.ctx != nil {
		t.ctx.Close()
		t.ctx = nil
	}
	return nil
}
