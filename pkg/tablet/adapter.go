package tablet

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
)

// TabletInfo describes capabilities reported by a digitizer implementation.
type TabletInfo struct {
	Name         string
	Vendor       string
	Model        string
	SerialNumber string
	WidthMM      float64
	HeightMM     float64
	MaxPressure  int
	Notes        string
}

// Sample is one pen report. X and Y are normalized to the active area
// (0..1, origin top-left) and Pressure to the device range.
type Sample struct {
	X        float64
	Y        float64
	Pressure float64
	Tip      bool
	Barrel   bool
}

// ScreenPosition scales the normalized coordinates onto a surface of the
// given pixel size.
func (s Sample) ScreenPosition(width, height float64) (x, y float64) {
	return s.X * width, s.Y * height
}

// Adapter abstracts a physical or virtual drafting tablet.
type Adapter interface {
	Info() (TabletInfo, error)
	ReadSample(ctx context.Context) (Sample, error)
	Close() error
}

// ErrNotImplemented lets backends signal that a requested capability is not
// yet available without relying on fmt.Errorf each time.
var ErrNotImplemented = errors.New("tablet: not implemented")

// ErrNoSample reports that no report is currently queued.
var ErrNoSample = errors.New("tablet: no queued sample")

// Pen report layout shared by the supported digitizers: report id, button
// bitmap, then three little-endian 16-bit axes.
const (
	ReportLength = 8
	reportID     = 0x02

	buttonTip    = 0x01
	buttonBarrel = 0x02

	axisMax = 0xFFFF
)

// DecodeReport parses one fixed-length pen report into a normalized Sample.
func DecodeReport(buf []byte) (Sample, error) {
	if len(buf) < ReportLength {
		return Sample{}, fmt.Errorf("tablet: report too short, need %d bytes got %d", ReportLength, len(buf))
	}
	if buf[0] != reportID {
		return Sample{}, fmt.Errorf("tablet: unexpected report id 0x%02X", buf[0])
	}
	x := binary.LittleEndian.Uint16(buf[2:4])
	y := binary.LittleEndian.Uint16(buf[4:6])
	p := binary.LittleEndian.Uint16(buf[6:8])
	return Sample{
		X:        float64(x) / axisMax,
		Y:        float64(y) / axisMax,
		Pressure: float64(p) / axisMax,
		Tip:      buf[1]&buttonTip != 0,
		Barrel:   buf[1]&buttonBarrel != 0,
	}, nil
}
