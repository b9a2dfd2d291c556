package cmd

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/OpenPlanLab/OpenPlanCAD/pkg/tablet"
)

var (
	monitorSim   bool
	monitorCount int
	monitorVID   string
	monitorPID   string
)

var tabletCmd = &cobra.Command{
	Use:   "tablet",
	Short: "Drafting tablet utilities",
	Long:  `Discover connected pen digitizers and monitor their reports.`,
}

var tabletListCmd = &cobra.Command{
	Use:   "list",
	Short: "List connected digitizers",
	RunE:  runTabletList,
}

var tabletMonitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Print live pen samples",
	Long: `Open a digitizer and print decoded pen reports. With --sim a
synthetic pen sweep is generated instead of opening hardware.

Examples:
  opc tablet monitor --sim
  opc tablet monitor --vid 056A --pid 0374 --count 50`,
	RunE: runTabletMonitor,
}

func init() {
	rootCmd.AddCommand(tabletCmd)
	tabletCmd.AddCommand(tabletListCmd)
	tabletCmd.AddCommand(tabletMonitorCmd)

	tabletMonitorCmd.Flags().BoolVar(&monitorSim, "sim", false, "use the simulator instead of hardware")
	tabletMonitorCmd.Flags().IntVar(&monitorCount, "count", 10, "number of samples to read")
	tabletMonitorCmd.Flags().StringVar(&monitorVID, "vid", "056A", "USB vendor ID (hex)")
	tabletMonitorCmd.Flags().StringVar(&monitorPID, "pid", "", "USB product ID (hex)")
}

func runTabletList(cmd *cobra.Command, args []string) error {
	devices, err := tablet.Discover(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("Found %d device(s):\n", len(devices))
	for i, d := range devices {
		fmt.Printf("  [%d] %s\n", i, d.Label())
	}
	return nil
}

func runTabletMonitor(cmd *cobra.Command, args []string) error {
	adapter, err := openMonitorAdapter()
	if err != nil {
		return err
	}
	defer adapter.Close()

	info, err := adapter.Info()
	if err != nil {
		return err
	}
	fmt.Printf("Device: %s\n", info.Name)
	if verbose {
		fmt.Printf("  vendor: %s  model: %s  serial: %s\n", info.Vendor, info.Model, info.SerialNumber)
	}

	ctx := context.Background()
	for i := 0; i < monitorCount; i++ {
		s, err := adapter.ReadSample(ctx)
		if err != nil {
			return err
		}
		marker := " "
		if s.Tip {
			marker = "*"
		}
		fmt.Printf("[%s] x=%.3f y=%.3f pressure=%.2f\n", marker, s.X, s.Y, s.Pressure)
	}
	return nil
}

// openMonitorAdapter picks the simulator or a USB digitizer based on flags.
func openMonitorAdapter() (tablet.Adapter, error) {
	if monitorSim {
		sim := tablet.NewSimTablet(tablet.TabletInfo{
			Name:        "Simulated digitizer",
			MaxPressure: 0xFFFF,
		})
		start := time.Now()
		sim.OnRead = func() (tablet.Sample, error) {
			time.Sleep(50 * time.Millisecond)
			t := time.Since(start).Seconds()
			return tablet.Sample{
				X:        0.5 + 0.25*math.Cos(t),
				Y:        0.5 + 0.25*math.Sin(t),
				Pressure: 0.5 + 0.5*math.Sin(3*t),
				Tip:      true,
			}, nil
		}
		return sim, nil
	}

	if monitorPID == "" {
		return nil, fmt.Errorf("--pid is required without --sim (try 'opc tablet list')")
	}
	vid, err := strconv.ParseUint(monitorVID, 16, 16)
	if err != nil {
		return nil, fmt.Errorf("bad --vid %q: %w", monitorVID, err)
	}
	pid, err := strconv.ParseUint(monitorPID, 16, 16)
	if err != nil {
		return nil, fmt.Errorf("bad --pid %q: %w", monitorPID, err)
	}
	return tablet.OpenUSB(uint16(vid), uint16(pid))
}
