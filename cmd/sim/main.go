// Command sim is the cycle-stepped simulator CLI:
//
//	sim imemin dmemin diskin irq2in \
//	    dmemout regout trace hwregtrace cycles leds display7seg diskout \
//	    monitor_txt monitor_yuv
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/saleh2411/ISA-Project/internal/ioformat"
	"github.com/saleh2411/ISA-Project/internal/logx"
	"github.com/saleh2411/ISA-Project/internal/machine"
	"github.com/saleh2411/ISA-Project/internal/tui"
	"github.com/spf13/cobra"
)

func main() {
	log := logx.New(os.Stderr, slog.LevelInfo)
	var watch bool

	cmd := &cobra.Command{
		Use:   "sim imemin dmemin diskin irq2in dmemout regout trace hwregtrace cycles leds display7seg diskout monitor_txt monitor_yuv",
		Short: "Run the cycle-stepped simulator against an instruction and data image",
		Args:  cobra.ExactArgs(14),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(log, args, watch)
		},
		SilenceUsage: true,
	}
	cmd.Flags().BoolVar(&watch, "watch", false, "render a live cycle-by-cycle debugger alongside the run")

	if err := cmd.Execute(); err != nil {
		log.Error("simulation failed", "error", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger, args []string, watch bool) error {
	imemin, dmemin, diskin, irq2in := args[0], args[1], args[2], args[3]
	dmemout, regout, trace, hwregtrace := args[4], args[5], args[6], args[7]
	cyclesPath, leds, display7seg, diskout := args[8], args[9], args[10], args[11]
	monitorTxt, monitorYUV := args[12], args[13]

	imem, err := ioformat.ReadIMEM(imemin)
	if err != nil {
		return err
	}
	dmem, err := ioformat.ReadDMEM(dmemin)
	if err != nil {
		return err
	}
	disk, err := ioformat.ReadDisk(diskin)
	if err != nil {
		return err
	}
	irq2, err := ioformat.ReadIRQ2(irq2in)
	if err != nil {
		return err
	}

	m := machine.New(irq2)
	m.IMEM = imem
	m.DMEM = dmem
	m.Disk = disk

	var watcher *tui.Debugger
	if watch {
		watcher = tui.New()
		m.Watch = watcher.Feed()
		watcher.Start()
	}

	runErr := m.Run()

	if watcher != nil {
		watcher.Stop()
	}

	if runErr != nil {
		return fmt.Errorf("simulation halted: %w", runErr)
	}

	if err := ioformat.WriteDMEM(dmemout, m.DMEM); err != nil {
		return err
	}
	if err := ioformat.WriteCyclesRegOut(cyclesPath, regout, m.Cycles, m.R); err != nil {
		return err
	}
	if err := ioformat.WriteTrace(trace, m.StatusLog); err != nil {
		return err
	}
	if err := ioformat.WriteHWRegTrace(hwregtrace, leds, display7seg, m.HWLog); err != nil {
		return err
	}
	if err := ioformat.WriteDiskOut(diskout, m.Disk); err != nil {
		return err
	}
	if err := ioformat.WriteMonitorText(monitorTxt, m.Monitor); err != nil {
		return err
	}
	if err := ioformat.WriteMonitorYUV(monitorYUV, m.Monitor); err != nil {
		return err
	}

	log.Info("simulation complete", "cycles", m.Cycles)
	return nil
}
