// Command asm is the two-pass assembler CLI: asm <input.asm> <imemout> <dmemout>.
package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"

	"github.com/saleh2411/ISA-Project/internal/assemble"
	"github.com/saleh2411/ISA-Project/internal/ioformat"
	"github.com/saleh2411/ISA-Project/internal/logx"
	"github.com/spf13/cobra"
)

func main() {
	log := logx.New(os.Stderr, slog.LevelInfo)

	cmd := &cobra.Command{
		Use:   "asm <input.asm> <imemout.txt> <dmemout.txt>",
		Short: "Assemble a program into an instruction image and a data image",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(log, args[0], args[1], args[2])
		},
		SilenceUsage: true,
	}

	if err := cmd.Execute(); err != nil {
		log.Error("assembly failed", "error", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger, inPath, imemOutPath, dmemOutPath string) error {
	source, err := readLines(inPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", inPath, err)
	}

	res, err := assemble.Assemble(source)
	if err != nil {
		return err
	}
	for _, w := range res.Warnings {
		log.Warn(w)
	}

	if err := ioformat.WriteIMEM(imemOutPath, res.IMEM); err != nil {
		return err
	}
	if err := ioformat.WriteDMEMFull(dmemOutPath, res.DMEM); err != nil {
		return err
	}

	log.Info("assembled", "input", inPath, "imemout", imemOutPath, "dmemout", dmemOutPath)
	return nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}
