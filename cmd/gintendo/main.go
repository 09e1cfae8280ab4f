// Command gintendo runs, previews, or inspects an iNES ROM, exposing
// run/debug/preview/info subcommands.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/bdwalton/nescore/cartridge"
	"github.com/bdwalton/nescore/console"
	"github.com/bdwalton/nescore/debug"
	"github.com/bdwalton/nescore/preview"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		log.Fatalf("gintendo: %v", err)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "gintendo",
		Short: "An NES core: run, preview, or inspect an iNES ROM",
	}
	root.AddCommand(runCmd(), debugCmd(), previewCmd(), infoCmd())
	return root
}

func loadCartridge(path string) (*cartridge.Cartridge, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening ROM: %w", err)
	}
	defer f.Close()
	return cartridge.Load(f)
}

func runCmd() *cobra.Command {
	var steps int
	cmd := &cobra.Command{
		Use:   "run <rom>",
		Short: "Reset and step the console for a fixed number of instructions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cart, err := loadCartridge(args[0])
			if err != nil {
				return err
			}
			con, err := console.New(cart)
			if err != nil {
				return err
			}
			if err := con.Reset(); err != nil {
				return err
			}
			if err := con.Run(steps); err != nil {
				return fmt.Errorf("stopped after an error: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&steps, "steps", 1000, "number of CPU instructions to execute, 0 runs until error")
	return cmd
}

func debugCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "debug <rom>",
		Short: "Open the interactive stepper/breakpoint TUI",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cart, err := loadCartridge(args[0])
			if err != nil {
				return err
			}
			con, err := console.New(cart)
			if err != nil {
				return err
			}
			if err := con.Reset(); err != nil {
				return err
			}
			_, err = debug.New(con).Run()
			return err
		},
	}
}

func previewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preview <rom>",
		Short: "Open a window showing the cartridge's CHR pattern tables",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cart, err := loadCartridge(args[0])
			if err != nil {
				return err
			}
			con, err := console.New(cart)
			if err != nil {
				return err
			}
			v, err := preview.New(con.Mapper())
			if err != nil {
				return err
			}
			b := v.Bounds()
			ebiten.SetWindowSize(b.Dx()*3, b.Dy()*3)
			ebiten.SetWindowTitle("gintendo: CHR preview")
			return ebiten.RunGame(v)
		},
	}
}

func infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <rom>",
		Short: "Print the iNES header fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cart, err := loadCartridge(args[0])
			if err != nil {
				return err
			}
			fmt.Println(cart.String())
			return nil
		},
	}
}
