package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/go-nes/nes6502/nes"

	"github.com/faiface/pixel/pixelgl"
	"github.com/pkg/errors"
)

// Command line flags
var (
	flagDebug    bool
	flagLogging  bool
	flagRom      string
	flagHeadless bool
	flagFrames   int
)

func main() {
	parseFlags()

	fmt.Println("Starting NES...")
	nesEmulator := nes.NewBus(flagDebug, flagLogging)

	cart, err := nes.NewCartridge(flagRom)
	if err != nil {
		log.Fatalf("%+v", errors.Wrap(err, "loading cartridge"))
	}
	nesEmulator.InsertCartridge(cart)

	nesEmulator.Cpu.Disassemble(0x0000, 0xFFFF)

	fmt.Println("Resetting NES...")
	nesEmulator.Reset()

	if flagHeadless {
		nesEmulator.RunHeadless(flagFrames)
		return
	}

	pixelgl.Run(nesEmulator.Run)
}

func parseFlags() {
	flag.BoolVar(&flagDebug, "d", false, "enable debug panel")
	flag.BoolVar(&flagLogging, "l", false, "enable logging")
	flag.StringVar(&flagRom, "rom", "./roms/DK.nes", "path to an iNES ROM file")
	flag.BoolVar(&flagHeadless, "headless", false, "run without opening a window, for environments with no GL context")
	flag.IntVar(&flagFrames, "frames", 0, "headless mode: number of frames to run before exiting (0 = run forever)")

	flag.Parse()
}
