package main

import (
	"flag"
	"log"
	"os"

	"github.com/cndofx/chip8-emu/internal/chip8"
	"github.com/cndofx/chip8-emu/internal/ui"
	"github.com/pkg/profile"
)

func main() {
	romPath := flag.String("rom", "", "path to the CHIP-8 rom (or pass it as the first argument)")
	speed := flag.Int("speed", chip8.DefaultSpeed, "instructions per second")
	scale := flag.Int("scale", 10, "window scale factor")
	seed := flag.Int64("seed", 0, "seed for the RND instruction, 0 means seeded from time")
	profileMode := flag.String("profile", "", "enable profiling: cpu or mem")
	verbose := flag.Bool("v", false, "log emulator events")
	flag.Parse()

	if *romPath == "" {
		*romPath = flag.Arg(0)
	}
	if *romPath == "" {
		log.Fatalln("rom path is required")
	}

	switch *profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	default:
		log.Fatalf("unknown profile mode: %s\n", *profileMode)
	}

	rom, err := chip8.ReadROMFile(*romPath)
	if err != nil {
		log.Fatalf("couldn't read rom: %s\n", err)
	}

	opts := []chip8.Option{chip8.WithSpeed(*speed)}
	if *seed != 0 {
		opts = append(opts, chip8.WithRandom(chip8.NewRandom(*seed)))
	}
	if *verbose {
		opts = append(opts, chip8.WithLogger(log.New(os.Stderr, "chip8: ", log.LstdFlags)))
	}

	bus := chip8.NewBus(opts...)
	if err := bus.LoadROM(rom); err != nil {
		log.Fatalf("couldn't load rom: %s\n", err)
	}

	if err := ui.RunUI(ui.New(bus, rom, *scale)); err != nil {
		log.Printf("ui error: %s\n", err)
	}
}
