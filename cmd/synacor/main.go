// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/ezrec/synacor/config"
	"github.com/ezrec/synacor/cpu"
	"github.com/ezrec/synacor/emulator"
)

func main() {
	var configFile string
	var source string
	var input string
	var output string
	var snapshot string
	var restore string
	var maxSteps int
	var disassemble bool
	var verbose bool

	flag.StringVar(&configFile, "c", "", "synacor.toml configuration file")
	flag.StringVar(&source, "a", "", "Assembler source to load instead of an image")
	flag.StringVar(&input, "i", "", "Input script, replayed before stdin")
	flag.StringVar(&output, "o", "", "Console output (default stdout)")
	flag.StringVar(&snapshot, "s", "", "Save a snapshot when the run stops")
	flag.StringVar(&restore, "r", "", "Resume from a snapshot")
	flag.IntVar(&maxSteps, "n", 0, "Maximum instructions to execute")
	flag.BoolVar(&disassemble, "d", false, "Disassemble the loaded program, do not execute")
	flag.BoolVar(&verbose, "v", false, "Verbose mode (trace every instruction)")

	flag.Parse()

	cfg := config.Default()
	if len(configFile) != 0 {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			log.Fatalf("%v: %v", configFile, err)
		}
	}

	if flag.NArg() > 1 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args()[1:])
	}
	if flag.NArg() == 1 {
		cfg.Image = flag.Arg(0)
	}
	if len(source) != 0 {
		cfg.Source = source
	}
	if len(input) != 0 {
		cfg.Input = append(cfg.Input, input)
	}
	if len(output) != 0 {
		cfg.Output = output
	}
	if len(snapshot) != 0 {
		cfg.Snapshot = snapshot
	}
	if len(restore) != 0 {
		cfg.Restore = restore
	}
	if maxSteps != 0 {
		cfg.MaxSteps = maxSteps
	}
	if verbose {
		cfg.SetTrace()
	}

	var logFile *string
	if len(cfg.LogFile) != 0 {
		logFile = &cfg.LogFile
	}
	commonlog.Configure(cfg.Verbosity, logFile)

	emu := emulator.NewEmulator()
	emu.Logger = commonlog.GetLogger("synacor")
	if cfg.Trace() {
		emu.Cpu.Log = commonlog.GetLogger("synacor.cpu")
	}

	var count int
	var err error
	switch {
	case len(cfg.Restore) != 0:
		inf, err := os.Open(cfg.Restore)
		if err != nil {
			log.Fatalf("%v: %v", cfg.Restore, err)
		}
		err = emu.Resume(inf)
		inf.Close()
		if err != nil {
			log.Fatalf("%v: %v", cfg.Restore, err)
		}
		count = len(emu.Snapshot().Memory)
	case len(cfg.Source) != 0:
		count, err = emu.AssembleFile(cfg.Source)
		if err != nil {
			log.Fatalf("%v: %v", cfg.Source, err)
		}
	case len(cfg.Image) != 0:
		count, err = emu.LoadFile(cfg.Image)
		if err != nil {
			log.Fatalf("%v: %v", cfg.Image, err)
		}
	default:
		log.Fatalf("%v: no program image", os.Args[0])
	}

	if disassemble {
		for addr, line := range cpu.Disassemble(emu.Cpu.Memory, 0, count) {
			fmt.Printf("%04x: %v\n", addr, line)
		}
		return
	}

	for _, script := range cfg.Input {
		inf, err := os.Open(script)
		if err != nil {
			log.Fatalf("%v: %v", script, err)
		}
		err = emu.Script.LoadScript(inf)
		inf.Close()
		if err != nil {
			log.Fatalf("%v: %v", script, err)
		}
	}

	emu.Tape.Input = os.Stdin
	if cfg.Output == "-" {
		emu.Tape.Output = os.Stdout
	} else {
		ouf, err := os.Create(cfg.Output)
		if err != nil {
			log.Fatalf("%v: %v", cfg.Output, err)
		}
		defer ouf.Close()
		emu.Tape.Output = ouf
	}
	if cfg.Echo {
		emu.Script.Echo = emu.Tape.Output
	}

	err = emu.Run(cfg.MaxSteps)

	if len(cfg.Snapshot) != 0 {
		ouf, serr := os.Create(cfg.Snapshot)
		if serr != nil {
			log.Fatalf("%v: %v", cfg.Snapshot, serr)
		}
		serr = emu.Save(ouf)
		ouf.Close()
		if serr != nil {
			log.Fatalf("%v: %v", cfg.Snapshot, serr)
		}
	}

	if errors.Is(err, emulator.ErrStepLimit) {
		emu.Logger.Noticef("stopped after %d instructions at ip %04x", emu.Cpu.Ticks, emu.Cpu.Ip)
		return
	}
	if err != nil {
		log.Fatal(err)
	}
}
