// Command goboy runs a DMG cartridge to completion (or until interrupted),
// optionally serving telemetry, playing audio through SDL2, and showing a
// debug inspector window.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/nkato/goboy/internal/console"
	"github.com/nkato/goboy/internal/cpu"
	"github.com/nkato/goboy/internal/framedump"
	"github.com/nkato/goboy/internal/hostaudio"
	"github.com/nkato/goboy/internal/inspector"
	"github.com/nkato/goboy/internal/logging"
	"github.com/nkato/goboy/internal/profiling"
	"github.com/nkato/goboy/internal/romload"
	"github.com/nkato/goboy/internal/telemetry"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		boot          = flag.String("boot", "", "unused; accepted for CLI compatibility with boot-ROM-driven builds")
		model         = flag.String("model", "dmg", "hardware model to emulate (only dmg is implemented)")
		telemetryAddr = flag.String("telemetry", "", "address to serve websocket telemetry on, e.g. :8080 (disabled if empty)")
		profilePath   = flag.String("profile", "", "path to write a frame-time histogram PNG to on exit")
		dumpFramePath = flag.String("dump-frame", "", "path to write a PNG of the final frame to on exit")
		jsonLogs      = flag.Bool("json-logs", false, "emit structured JSON logs instead of text")
		headless      = flag.Bool("headless", false, "run without audio or the inspector window; suppresses the file-picker fallback")
		logLevel      = flag.String("log-level", "info", "log level: debug, info, warn, error")
	)
	flag.Parse()

	log := logging.New(*jsonLogs, *logLevel)
	_ = boot // boot-ROM stepping is out of scope; the flag exists so scripts invoking older builds don't break

	if *model != "dmg" {
		log.WithField("model", *model).Warn("goboy: only the dmg model is implemented, ignoring")
	}

	romPath, err := romload.Resolve(flag.Arg(0), *headless)
	if err != nil {
		log.WithError(err).Error("goboy: no rom to load")
		return 1
	}

	rom, err := romload.Load(romPath)
	if err != nil {
		log.WithError(err).Error("goboy: failed to load rom")
		return 1
	}

	serialLog := &inspector.SerialLog{}

	c := console.New(console.WithLogger(log), console.WithSerialSink(serialLog))
	if err := c.LoadROM(rom); err != nil {
		log.WithError(err).Error("goboy: failed to install cartridge")
		return 1
	}

	var recorder *profiling.Recorder
	if *profilePath != "" {
		recorder = profiling.NewRecorder()
	}

	var telemetrySrv *telemetry.Server
	if *telemetryAddr != "" {
		telemetrySrv = telemetry.NewServer(log)
		go func() {
			if err := telemetrySrv.ListenAndServe(*telemetryAddr); err != nil {
				log.WithError(err).Warn("goboy: telemetry server stopped")
			}
		}()
	}

	var audioSink *hostaudio.Sink
	var inspectorWin *inspector.Window
	var fyneApp fyne.App
	if !*headless {
		if sink, err := hostaudio.Open(44100, c.APU); err != nil {
			log.WithError(err).Warn("goboy: audio device unavailable, continuing silently")
		} else {
			audioSink = sink
		}

		fyneApp = app.New()
		inspectorWin = inspector.New(fyneApp, serialLog)
		inspectorWin.Show()
	}

	c.Scheduler.OnFrame(func() {
		if recorder != nil {
			recorder.Tick()
		}
		if telemetrySrv != nil {
			telemetrySrv.Publish(c.Snapshot())
		}
		if audioSink != nil {
			if err := audioSink.Pump(); err != nil {
				log.WithError(err).Debug("goboy: audio pump failed")
			}
		}
		if inspectorWin != nil {
			inspectorWin.Update(c.Snapshot())
		}
	})

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)

	var fault *cpu.IllegalOpcodeError
	go func() {
		<-sig
		c.Stop()
	}()

	if fyneApp != nil {
		// the scheduler must run off the main goroutine: fyne's event
		// loop owns it once a window is showing.
		go func() { fault = c.Run(); fyneApp.Quit() }()
		fyneApp.Run()
	} else {
		fault = c.Run()
	}

	if audioSink != nil {
		audioSink.Close()
	}

	if *dumpFramePath != "" {
		if err := framedump.Save(c.Video.Frame(), *dumpFramePath); err != nil {
			log.WithError(err).Warn("goboy: failed to dump frame")
		}
	}
	if recorder != nil {
		if err := recorder.SavePNG(*profilePath); err != nil {
			log.WithError(err).Warn("goboy: failed to save frame-time histogram")
		}
	}

	if fault != nil {
		fmt.Fprintf(os.Stderr, "goboy: illegal opcode 0x%02X at 0x%04X\n", fault.Opcode, fault.PC)
		return 2
	}
	return 0
}
