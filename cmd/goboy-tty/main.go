// Command goboy-tty renders the Game Boy display inside a terminal
// using block characters, grounded on valerio-go-jeebie's
// jeebie/render/terminal.go. It is a reference display/input sink, not
// part of the emulator core.
package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/urfave/cli"

	"github.com/aldermoon/dmgboy/internal/gameboy"
	"github.com/aldermoon/dmgboy/internal/joypad"
	"github.com/aldermoon/dmgboy/internal/ppu"
	"github.com/aldermoon/dmgboy/pkg/loader"
	"github.com/aldermoon/dmgboy/pkg/log"
)

var shadeChars = []rune{'█', '▓', '▒', '░'}

const frameTime = time.Second / 60

func main() {
	app := cli.NewApp()
	app.Name = "goboy-tty"
	app.Usage = "goboy-tty [options] <ROM file>"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "rom", Usage: "Path to the ROM file"},
		cli.BoolFlag{Name: "verbose", Usage: "Log unmapped IO access and other core diagnostics"},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "goboy-tty:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	romPath := c.String("rom")
	if romPath == "" {
		if c.NArg() == 0 {
			cli.ShowAppHelp(c)
			return errors.New("no ROM path provided")
		}
		romPath = c.Args().Get(0)
	}

	rom, err := loader.Load(romPath)
	if err != nil {
		return err
	}

	var opts []gameboy.Option
	if c.Bool("verbose") {
		opts = append(opts, gameboy.WithLogger(log.New()))
	}

	gb, err := gameboy.New(rom, opts...)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("goboy-tty: initializing terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("goboy-tty: initializing terminal: %w", err)
	}
	defer screen.Fini()

	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	screen.Clear()

	t := &terminalDriver{gb: gb, screen: screen, running: true}
	go t.handleInput()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()

	for t.running {
		select {
		case <-ticker.C:
			frame := gb.RunFrame()
			t.render(frame)
			screen.Show()
		case <-signals:
			return nil
		}
	}
	return nil
}

type terminalDriver struct {
	gb      *gameboy.GameBoy
	screen  tcell.Screen
	running bool
}

func (t *terminalDriver) render(frame [ppu.ScreenHeight][ppu.ScreenWidth]uint8) {
	t.screen.Clear()
	for y := 0; y < ppu.ScreenHeight; y++ {
		for x := 0; x < ppu.ScreenWidth; x++ {
			shade := frame[y][x]
			if shade > 3 {
				shade = 3
			}
			style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
			t.screen.SetContent(x, y, shadeChars[shade], nil, style)
		}
	}
}

func (t *terminalDriver) handleInput() {
	for t.running {
		ev := t.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if button, ok := keyButton(ev.Key(), ev.Rune()); ok {
				t.gb.PressButton(button)
			}
			if ev.Key() == tcell.KeyEscape {
				t.running = false
			}
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}
}

func keyButton(key tcell.Key, r rune) (joypad.Button, bool) {
	switch {
	case key == tcell.KeyEnter:
		return joypad.ButtonStart, true
	case key == tcell.KeyUp:
		return joypad.ButtonUp, true
	case key == tcell.KeyDown:
		return joypad.ButtonDown, true
	case key == tcell.KeyLeft:
		return joypad.ButtonLeft, true
	case key == tcell.KeyRight:
		return joypad.ButtonRight, true
	case key == tcell.KeyRune && r == 'a':
		return joypad.ButtonA, true
	case key == tcell.KeyRune && r == 's':
		return joypad.ButtonB, true
	case key == tcell.KeyRune && r == 'q':
		return joypad.ButtonSelect, true
	}
	return 0, false
}
