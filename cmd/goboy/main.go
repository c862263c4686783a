// Command goboy is an SDL2 window driving the emulator core, grounded
// on lazy-stripes-writing-an-emulator's timing-is-key.go SDL
// window/renderer/texture and audio-device setup, and on
// valerio-go-jeebie's urfave/cli flag scaffolding. It is a reference
// display/audio/input sink, not part of the emulator core.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/faiface/mainthread"
	"github.com/urfave/cli"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/aldermoon/dmgboy/internal/gameboy"
	"github.com/aldermoon/dmgboy/internal/joypad"
	"github.com/aldermoon/dmgboy/internal/ppu"
	"github.com/aldermoon/dmgboy/pkg/loader"
	"github.com/aldermoon/dmgboy/pkg/log"
	"github.com/aldermoon/dmgboy/pkg/video"
)

const (
	scale        = 4
	samplingRate = 48000
)

func main() {
	app := cli.NewApp()
	app.Name = "goboy"
	app.Usage = "goboy [options] <ROM file>"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "rom", Usage: "Path to the ROM file"},
		cli.StringFlag{Name: "palette", Value: "greyscale", Usage: "Display palette: greyscale, green, red or yellow"},
		cli.BoolFlag{Name: "verbose", Usage: "Log unmapped IO access and other core diagnostics"},
	}
	app.Action = func(c *cli.Context) error {
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

		pal := paletteFlag(c.String("palette"))

		// mainthread.Run must own the goroutine that allocates SDL
		// resources; mainthread.Call hops back onto it from here.
		var runErr error
		mainthread.Run(func() {
			mainthread.Call(func() {
				runErr = runWindow(gb, pal)
			})
		})
		return runErr
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "goboy:", err)
		os.Exit(1)
	}
}

func paletteFlag(name string) video.Palette {
	switch name {
	case "green":
		return video.Palettes[video.Green]
	case "red":
		return video.Palettes[video.Red]
	case "yellow":
		return video.Palettes[video.Yellow]
	default:
		return video.Palettes[video.Greyscale]
	}
}

func runWindow(gb *gameboy.GameBoy, pal video.Palette) error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO); err != nil {
		return fmt.Errorf("goboy: initializing SDL: %w", err)
	}
	defer sdl.Quit()

	window, err := sdl.CreateWindow("goboy",
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		ppu.ScreenWidth*scale, ppu.ScreenHeight*scale,
		sdl.WINDOW_SHOWN)
	if err != nil {
		return fmt.Errorf("goboy: creating window: %w", err)
	}
	defer window.Destroy()

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		return fmt.Errorf("goboy: creating renderer: %w", err)
	}
	defer renderer.Destroy()

	texture, err := renderer.CreateTexture(uint32(sdl.PIXELFORMAT_RGBA32),
		sdl.TEXTUREACCESS_STREAMING, ppu.ScreenWidth, ppu.ScreenHeight)
	if err != nil {
		return fmt.Errorf("goboy: creating texture: %w", err)
	}
	defer texture.Destroy()

	audioSpec := &sdl.AudioSpec{
		Freq:     samplingRate,
		Format:   sdl.AUDIO_S16SYS,
		Channels: 2,
		Samples:  1024,
	}
	audioDevice, err := sdl.OpenAudioDevice("", false, audioSpec, nil, 0)
	if err != nil {
		return fmt.Errorf("goboy: opening audio device: %w", err)
	}
	defer sdl.CloseAudioDevice(audioDevice)
	sdl.PauseAudioDevice(audioDevice, false)

	buffer := make([]byte, ppu.ScreenWidth*ppu.ScreenHeight*4)

	running := true
	for running {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				running = false
			case *sdl.KeyboardEvent:
				if button, ok := keyButton(e.Keysym.Sym); ok {
					if e.Type == sdl.KEYDOWN {
						gb.PressButton(button)
					} else {
						gb.ReleaseButton(button)
					}
				}
			}
		}

		frame := gb.RunFrame()
		encodeFrameRGBA(frame, pal, buffer)
		if err := texture.Update(nil, buffer, ppu.ScreenWidth*4); err != nil {
			return fmt.Errorf("goboy: updating texture: %w", err)
		}

		renderer.Clear()
		renderer.Copy(texture, nil, nil)
		renderer.Present()

		flushAudio(gb, audioDevice)
	}
	return nil
}

func encodeFrameRGBA(frame [ppu.ScreenHeight][ppu.ScreenWidth]uint8, pal video.Palette, out []byte) {
	i := 0
	for y := 0; y < ppu.ScreenHeight; y++ {
		for x := 0; x < ppu.ScreenWidth; x++ {
			rgba := pal.RGBA32(frame[y][x])
			out[i+0] = byte(rgba >> 24)
			out[i+1] = byte(rgba >> 16)
			out[i+2] = byte(rgba >> 8)
			out[i+3] = byte(rgba)
			i += 4
		}
	}
}

func flushAudio(gb *gameboy.GameBoy, device sdl.AudioDeviceID) {
	samples := gb.Samples().Drain(4096)
	if len(samples) == 0 {
		return
	}
	buf := make([]byte, len(samples)*4)
	for i, s := range samples {
		buf[i*4+0] = byte(s.Left)
		buf[i*4+1] = byte(s.Left >> 8)
		buf[i*4+2] = byte(s.Right)
		buf[i*4+3] = byte(s.Right >> 8)
	}
	sdl.QueueAudio(device, buf)
}

func keyButton(sym sdl.Keycode) (joypad.Button, bool) {
	switch sym {
	case sdl.K_RETURN:
		return joypad.ButtonStart, true
	case sdl.K_RSHIFT, sdl.K_LSHIFT:
		return joypad.ButtonSelect, true
	case sdl.K_UP:
		return joypad.ButtonUp, true
	case sdl.K_DOWN:
		return joypad.ButtonDown, true
	case sdl.K_LEFT:
		return joypad.ButtonLeft, true
	case sdl.K_RIGHT:
		return joypad.ButtonRight, true
	case sdl.K_z:
		return joypad.ButtonA, true
	case sdl.K_x:
		return joypad.ButtonB, true
	}
	return 0, false
}
