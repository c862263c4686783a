// Package netdisplay broadcasts frames produced by gameboy.GameBoy.RunFrame
// to any number of connected websocket clients. It is a display sink like
// pkg/video and cmd/goboy's SDL window — it never reaches back into the
// core, it only ever reads the frame the frame driver already produced.
//
// Simplified from the teacher's pkg/display/web package: no multi-player
// upgrade handshake, username registration, or per-client RTT tracking,
// since those serve a multiplayer spectator UI outside this core's scope.
// What's kept is the registration/broadcast goroutine shape, the
// brotli-compressed payload, and the xxhash frame-dedup idea.
package netdisplay

import (
	"net/http"
	"sync"

	"github.com/cespare/xxhash"
	"github.com/google/brotli/go/cbrotli"
	"github.com/gorilla/websocket"

	"github.com/aldermoon/dmgboy/internal/ppu"
	"github.com/aldermoon/dmgboy/pkg/log"
	"github.com/aldermoon/dmgboy/pkg/video"
)

// compressionQuality matches the teacher's per-frame (not per-sync)
// brotli setting in pkg/display/web/player.go, favoring encode speed
// since this runs once per frame rather than once per save.
const compressionQuality = 7

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024 * 16,
	WriteBufferSize: 1024 * 16,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Hub fans a single Game Boy's frames out to every connected client,
// skipping the broadcast entirely when a frame hashes the same as the
// last one sent.
type Hub struct {
	Compression bool

	mu       sync.Mutex
	clients  map[*Client]bool
	lastHash uint64

	log log.Logger
}

// NewHub returns a Hub with compression enabled by default, matching
// the teacher's default hub configuration.
func NewHub() *Hub {
	return &Hub{
		Compression: true,
		clients:     make(map[*Client]bool),
		log:         log.NewNullLogger(),
	}
}

// SetLogger replaces the default null logger.
func (h *Hub) SetLogger(l log.Logger) { h.log = l }

// ServeHTTP upgrades the request to a websocket connection and
// registers the new client, mirroring the teacher's inline handler in
// hub.go's run method.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Errorf("netdisplay: upgrading connection: %v", err)
		return
	}

	c := &Client{hub: h, conn: conn, send: make(chan []byte, 8)}
	h.register(c)

	go c.writePump()
	go c.readPump()
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = true
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// BroadcastFrame encodes frame through pal into an RGBA byte payload,
// optionally brotli-compresses it, and sends it to every connected
// client whose send queue isn't full — a full queue drops the new
// frame for that client rather than blocking the caller (the sound
// ring, by contrast, drops its oldest sample).
func (h *Hub) BroadcastFrame(frame [ppu.ScreenHeight][ppu.ScreenWidth]uint8, pal video.Palette) error {
	payload := encodeFrame(frame, pal)

	hash := xxhash.Sum64(payload)
	h.mu.Lock()
	if hash == h.lastHash {
		h.mu.Unlock()
		return nil
	}
	h.lastHash = hash
	h.mu.Unlock()

	output := payload
	if h.Compression {
		compressed, err := cbrotli.Encode(payload, cbrotli.WriterOptions{Quality: compressionQuality})
		if err != nil {
			return err
		}
		output = compressed
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- output:
		default:
			h.log.Debugf("netdisplay: dropping frame for slow client")
		}
	}
	return nil
}

func encodeFrame(frame [ppu.ScreenHeight][ppu.ScreenWidth]uint8, pal video.Palette) []byte {
	out := make([]byte, 0, ppu.ScreenWidth*ppu.ScreenHeight*4)
	for y := 0; y < ppu.ScreenHeight; y++ {
		for x := 0; x < ppu.ScreenWidth; x++ {
			rgba := pal.RGBA32(frame[y][x])
			out = append(out, byte(rgba>>24), byte(rgba>>16), byte(rgba>>8), byte(rgba))
		}
	}
	return out
}
