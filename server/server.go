package server

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/websocket"
	"github.com/minaorangina/taboo/engine"
	"github.com/minaorangina/taboo/protocol"
	"github.com/minaorangina/taboo/store"
	"golang.org/x/time/rate"
)

const (
	DefaultTickRate  = 33 * time.Millisecond
	DefaultInputRate = 50
	inputBurst       = 20
)

//go:embed static/index.html
var homepage []byte

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type NewDeviceRes struct {
	DeviceID string `json:"device_id"`
}

// DeviceFactory builds a fresh device for the given ID
type DeviceFactory func(id string) *engine.Device

// ServerOpts configures a DeviceServer. InputRate caps button presses per
// second on one connection.
type ServerOpts struct {
	TickRate  time.Duration
	InputRate float64
	Logger    *log.Logger
	AccessLog io.Writer
}

// DeviceServer serves simulated devices over HTTP and websockets
type DeviceServer struct {
	store     store.DeviceStore
	factory   DeviceFactory
	tickRate  time.Duration
	inputRate rate.Limit
	logger    *log.Logger
	http.Server
}

func unknownDeviceIDMsg(unknownID string) string {
	return fmt.Sprintf("unknown device ID '%s'", unknownID)
}

// NewServer creates a new DeviceServer
func NewServer(str store.DeviceStore, factory DeviceFactory, opts ServerOpts) *DeviceServer {
	if opts.TickRate <= 0 {
		opts.TickRate = DefaultTickRate
	}
	if opts.InputRate <= 0 {
		opts.InputRate = DefaultInputRate
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}
	if opts.AccessLog == nil {
		opts.AccessLog = io.Discard
	}

	s := &DeviceServer{
		store:     str,
		factory:   factory,
		tickRate:  opts.TickRate,
		inputRate: rate.Limit(opts.InputRate),
		logger:    opts.Logger,
	}

	router := http.NewServeMux()

	router.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(homepage)
	}))
	router.Handle("/devices", http.HandlerFunc(s.HandleNewDevice))
	router.Handle("/devices/", http.HandlerFunc(s.HandleDevice))
	router.Handle("/ws", http.HandlerFunc(s.HandleWS))

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodDelete}),
	)

	s.Handler = handlers.LoggingHandler(opts.AccessLog, cors(router))

	return s
}

// ServeHTTP serves http
func (s *DeviceServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Handler.ServeHTTP(w, r)
}

// HandleNewDevice switches on a new device
func (s *DeviceServer) HandleNewDevice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	device := s.factory(engine.NewID())
	if err := s.store.AddDevice(device); err != nil {
		s.logger.Println(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	s.logger.Printf("device %s switched on", device.ID())

	writeJSON(w, http.StatusCreated, NewDeviceRes{DeviceID: device.ID()}, s.logger)
}

// HandleDevice reports on a device (GET) or switches it off (DELETE)
func (s *DeviceServer) HandleDevice(w http.ResponseWriter, r *http.Request) {
	deviceID := strings.TrimPrefix(r.URL.Path, "/devices/")
	if deviceID == "" {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("missing device ID"))
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.findDevice(w, deviceID)
	case http.MethodDelete:
		s.removeDevice(w, deviceID)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (s *DeviceServer) removeDevice(w http.ResponseWriter, deviceID string) {
	err := s.store.RemoveDevice(deviceID)
	if errors.Is(err, store.ErrUnknownDeviceID) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(unknownDeviceIDMsg(deviceID)))
		return
	}
	if err != nil {
		s.logger.Println(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	s.logger.Printf("device %s switched off", deviceID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *DeviceServer) findDevice(w http.ResponseWriter, deviceID string) {
	device := s.store.FindDevice(deviceID)
	if device == nil {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(unknownDeviceIDMsg(deviceID)))
		return
	}

	writeJSON(w, http.StatusOK, device.Summary(), s.logger)
}

// HandleWS streams frames to the client and feeds its button events to the device
func (s *DeviceServer) HandleWS(w http.ResponseWriter, r *http.Request) {
	deviceID := r.URL.Query().Get("device_id")
	if deviceID == "" {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("missing device ID"))
		return
	}

	device := s.store.FindDevice(deviceID)
	if device == nil {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(unknownDeviceIDMsg(deviceID)))
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied
		s.logger.Printf("could not upgrade to websocket: %v", err)
		return
	}

	s.run(r.Context(), conn, device)
}

func (s *DeviceServer) run(ctx context.Context, conn *websocket.Conn, device *engine.Device) {
	defer conn.Close()

	done := make(chan struct{})
	go s.readInput(conn, device, done)

	ticker := time.NewTicker(s.tickRate)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if s.store.FindDevice(device.ID()) != device {
				s.logger.Printf("device %s: switched off, closing stream", device.ID())
				return
			}

			frame := device.StepAt(now)
			if err := conn.WriteJSON(frame); err != nil {
				s.logger.Printf("device %s: write failed: %v", device.ID(), err)
				return
			}
		}
	}
}

func (s *DeviceServer) readInput(conn *websocket.Conn, device *engine.Device, done chan struct{}) {
	defer close(done)

	limiter := rate.NewLimiter(s.inputRate, inputBurst)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Printf("device %s: read failed: %v", device.ID(), err)
			}
			return
		}

		var msg protocol.InboundMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.logger.Printf("device %s: bad message: %v", device.ID(), err)
			continue
		}

		b, ok := protocol.NameToButton[msg.Button]
		if !ok {
			s.logger.Printf("device %s: ignoring unknown button %q", device.ID(), msg.Button)
			continue
		}

		// releases always go through so a button cannot stick
		if msg.Down && !limiter.Allow() {
			s.logger.Printf("device %s: dropping %s, too many presses", device.ID(), b)
			continue
		}

		device.Press(b, msg.Down)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}, logger *log.Logger) {
	bytes, err := json.Marshal(payload)
	if err != nil {
		logger.Println(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(bytes)
}
