package server

import (
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/minaorangina/taboo/deck"
	"github.com/minaorangina/taboo/engine"
	utils "github.com/minaorangina/taboo/internal"
	"github.com/minaorangina/taboo/protocol"
	"github.com/minaorangina/taboo/store"
	"github.com/stretchr/testify/mock"
)

const testTickRate = 5 * time.Millisecond

type mockStore struct {
	mock.Mock
}

func (m *mockStore) FindDevice(deviceID string) *engine.Device {
	args := m.Called(deviceID)
	device, _ := args.Get(0).(*engine.Device)
	return device
}

func (m *mockStore) AddDevice(device *engine.Device) error {
	args := m.Called(device)
	return args.Error(0)
}

func (m *mockStore) RemoveDevice(deviceID string) error {
	args := m.Called(deviceID)
	return args.Error(0)
}

func (m *mockStore) Devices() []string {
	args := m.Called()
	ids, _ := args.Get(0).([]string)
	return ids
}

func newTestFactory(t *testing.T, turnLength time.Duration) DeviceFactory {
	t.Helper()

	pool, err := deck.DefaultPool(nil)
	utils.AssertNoError(t, err)

	return func(id string) *engine.Device {
		return engine.NewDevice(id, engine.NewShell(engine.ShellOpts{Pool: pool, TurnLength: turnLength}))
	}
}

func newTestServer(t *testing.T, str store.DeviceStore) *DeviceServer {
	t.Helper()
	return NewServer(str, newTestFactory(t, 0), ServerOpts{TickRate: testTickRate})
}

// newServerWithDevice returns a server holding one device, and that device's ID
func newServerWithDevice(t *testing.T) (*DeviceServer, string) {
	t.Helper()
	return newServerWithTurnLength(t, 0)
}

func newServerWithTurnLength(t *testing.T, turnLength time.Duration) (*DeviceServer, string) {
	t.Helper()

	str := store.NewInMemoryDeviceStore()
	server := NewServer(str, newTestFactory(t, turnLength), ServerOpts{TickRate: testTickRate})

	device := server.factory("some-device-id")
	utils.AssertNoError(t, str.AddDevice(device))

	return server, device.ID()
}

// ASSERTIONS

func assertStatus(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("got status %d, want %d", got, want)
	}
}

func mustDecode(t *testing.T, body *strings.Reader, target interface{}) {
	t.Helper()
	utils.AssertNoError(t, json.NewDecoder(body).Decode(target))
}

func mustDialWS(t *testing.T, url string) *websocket.Conn {
	t.Helper()

	ws, resp, err := websocket.DefaultDialer.Dial(url, nil)

	if err != nil {
		body, _ := ioutil.ReadAll(resp.Body)
		t.Fatalf("could not open a ws connection on %s, code %d: %s, %v", url, resp.StatusCode, body, err)
	}
	if ws == nil {
		t.Fatal("unexpected nil websocket conn")
	}

	return ws
}

func makeWSUrl(serverURL, deviceID string) string {
	return "ws" + strings.TrimPrefix(serverURL, "http") + "/ws?device_id=" + deviceID
}

func sendButton(t *testing.T, ws *websocket.Conn, b protocol.Button, down bool) {
	t.Helper()
	err := ws.WriteJSON(protocol.InboundMessage{Button: b.String(), Down: down})
	utils.AssertNoError(t, err)
}

// readUntil reads frames until one contains want
func readUntil(t *testing.T, ws *websocket.Conn, want string) *protocol.Frame {
	t.Helper()

	ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		var frame protocol.Frame
		if err := ws.ReadJSON(&frame); err != nil {
			t.Fatalf("never saw %q: %v", want, err)
		}
		for _, text := range frame.Texts() {
			if strings.Contains(text, want) {
				return &frame
			}
		}
	}
}

// drain keeps reading frames so the server never blocks writing to ws
func drain(ws *websocket.Conn) {
	go func() {
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func newDeleteDeviceRequest(deviceID string) *http.Request {
	request, _ := http.NewRequest(http.MethodDelete, "/devices/"+deviceID, nil)
	return request
}

func getSummary(t *testing.T, server http.Handler, deviceID string) protocol.DeviceSummary {
	t.Helper()

	response := httptest.NewRecorder()
	request, _ := http.NewRequest(http.MethodGet, "/devices/"+deviceID, nil)
	server.ServeHTTP(response, request)
	assertStatus(t, response.Code, http.StatusOK)

	var summary protocol.DeviceSummary
	mustDecode(t, strings.NewReader(response.Body.String()), &summary)
	return summary
}
