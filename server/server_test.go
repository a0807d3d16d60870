package server

import (
	"encoding/json"
	"errors"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/gorilla/websocket"
	utils "github.com/minaorangina/taboo/internal"
	"github.com/minaorangina/taboo/protocol"
	"github.com/minaorangina/taboo/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestServerPing(t *testing.T) {
	response := httptest.NewRecorder()
	request, _ := http.NewRequest(http.MethodGet, "/", nil)

	server := newTestServer(t, store.NewInMemoryDeviceStore())
	server.ServeHTTP(response, request)

	assertStatus(t, response.Code, http.StatusOK)

	bodyBytes, err := ioutil.ReadAll(response.Body)
	utils.AssertNoError(t, err)
	utils.AssertTrue(t, strings.Contains(strings.ToLower(string(bodyBytes)), "<!doctype html>"))

	t.Run("unknown paths are not found", func(t *testing.T) {
		response := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodGet, "/nope", nil)
		server.ServeHTTP(response, request)

		assertStatus(t, response.Code, http.StatusNotFound)
	})
}

func TestServerPOSTNewDevice(t *testing.T) {
	t.Run("succeeds and stores the device", func(t *testing.T) {
		str := store.NewInMemoryDeviceStore()
		server := newTestServer(t, str)

		response := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodPost, "/devices", nil)
		server.ServeHTTP(response, request)

		assertStatus(t, response.Code, http.StatusCreated)
		assert.Equal(t, "application/json", response.Header().Get("Content-Type"))

		var got NewDeviceRes
		require.NoError(t, json.Unmarshal(response.Body.Bytes(), &got))
		require.NotEmpty(t, got.DeviceID)
		assert.NotNil(t, str.FindDevice(got.DeviceID))
	})

	t.Run("does not match on GET /devices", func(t *testing.T) {
		server := newTestServer(t, store.NewInMemoryDeviceStore())

		response := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodGet, "/devices", nil)
		server.ServeHTTP(response, request)

		assertStatus(t, response.Code, http.StatusNotFound)
	})

	t.Run("returns 500 if the store refuses the device", func(t *testing.T) {
		str := &mockStore{}
		str.On("AddDevice", mock.AnythingOfType("*engine.Device")).Return(assert.AnError).Once()
		server := newTestServer(t, str)

		response := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodPost, "/devices", nil)
		server.ServeHTTP(response, request)

		assertStatus(t, response.Code, http.StatusInternalServerError)
		str.AssertExpectations(t)
	})
}

func TestServerGETDevice(t *testing.T) {
	t.Run("returns a summary of a fresh device", func(t *testing.T) {
		server, deviceID := newServerWithDevice(t)

		got := getSummary(t, server, deviceID)
		want := protocol.DeviceSummary{
			DeviceID: deviceID,
			Screen:   "menu",
			Parties:  2,
			Mode:     "teams",
		}

		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("summary mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("returns 404 for an unknown device", func(t *testing.T) {
		str := &mockStore{}
		str.On("FindDevice", "who-dis").Return(nil)
		server := newTestServer(t, str)

		response := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodGet, "/devices/who-dis", nil)
		server.ServeHTTP(response, request)

		assertStatus(t, response.Code, http.StatusNotFound)
		assert.Contains(t, response.Body.String(), "who-dis")
		str.AssertExpectations(t)
	})

	t.Run("returns 400 without a device id", func(t *testing.T) {
		server, _ := newServerWithDevice(t)

		response := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodGet, "/devices/", nil)
		server.ServeHTTP(response, request)

		assertStatus(t, response.Code, http.StatusBadRequest)
	})
}

func TestServerWS(t *testing.T) {
	t.Run("rejects a missing device id", func(t *testing.T) {
		server, _ := newServerWithDevice(t)

		response := httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodGet, "/ws", nil)
		server.ServeHTTP(response, request)

		assertStatus(t, response.Code, http.StatusBadRequest)
	})

	t.Run("rejects an unknown device id", func(t *testing.T) {
		server, _ := newServerWithDevice(t)
		httpServer := httptest.NewServer(server)
		defer httpServer.Close()

		_, resp, err := websocket.DefaultDialer.Dial(makeWSUrl(httpServer.URL, "who-dis"), nil)
		utils.AssertErrored(t, err)
		require.NotNil(t, resp)
		assertStatus(t, resp.StatusCode, http.StatusNotFound)
	})

	t.Run("streams the menu", func(t *testing.T) {
		server, deviceID := newServerWithDevice(t)
		httpServer := httptest.NewServer(server)
		defer httpServer.Close()

		ws := mustDialWS(t, makeWSUrl(httpServer.URL, deviceID))
		defer ws.Close()

		frame := readUntil(t, ws, "Press START")
		utils.AssertEqual(t, frame.W, 640)
		utils.AssertEqual(t, frame.H, 480)
	})

	t.Run("button presses drive the device", func(t *testing.T) {
		server, deviceID := newServerWithDevice(t)
		httpServer := httptest.NewServer(server)
		defer httpServer.Close()

		ws := mustDialWS(t, makeWSUrl(httpServer.URL, deviceID))
		defer ws.Close()

		readUntil(t, ws, "Press START")

		sendButton(t, ws, protocol.PovUp, true)
		sendButton(t, ws, protocol.PovUp, false)
		readUntil(t, ws, "Number of players/teams: 3")

		sendButton(t, ws, protocol.ActionA, true)
		sendButton(t, ws, protocol.ActionA, false)
		readUntil(t, ws, "Press A to start")

		summary := getSummary(t, server, deviceID)
		utils.AssertEqual(t, summary.Screen, "readying")
		utils.AssertEqual(t, summary.Parties, 3)
		assert.Greater(t, summary.DeckSize, 0)
	})

	t.Run("ignores unknown buttons and bad messages", func(t *testing.T) {
		server, deviceID := newServerWithDevice(t)
		httpServer := httptest.NewServer(server)
		defer httpServer.Close()

		ws := mustDialWS(t, makeWSUrl(httpServer.URL, deviceID))
		defer ws.Close()

		require.NoError(t, ws.WriteJSON(protocol.InboundMessage{Button: "Turbo", Down: true}))
		require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte("{not json")))

		sendButton(t, ws, protocol.PovRight, true)
		readUntil(t, ws, "Mode: players")
	})

	t.Run("device outlives its connection", func(t *testing.T) {
		server, deviceID := newServerWithDevice(t)
		httpServer := httptest.NewServer(server)
		defer httpServer.Close()

		ws := mustDialWS(t, makeWSUrl(httpServer.URL, deviceID))
		readUntil(t, ws, "Press START")
		ws.Close()

		// the device survives its connection
		summary := getSummary(t, server, deviceID)
		utils.AssertEqual(t, summary.Screen, "menu")
	})
}

func TestServerDELETEDevice(t *testing.T) {
	t.Run("switches the device off", func(t *testing.T) {
		server, deviceID := newServerWithDevice(t)

		response := httptest.NewRecorder()
		server.ServeHTTP(response, newDeleteDeviceRequest(deviceID))
		assertStatus(t, response.Code, http.StatusNoContent)

		response = httptest.NewRecorder()
		request, _ := http.NewRequest(http.MethodGet, "/devices/"+deviceID, nil)
		server.ServeHTTP(response, request)
		assertStatus(t, response.Code, http.StatusNotFound)
	})

	t.Run("returns 404 for an unknown device", func(t *testing.T) {
		server, _ := newServerWithDevice(t)

		response := httptest.NewRecorder()
		server.ServeHTTP(response, newDeleteDeviceRequest("who-dis"))
		assertStatus(t, response.Code, http.StatusNotFound)
	})

	t.Run("returns 500 if the store fails", func(t *testing.T) {
		str := &mockStore{}
		str.On("RemoveDevice", "some-device-id").Return(errors.New("disk on fire")).Once()
		server := newTestServer(t, str)

		response := httptest.NewRecorder()
		server.ServeHTTP(response, newDeleteDeviceRequest("some-device-id"))
		assertStatus(t, response.Code, http.StatusInternalServerError)
		str.AssertExpectations(t)
	})

	t.Run("closes the device's streams", func(t *testing.T) {
		server, deviceID := newServerWithDevice(t)
		httpServer := httptest.NewServer(server)
		defer httpServer.Close()

		ws := mustDialWS(t, makeWSUrl(httpServer.URL, deviceID))
		defer ws.Close()
		readUntil(t, ws, "Press START")

		response := httptest.NewRecorder()
		server.ServeHTTP(response, newDeleteDeviceRequest(deviceID))
		assertStatus(t, response.Code, http.StatusNoContent)

		ws.SetReadDeadline(time.Now().Add(2 * time.Second))
		var err error
		for err == nil {
			_, _, err = ws.ReadMessage()
		}
		var netErr interface{ Timeout() bool }
		if errors.As(err, &netErr) && netErr.Timeout() {
			t.Fatal("stream still open after the device was switched off")
		}
	})
}

func TestServerTurnClock(t *testing.T) {
	t.Run("extra connections do not shorten the turn", func(t *testing.T) {
		server, deviceID := newServerWithTurnLength(t, time.Second)
		httpServer := httptest.NewServer(server)
		defer httpServer.Close()

		ws := mustDialWS(t, makeWSUrl(httpServer.URL, deviceID))
		defer ws.Close()
		for i := 0; i < 2; i++ {
			extra := mustDialWS(t, makeWSUrl(httpServer.URL, deviceID))
			defer extra.Close()
			drain(extra)
		}

		sendButton(t, ws, protocol.ActionA, true)
		sendButton(t, ws, protocol.ActionA, false)
		readUntil(t, ws, "Press A to start")

		sendButton(t, ws, protocol.ActionA, true)
		sendButton(t, ws, protocol.ActionA, false)
		readUntil(t, ws, "A got card")

		time.Sleep(500 * time.Millisecond)
		utils.AssertEqual(t, getSummary(t, server, deviceID).Screen, "playing")

		t.Log("And the turn still ends on time")
		readUntil(t, ws, "Time up")
		utils.AssertEqual(t, getSummary(t, server, deviceID).Screen, "reviewing")
	})
}
