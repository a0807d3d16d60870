package internal

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/minaorangina/taboo/protocol"
)

// FailureMessage reports a got/want mismatch
func FailureMessage(t *testing.T, got, want interface{}) {
	t.Helper()

	t.Errorf("\nGot: %s\nwant: %s", TypeToString(got), TypeToString(want))
}

// TypeToString returns the string representation of a non-string type
func TypeToString(obj interface{}) string {
	return fmt.Sprintf("%+v", obj)
}

// AssertNoError checks for the non-existence of an error
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}
}

// AssertErrored checks for the existence of an error
func AssertErrored(t *testing.T, err error) {
	t.Helper()

	if err == nil {
		t.Fatal("Expected an error, but got nil")
	}
}

// AssertEqual checks that the values are equal
func AssertEqual(t *testing.T, got, want interface{}) {
	t.Helper()

	if got != want {
		FailureMessage(t, got, want)
	}
}

// AssertDeepEqual checks that the values are deeply equal
func AssertDeepEqual(t *testing.T, got, want interface{}) {
	t.Helper()

	if !reflect.DeepEqual(got, want) {
		FailureMessage(t, got, want)
	}
}

// AssertTrue checks that the value is true
func AssertTrue(t *testing.T, got bool) {
	t.Helper()

	if got != true {
		t.Error("Expected to be true, but it wasn't")
	}
}

// AssertDrawn checks that some text call on the frame contains want
func AssertDrawn(t *testing.T, frame *protocol.Frame, want string) {
	t.Helper()

	for _, text := range frame.Texts() {
		if strings.Contains(text, want) {
			return
		}
	}
	t.Errorf("expected %q to be drawn, got %q", want, frame.Texts())
}

// Within fails the test if assert does not return within d
func Within(t *testing.T, d time.Duration, assert func()) {
	t.Helper()

	done := make(chan struct{}, 1)

	go func() {
		assert()
		done <- struct{}{}
	}()

	select {
	case <-time.After(d):
		t.Error("timed out")
	case <-done:
	}
}

// Press is a scripted Input where the listed buttons were just pressed
type Press []protocol.Button

func (p Press) has(b protocol.Button) bool {
	for _, pressed := range p {
		if pressed == b {
			return true
		}
	}
	return false
}

func (p Press) Pressed(b protocol.Button) bool {
	return p.has(b)
}

func (p Press) JustPressed(b protocol.Button) bool {
	return p.has(b)
}

func (p Press) JustReleased(b protocol.Button) bool {
	return false
}
