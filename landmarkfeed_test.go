package garland

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// fakeDetector is a WebSocket server standing in for the external vision
// model: it upgrades the connection and pushes whatever the test writes
// into its frames channel.
type fakeDetector struct {
	srv      *httptest.Server
	frames   chan []byte
	stopOnce sync.Once
}

// stop ends the frame stream, letting the handler return and the server
// shut down.
func (d *fakeDetector) stop() {
	d.stopOnce.Do(func() { close(d.frames) })
}

func newFakeDetector(t *testing.T) *fakeDetector {
	t.Helper()
	d := &fakeDetector{frames: make(chan []byte, 16)}
	upgrader := websocket.Upgrader{}
	d.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()
		for frame := range d.frames {
			if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		}
	}))
	t.Cleanup(func() {
		d.stop()
		d.srv.Close()
	})
	return d
}

func (d *fakeDetector) url() string {
	return "ws" + strings.TrimPrefix(d.srv.URL, "http")
}

// push sends a raw frame to the connected feed.
func (d *fakeDetector) push(frame string) {
	d.frames <- []byte(frame)
}

// pinchFrameJSON builds a wire frame with a full 21-landmark pinching hand.
func pinchFrameJSON(ts int64) string {
	var b strings.Builder
	b.WriteString(`{"t":`)
	b.WriteString(strconv.FormatInt(ts, 10))
	b.WriteString(`,"landmarks":[`)
	for i := 0; i < LandmarkCount; i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		// Thumb tip and index tip coincide: unambiguous pinch.
		b.WriteString(`[0.5,0.5,0]`)
	}
	b.WriteString(`]}`)
	return b.String()
}

// waitFor polls until cond holds or the deadline passes.
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestLandmarkFeedDeliversSamples(t *testing.T) {
	det := newFakeDetector(t)
	feed, err := OpenLandmarkFeed(det.url(), 0, nil)
	if err != nil {
		t.Fatalf("OpenLandmarkFeed: %v", err)
	}
	defer feed.Close()

	if !feed.Available() {
		t.Fatal("feed should be available after connect")
	}
	// Nothing received yet: neutral.
	assertNear(t, "initial PalmX", feed.Sample().PalmX, 0.5)

	det.push(pinchFrameJSON(1))
	waitFor(t, "pinch sample", func() bool { return feed.Sample().Pinching })

	s := feed.Sample()
	if !s.HandPresent {
		t.Error("hand not reported present")
	}
	assertNear(t, "PalmX", s.PalmX, 0.5)
}

func TestLandmarkFeedSkipsMalformedFrames(t *testing.T) {
	det := newFakeDetector(t)
	feed, err := OpenLandmarkFeed(det.url(), 0, nil)
	if err != nil {
		t.Fatalf("OpenLandmarkFeed: %v", err)
	}
	defer feed.Close()

	det.push(`{not json`)
	det.push(`{"t":1,"landmarks":[[0.1,0.2,0]]}`) // wrong landmark count
	det.push(pinchFrameJSON(2))                   // valid frame still lands

	waitFor(t, "valid sample after garbage", func() bool { return feed.Sample().Pinching })
}

func TestLandmarkFeedNoHandFrame(t *testing.T) {
	det := newFakeDetector(t)
	feed, err := OpenLandmarkFeed(det.url(), 0, nil)
	if err != nil {
		t.Fatalf("OpenLandmarkFeed: %v", err)
	}
	defer feed.Close()

	det.push(pinchFrameJSON(1))
	waitFor(t, "hand sample", func() bool { return feed.Sample().HandPresent })

	det.push(`{"t":2}`)
	waitFor(t, "neutral sample", func() bool { return !feed.Sample().HandPresent })
	assertNear(t, "neutral PalmX", feed.Sample().PalmX, 0.5)
}

func TestLandmarkFeedDialFailure(t *testing.T) {
	if _, err := OpenLandmarkFeed("ws://127.0.0.1:1/nope", 0, nil); err == nil {
		t.Error("expected dial error for dead endpoint")
	}
}

func TestLandmarkFeedUnavailableAfterServerClose(t *testing.T) {
	det := newFakeDetector(t)
	feed, err := OpenLandmarkFeed(det.url(), 0, nil)
	if err != nil {
		t.Fatalf("OpenLandmarkFeed: %v", err)
	}
	defer feed.Close()

	det.push(pinchFrameJSON(1))
	waitFor(t, "sample before close", func() bool { return feed.Sample().Pinching })

	det.stop()
	det.srv.CloseClientConnections()
	waitFor(t, "feed unavailable", func() bool { return !feed.Available() })

	// A dead feed reports the neutral sample, not the last live one.
	if feed.Sample().Pinching {
		t.Error("dead feed still reporting pinch")
	}
}
