package garland

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// landmarkWire is the JSON wire format pushed by the external hand-tracking
// collaborator, one message per processed video frame. An empty or absent
// landmark list means no hand was detected in that frame.
type landmarkWire struct {
	TimestampMS int64        `json:"t"`
	Landmarks   [][3]float64 `json:"landmarks,omitempty"`
}

const feedDialTimeout = 5 * time.Second

// LandmarkFeed consumes hand landmark frames from an external vision model
// over a WebSocket and publishes classified gesture samples into a
// latest-value cell. The read loop runs out-of-band from the render tick;
// if detection lags, the tick simply keeps reading the previous sample.
//
// LandmarkFeed implements [GestureSource].
type LandmarkFeed struct {
	conn *websocket.Conn
	log  *zap.Logger

	classifier Classifier
	cell       latestCell[GestureSample]
	available  atomic.Bool

	cancel context.CancelFunc
	done   chan struct{}
}

// OpenLandmarkFeed dials the detector at url (ws:// or wss://) and starts
// reading frames. pinchThreshold overrides [DefaultPinchThreshold] when
// positive. A dial failure is returned to the caller so gesture features can
// degrade to click-only control; it is never fatal to the greeting.
func OpenLandmarkFeed(url string, pinchThreshold float64, log *zap.Logger) (*LandmarkFeed, error) {
	if log == nil {
		log = zap.NewNop()
	}
	dialCtx, dialCancel := context.WithTimeout(context.Background(), feedDialTimeout)
	defer dialCancel()

	conn, _, err := websocket.DefaultDialer.DialContext(dialCtx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial landmark feed %s: %w", url, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	f := &LandmarkFeed{
		conn:       conn,
		log:        log,
		classifier: Classifier{PinchThreshold: pinchThreshold},
		cancel:     cancel,
		done:       make(chan struct{}),
	}
	f.available.Store(true)
	go f.readLoop(ctx)

	log.Info("landmark feed connected", zap.String("url", url))
	return f, nil
}

// readLoop reads, decodes, and classifies frames until the connection drops
// or the feed is closed. Decode errors on individual frames are skipped;
// the next frame is simply awaited.
func (f *LandmarkFeed) readLoop(ctx context.Context) {
	defer close(f.done)
	defer f.available.Store(false)

	for {
		_, data, err := f.conn.ReadMessage()
		if err != nil {
			select {
			case <-ctx.Done():
				// Normal teardown.
			default:
				f.log.Warn("landmark feed disconnected", zap.Error(err))
			}
			return
		}

		var wire landmarkWire
		if err := json.Unmarshal(data, &wire); err != nil {
			f.log.Debug("skipping malformed landmark frame", zap.Error(err))
			continue
		}

		frame := HandFrame{TimestampMS: wire.TimestampMS}
		if len(wire.Landmarks) > 0 {
			frame.Landmarks = make([]Landmark, len(wire.Landmarks))
			for i, lm := range wire.Landmarks {
				frame.Landmarks[i] = Landmark{X: lm[0], Y: lm[1], Z: lm[2]}
			}
		}

		if sample, ok := f.classifier.Classify(frame); ok {
			f.cell.Store(sample)
		}
	}
}

// Sample returns the latest classified gesture sample, or the neutral
// sample if the feed is down or nothing has arrived yet.
func (f *LandmarkFeed) Sample() GestureSample {
	if !f.available.Load() {
		return NeutralGesture
	}
	return f.cell.Load(NeutralGesture)
}

// Available reports whether the feed is still connected.
func (f *LandmarkFeed) Available() bool {
	return f.available.Load()
}

// Close stops the read loop and closes the connection.
func (f *LandmarkFeed) Close() error {
	f.cancel()
	err := f.conn.Close()
	<-f.done
	return err
}
