// Package server provides the HTTP server for the Mudra particle field system.
package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ayusman/mudra/internal/capture"
	"gocv.io/x/gocv"
)

// The preview stream exists so the control UI can mirror what the gesture
// detector sees next to the particle field. Frames are paced to the active
// detection rate; streaming faster than gestures are classified buys nothing.
const (
	streamFrameInterval = 66 * time.Millisecond // ~15 FPS, matches active detection
	streamJPEGQuality   = 80
)

// StreamHandler serves the camera preview as an MJPEG stream.
type StreamHandler struct {
	camera capture.Camera
}

// NewStreamHandler creates a new StreamHandler reading from the given camera.
func NewStreamHandler(camera capture.Camera) *StreamHandler {
	return &StreamHandler{camera: camera}
}

// ServeHTTP streams preview frames until the client disconnects.
func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary=frame")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	for {
		select {
		case <-r.Context().Done():
			return
		default:
		}

		frame, err := h.camera.ReadFrame()
		if err != nil {
			// Camera hiccup; back off and retry rather than dropping the client.
			time.Sleep(100 * time.Millisecond)
			continue
		}

		buf, err := gocv.IMEncodeWithParams(".jpg", *frame, []int{gocv.IMWriteJpegQuality, streamJPEGQuality})
		frame.Close()
		if err != nil {
			continue
		}

		fmt.Fprintf(w, "--frame\r\n")
		fmt.Fprintf(w, "Content-Type: image/jpeg\r\n")
		fmt.Fprintf(w, "Content-Length: %d\r\n\r\n", buf.Len())
		w.Write(buf.GetBytes())
		fmt.Fprintf(w, "\r\n")
		buf.Close()

		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}

		time.Sleep(streamFrameInterval)
	}
}
