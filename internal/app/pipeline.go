package app

import (
	"log"
	"time"

	"github.com/ayusman/mudra/internal/detector"
)

// runDetection is the detection worker loop. It is the only writer to the
// result slot and owns the camera read cadence:
//
//  1. Start in idle mode (5 FPS), watching for motion.
//  2. On motion, switch to active mode (15 FPS) and run hand detection.
//  3. Publish each completed cycle to the latest-wins slot.
//  4. After 2 s without motion, fall back to idle mode.
//
// The loop exits when stopCh closes; the slot is closed by Stop, so a
// detection completing during shutdown publishes into the void instead of
// racing the teardown.
func (a *App) runDetection(stopCh <-chan struct{}) {
	activeMode := false
	lastMotion := time.Now()

	frameInterval := time.Second / time.Duration(IdleFPS)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if !a.IsEnabled() {
				continue
			}

			frame, err := a.camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			motionDetected, _ := a.motion.Detect(frame)

			if motionDetected {
				lastMotion = time.Now()
				if !activeMode {
					activeMode = true
					a.camera.SetFPS(ActiveFPS)
					frameInterval = time.Second / time.Duration(ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active mode")
				}
			} else if activeMode && time.Since(lastMotion) > IdleTimeout {
				activeMode = false
				a.camera.SetFPS(IdleFPS)
				frameInterval = time.Second / time.Duration(IdleFPS)
				ticker.Reset(frameInterval)
				log.Println("Switched to idle mode")
			}

			if !activeMode || a.det == nil {
				// Publish an empty cycle so the gesture decays to idle
				// instead of freezing on the last active hands.
				a.slot.publish(&detector.Result{At: time.Now()})
				frame.Close()
				continue
			}

			hands, err := a.det.Detect(frame)
			frame.Close()
			if err != nil {
				log.Printf("Error detecting hands: %v", err)
				continue
			}

			a.slot.publish(&detector.Result{Hands: hands, At: time.Now()})
		}
	}
}

// RunSimulation drives Tick on an internal ticker for headless operation.
// It blocks until stopCh closes; the viewer binary drives Tick from its
// render loop instead and never calls this.
func (a *App) RunSimulation(hz int, stopCh <-chan struct{}) {
	if hz <= 0 {
		hz = 60
	}

	ticker := time.NewTicker(time.Second / time.Duration(hz))
	defer ticker.Stop()

	start := time.Now()
	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			a.Tick(time.Since(start).Seconds())
		}
	}
}
