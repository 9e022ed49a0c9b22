// Copyright 2026 The Argus Authors
// SPDX-License-Identifier: Apache-2.0

package capture

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/argus-foundation/argus/lib/fusion"
	"github.com/argus-foundation/argus/lib/metadata"
	"github.com/argus-foundation/argus/lib/policy"
	"github.com/argus-foundation/argus/lib/secret"
	"github.com/argus-foundation/argus/lib/telemetry"
	"github.com/argus-foundation/argus/lib/tempest"
)

// Device is the hardware collaborator a session captures from. The
// implementation owns buffer queues and ioctls; the session owns
// policy and telemetry.
type Device interface {
	// StartStream begins frame delivery. Idempotency is the
	// session's concern, not the device's.
	StartStream() error

	// StopStream halts frame delivery.
	StopStream() error

	// ReadFrame blocks for the next frame and returns its payload
	// and capture timestamp (nanoseconds, monotonic domain shared
	// with metadata sources). The returned slice is owned by the
	// caller.
	ReadFrame() (data []byte, timestampNS uint64, err error)
}

// Frame is one delivered video frame.
type Frame struct {
	Data        []byte
	TimestampNS uint64
	Sequence    uint32
}

// Config holds Session construction parameters.
type Config struct {
	// DeviceID identifies the device in telemetry. Must match the
	// ID of the TEMPEST machine.
	DeviceID uint32

	// Role is the device role ("iris_scanner", "generic_webcam", ...).
	Role string

	// Classification is the device's data classification string.
	Classification string

	// Layer is the capture layer, 0-8.
	Layer uint32

	// Width and Height are the configured capture resolution,
	// checked against the layer's ceiling at open.
	Width  uint32
	Height uint32

	// Device performs the actual I/O. Required.
	Device Device

	// Machine is the device's TEMPEST state machine. Required.
	Machine *tempest.Machine

	// Gate is the policy gate. Required.
	Gate *policy.Gate

	// Ring receives telemetry events. Required.
	Ring *telemetry.Ring

	// Logger defaults to discard.
	Logger *slog.Logger
}

// Session is one policy-gated capture session on a single device.
// Safe for concurrent use.
type Session struct {
	deviceID uint32
	role     string
	layer    uint32
	device   Device
	machine  *tempest.Machine
	gate     *policy.Gate
	ring     *telemetry.Ring
	logger   *slog.Logger

	mu        sync.Mutex
	streaming bool
	sequence  uint32
	closed    bool
}

// Open validates the configuration against policy and creates a
// session. The session clearance must cover the device's role and
// classification, and the configured resolution must fit the layer's
// ceiling; either failure is a policy denial, not a fault. Emits a
// device-open event on success.
func Open(cfg Config) (*Session, error) {
	if cfg.Device == nil {
		return nil, errors.New("capture: Config.Device is required")
	}
	if cfg.Machine == nil {
		return nil, errors.New("capture: Config.Machine is required")
	}
	if cfg.Gate == nil {
		return nil, errors.New("capture: Config.Gate is required")
	}
	if cfg.Ring == nil {
		return nil, errors.New("capture: Config.Ring is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	layerPolicy, err := policy.LayerPolicyFor(cfg.Layer)
	if err != nil {
		return nil, err
	}
	if cfg.Width > layerPolicy.MaxWidth || cfg.Height > layerPolicy.MaxHeight {
		return nil, fmt.Errorf("%w: %dx%d exceeds layer %d ceiling %dx%d",
			policy.ErrDenied, cfg.Width, cfg.Height, cfg.Layer,
			layerPolicy.MaxWidth, layerPolicy.MaxHeight)
	}

	if cfg.Gate.CheckClearance(cfg.Role, cfg.Classification) == policy.Deny {
		cfg.Ring.EmitSimple(cfg.DeviceID, telemetry.EventPolicyViolation,
			telemetry.SeverityCritical, 0)
		return nil, fmt.Errorf("%w: clearance insufficient for role %q classification %q",
			policy.ErrDenied, cfg.Role, cfg.Classification)
	}

	cfg.Ring.EmitSimple(cfg.DeviceID, telemetry.EventDeviceOpen,
		telemetry.SeverityInfo, cfg.Layer)
	logger.Info("capture session opened",
		"device", cfg.DeviceID,
		"role", cfg.Role,
		"layer", cfg.Layer,
	)

	return &Session{
		deviceID: cfg.DeviceID,
		role:     cfg.Role,
		layer:    cfg.Layer,
		device:   cfg.Device,
		machine:  cfg.Machine,
		gate:     cfg.Gate,
		ring:     cfg.Ring,
		logger:   logger,
	}, nil
}

// Authorize snapshots the device's TEMPEST state, checks the layer
// minimum and the capture gate, and returns a single-use Grant. Every
// denial emits a policy-violation event. This is the only way to
// obtain the Grant the delivery methods require.
func (s *Session) Authorize() (policy.Grant, error) {
	grant, err := s.gate.Authorize(s.machine)
	if err != nil {
		s.ring.EmitSimple(s.deviceID, telemetry.EventPolicyViolation,
			telemetry.SeverityCritical, uint32(tempest.Lockdown))
		return policy.Grant{}, err
	}

	decision, err := s.gate.LayerCheck(s.layer, grant.State())
	if err != nil {
		return policy.Grant{}, err
	}
	if decision == policy.Deny {
		s.ring.EmitSimple(s.deviceID, telemetry.EventPolicyViolation,
			telemetry.SeverityCritical, uint32(grant.State()))
		return policy.Grant{}, fmt.Errorf("%w: layer %d requires a stricter state than %s",
			policy.ErrDenied, s.layer, grant.State())
	}
	return grant, nil
}

// Frame captures one standard video frame under an authorization
// grant. Read failures emit a frame-dropped event and are returned to
// the caller; the capture loop is expected to continue.
func (s *Session) Frame(grant policy.Grant) (*Frame, error) {
	if err := s.consume(grant); err != nil {
		return nil, err
	}
	if err := s.StartStreaming(); err != nil {
		return nil, err
	}

	data, timestampNS, err := s.device.ReadFrame()
	if err != nil {
		s.ring.EmitSimple(s.deviceID, telemetry.EventFrameDropped,
			telemetry.SeverityMedium, 0)
		return nil, fmt.Errorf("capture: read frame: %w", err)
	}

	s.ring.EmitSimple(s.deviceID, telemetry.EventFrameAcquired,
		telemetry.SeverityInfo, uint32(len(data)))

	return &Frame{
		Data:        data,
		TimestampNS: timestampNS,
		Sequence:    s.nextSequence(),
	}, nil
}

// Iris captures one biometric frame under an authorization grant. The
// payload is moved into protected memory and the intermediate copy is
// zeroed; the caller must Close the returned buffer. The iris-capture
// event is emitted for every attempt, allowed or denied, so the audit
// trail records the attempt itself.
func (s *Session) Iris(grant policy.Grant) (*secret.Buffer, uint64, error) {
	s.ring.EmitSimple(s.deviceID, telemetry.EventIrisCapture,
		telemetry.SeverityHigh, 0)

	if err := s.consume(grant); err != nil {
		return nil, 0, err
	}
	if err := s.StartStreaming(); err != nil {
		return nil, 0, err
	}

	data, timestampNS, err := s.device.ReadFrame()
	if err != nil {
		s.ring.EmitSimple(s.deviceID, telemetry.EventFrameDropped,
			telemetry.SeverityMedium, 0)
		return nil, 0, fmt.Errorf("capture: read iris frame: %w", err)
	}

	buffer, err := secret.NewFromBytes(data)
	if err != nil {
		secret.Zero(data)
		return nil, 0, fmt.Errorf("capture: protect iris frame: %w", err)
	}
	s.nextSequence()
	return buffer, timestampNS, nil
}

// Fused captures one frame and pairs it with the closest-in-time
// metadata buffer from candidates. A frame with no metadata within
// tolerance is still delivered, with a nil pairing; losing metadata
// must not drop video.
func (s *Session) Fused(grant policy.Grant, candidates []metadata.Buffer) (*Frame, *metadata.Buffer, error) {
	s.ring.EmitSimple(s.deviceID, telemetry.EventFusedCapture,
		telemetry.SeverityMedium, 0)

	frame, err := s.Frame(grant)
	if err != nil {
		return nil, nil, err
	}

	index, matched := fusion.Sync(frame.TimestampNS, candidates)
	if !matched {
		return frame, nil, nil
	}
	s.ring.EmitSimple(s.deviceID, telemetry.EventMetaRead,
		telemetry.SeverityInfo, uint32(index))
	return frame, &candidates[index], nil
}

// StartStreaming starts the device stream if it is not already
// running. Emits a capture-start event on the transition.
func (s *Session) StartStreaming() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errors.New("capture: session closed")
	}
	if s.streaming {
		return nil
	}
	if err := s.device.StartStream(); err != nil {
		return fmt.Errorf("capture: start stream: %w", err)
	}
	s.streaming = true
	s.ring.EmitSimple(s.deviceID, telemetry.EventCaptureStart,
		telemetry.SeverityInfo, 0)
	return nil
}

// StopStreaming stops the device stream if it is running. Emits a
// capture-stop event on the transition.
func (s *Session) StopStreaming() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopStreamingLocked()
}

func (s *Session) stopStreamingLocked() error {
	if !s.streaming {
		return nil
	}
	if err := s.device.StopStream(); err != nil {
		return fmt.Errorf("capture: stop stream: %w", err)
	}
	s.streaming = false
	s.ring.EmitSimple(s.deviceID, telemetry.EventCaptureStop,
		telemetry.SeverityInfo, 0)
	return nil
}

// Close stops streaming and emits a device-close event. Idempotent.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	err := s.stopStreamingLocked()
	s.closed = true
	s.ring.EmitSimple(s.deviceID, telemetry.EventDeviceClose,
		telemetry.SeverityInfo, 0)
	return err
}

// consume spends the grant, verifying it was issued for this device.
func (s *Session) consume(grant policy.Grant) error {
	if err := grant.Consume(); err != nil {
		s.ring.EmitSimple(s.deviceID, telemetry.EventPolicyViolation,
			telemetry.SeverityCritical, 0)
		return err
	}
	if grant.DeviceID() != s.deviceID {
		s.ring.EmitSimple(s.deviceID, telemetry.EventPolicyViolation,
			telemetry.SeverityCritical, grant.DeviceID())
		return fmt.Errorf("%w: grant issued for device %d, session is device %d",
			policy.ErrDenied, grant.DeviceID(), s.deviceID)
	}
	return nil
}

func (s *Session) nextSequence() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sequence++
	return s.sequence
}
