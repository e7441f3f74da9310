package nimsforestkiosk

import (
	"bytes"
	"context"
	"fmt"
	"image/jpeg"
	"sync"

	smarttv "github.com/nimsforest/nimsforestsmarttv"
)

// imageDisplayer is the part of the smarttv renderer the target drives.
type imageDisplayer interface {
	DisplayImageJPEG(ctx context.Context, tv *smarttv.TV, data []byte) error
	Stop(ctx context.Context, tv *smarttv.TV) error
}

// SmartTVTarget shows the kiosk card on a Smart TV via DLNA, for a lobby screen
// mirroring the visitor's kiosk.
type SmartTVTarget struct {
	tv             *smarttv.TV
	display        imageDisplayer
	release        func()
	width, height  int
	quality        int
	mu             sync.Mutex
	lastImageBytes []byte // Cache to avoid redundant updates
}

// TVOption configures a SmartTVTarget.
type TVOption func(*SmartTVTarget)

// WithFrameSize sets the size of the image sent to the TV.
func WithFrameSize(width, height int) TVOption {
	return func(t *SmartTVTarget) {
		t.width = width
		t.height = height
	}
}

// WithJPEGQuality sets the JPEG encoding quality (1-100).
func WithJPEGQuality(q int) TVOption {
	return func(t *SmartTVTarget) {
		t.quality = q
	}
}

// NewSmartTVTarget creates a target that displays the kiosk on a Smart TV.
func NewSmartTVTarget(tv *smarttv.TV, opts ...TVOption) (*SmartTVTarget, error) {
	renderer, err := smarttv.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("create smarttv renderer: %w", err)
	}
	return newSmartTVTarget(tv, renderer, func() { renderer.Close() }, opts...)
}

func newSmartTVTarget(tv *smarttv.TV, display imageDisplayer, release func(), opts ...TVOption) (*SmartTVTarget, error) {
	target := &SmartTVTarget{
		tv:      tv,
		display: display,
		release: release,
		width:   1920,
		height:  1080,
		quality: 85,
	}

	for _, opt := range opts {
		opt(target)
	}

	if target.width <= 0 || target.height <= 0 {
		return nil, fmt.Errorf("invalid frame size %dx%d", target.width, target.height)
	}
	if target.quality < 1 || target.quality > 100 {
		return nil, fmt.Errorf("invalid JPEG quality %d", target.quality)
	}
	return target, nil
}

// Name implements Target.
func (t *SmartTVTarget) Name() string {
	if t.tv != nil {
		return fmt.Sprintf("SmartTV(%s)", t.tv.Name)
	}
	return "SmartTV"
}

// Update implements Target.
func (t *SmartTVTarget) Update(ctx context.Context, state *ViewState) error {
	frame := RenderCard(state, t.width, t.height)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, frame, &jpeg.Options{Quality: t.quality}); err != nil {
		return fmt.Errorf("convert to JPEG: %w", err)
	}
	jpegData := buf.Bytes()

	t.mu.Lock()
	defer t.mu.Unlock()

	// Skip if image hasn't changed
	if bytes.Equal(jpegData, t.lastImageBytes) {
		return nil
	}

	if err := t.display.DisplayImageJPEG(ctx, t.tv, jpegData); err != nil {
		return fmt.Errorf("display on TV: %w", err)
	}
	t.lastImageBytes = jpegData
	return nil
}

// Close implements Target.
func (t *SmartTVTarget) Close() error {
	if t.release != nil {
		t.release()
	}
	return nil
}

// Stop stops playback on the TV.
func (t *SmartTVTarget) Stop(ctx context.Context) error {
	return t.display.Stop(ctx, t.tv)
}
