package nimsforestkiosk

import (
	"bytes"
	"context"
	"errors"
	"image/jpeg"
	"testing"

	smarttv "github.com/nimsforest/nimsforestsmarttv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDisplay struct {
	frames  [][]byte
	err     error
	stopped int
}

func (f *fakeDisplay) DisplayImageJPEG(ctx context.Context, tv *smarttv.TV, data []byte) error {
	if f.err != nil {
		return f.err
	}
	f.frames = append(f.frames, data)
	return nil
}

func (f *fakeDisplay) Stop(ctx context.Context, tv *smarttv.TV) error {
	f.stopped++
	return nil
}

func TestSmartTVTargetSkipsUnchangedFrames(t *testing.T) {
	display := &fakeDisplay{}
	released := false
	target, err := newSmartTVTarget(&smarttv.TV{Name: "Lobby"}, display, func() { released = true }, WithFrameSize(cardWidth, cardHeight))
	require.NoError(t, err)
	assert.Equal(t, "SmartTV(Lobby)", target.Name())

	ctx := context.Background()
	idle := cardState("?casa=CASA_1", Snapshot{Button: ButtonIdle})
	require.NoError(t, target.Update(ctx, idle))
	require.NoError(t, target.Update(ctx, cardState("?casa=CASA_1", Snapshot{Button: ButtonIdle})))
	require.Len(t, display.frames, 1)

	frame, err := jpeg.Decode(bytes.NewReader(display.frames[0]))
	require.NoError(t, err)
	assert.Equal(t, cardWidth, frame.Bounds().Dx())
	assert.Equal(t, cardHeight, frame.Bounds().Dy())

	require.NoError(t, target.Update(ctx, cardState("?casa=CASA_1", Snapshot{Button: ButtonLoading})))
	assert.Len(t, display.frames, 2)

	require.NoError(t, target.Stop(ctx))
	assert.Equal(t, 1, display.stopped)
	require.NoError(t, target.Close())
	assert.True(t, released)
}

func TestSmartTVTargetRetriesAfterError(t *testing.T) {
	display := &fakeDisplay{err: errors.New("tv offline")}
	target, err := newSmartTVTarget(nil, display, nil, WithFrameSize(cardWidth, cardHeight), WithJPEGQuality(60))
	require.NoError(t, err)
	assert.Equal(t, "SmartTV", target.Name())

	ctx := context.Background()
	state := cardState("?casa=PREDIO_2", Snapshot{})
	err = target.Update(ctx, state)
	assert.ErrorContains(t, err, "display on TV")

	display.err = nil
	require.NoError(t, target.Update(ctx, state))
	assert.Len(t, display.frames, 1, "a failed frame is not cached")
	assert.NoError(t, target.Close())
}

func TestSmartTVTargetOptionsValidated(t *testing.T) {
	_, err := newSmartTVTarget(nil, &fakeDisplay{}, nil, WithFrameSize(0, 1080))
	assert.Error(t, err)

	_, err = newSmartTVTarget(nil, &fakeDisplay{}, nil, WithJPEGQuality(101))
	assert.Error(t, err)
}
