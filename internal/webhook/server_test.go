package webhook

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dokzlo13/wallslapper/internal/color"
	"github.com/dokzlo13/wallslapper/internal/eventbus"
)

type recordingBus struct {
	events []eventbus.Event
	full   bool
}

func (b *recordingBus) Publish(e eventbus.Event) bool {
	if b.full {
		return false
	}
	b.events = append(b.events, e)
	return true
}

type palettes map[string][]color.Color

func (p palettes) Palette(name string) ([]color.Color, bool) {
	c, ok := p[name]
	return c, ok
}

func post(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandler(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		body     string
		full     bool
		wantCode int
		want     *eventbus.Event
	}{
		{
			name:     "transition",
			path:     "/transition",
			body:     `{"color":"#ff0000","duration":"90s"}`,
			wantCode: http.StatusAccepted,
			want: &eventbus.Event{
				Type: eventbus.EventTypeTransition, Color: color.MustParse("#FF0000"),
				Duration: 90 * time.Second, Source: "webhook",
			},
		},
		{
			name:     "instant_transition",
			path:     "/transition",
			body:     `{"color":"#00FF00"}`,
			wantCode: http.StatusAccepted,
			want: &eventbus.Event{
				Type: eventbus.EventTypeTransition, Color: color.MustParse("#00FF00"), Source: "webhook",
			},
		},
		{
			name:     "pinwheel",
			path:     "/pinwheel",
			body:     `{"palette":"sunset","duration":"1s"}`,
			wantCode: http.StatusAccepted,
			want: &eventbus.Event{
				Type: eventbus.EventTypePinwheel, Palette: "sunset", Duration: time.Second, Source: "webhook",
			},
		},
		{name: "bad_color", path: "/transition", body: `{"color":"red"}`, wantCode: http.StatusBadRequest},
		{name: "bad_json", path: "/transition", body: `{`, wantCode: http.StatusBadRequest},
		{name: "negative_duration", path: "/transition", body: `{"color":"#FFFFFF","duration":"-1s"}`, wantCode: http.StatusBadRequest},
		{name: "unknown_palette", path: "/pinwheel", body: `{"palette":"nope"}`, wantCode: http.StatusNotFound},
		{name: "queue_full", path: "/transition", body: `{"color":"#FFFFFF"}`, full: true, wantCode: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus := &recordingBus{full: tt.full}
			s := NewServer("127.0.0.1", 0, bus, palettes{"sunset": {color.MustParse("#FF5733")}})

			rec := post(t, s.Handler(), tt.path, tt.body)
			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.want == nil {
				assert.Empty(t, bus.events)
				return
			}
			require.Len(t, bus.events, 1)
			assert.Equal(t, *tt.want, bus.events[0])
		})
	}
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	s := NewServer("127.0.0.1", 0, &recordingBus{}, palettes{})
	req := httptest.NewRequest(http.MethodGet, "/transition", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
