package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		in         string
		wantURL    bool
		wantText   string
		wantSource string
		lat, lng   float64
	}{
		{name: "plain text", in: "  Cafe Central  ", wantText: "Cafe Central"},
		{name: "host without scheme is text", in: "maps.google.com/place/Foo", wantText: "maps.google.com/place/Foo"},
		{
			name: "at pair in path", in: "https://www.google.com/maps/place/Blue+Bottle/@37.7765,-122.4233,17z",
			wantURL: true, wantSource: HintAtPath, lat: 37.7765, lng: -122.4233,
		},
		{
			name: "data pair", in: "https://www.google.com/maps/place/Foo/data=!3m1!4b1!4m6!3m5!1s0x0:0x1!8m2!3d40.1!4d-73.2",
			wantURL: true, wantSource: HintDataPair, lat: 40.1, lng: -73.2,
		},
		{name: "out of range pair ignored", in: "https://www.google.com/maps/@95.0,10.0,3z", wantURL: true},
		{name: "short link has no hint", in: "https://maps.app.goo.gl/abc123", wantURL: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := Classify(tc.in)
			assert.Equal(t, tc.in, q.Raw)
			assert.Equal(t, tc.wantURL, q.IsURL)
			if tc.wantText != "" {
				assert.Equal(t, tc.wantText, q.Text)
			}
			if tc.wantURL {
				assert.NotNil(t, q.URL)
			} else {
				assert.Nil(t, q.URL)
			}
			if tc.wantSource == "" {
				assert.Nil(t, q.Hint)
				assert.Empty(t, q.HintSource)
				return
			}
			require.NotNil(t, q.Hint)
			assert.Equal(t, tc.wantSource, q.HintSource)
			assert.InDelta(t, tc.lat, q.Hint.Lat, 1e-9)
			assert.InDelta(t, tc.lng, q.Hint.Lng, 1e-9)
		})
	}
}

func TestClassify_AtPairWinsOverDataPair(t *testing.T) {
	q := Classify("https://www.google.com/maps/place/Foo/@1.5,2.5,17z/data=!8m2!3d10.1!4d20.2")
	require.NotNil(t, q.Hint)
	assert.Equal(t, HintAtPath, q.HintSource)
	assert.InDelta(t, 1.5, q.Hint.Lat, 1e-9)
}

func TestClassify_PlusCodeInText(t *testing.T) {
	q := Classify("849VCWC8+R9 Mountain View")
	assert.False(t, q.IsURL)
	require.NotNil(t, q.Hint)
	assert.Equal(t, HintPlusCode, q.HintSource)
	assert.InDelta(t, 37.422, q.Hint.Lat, 0.001)
	assert.InDelta(t, -122.084, q.Hint.Lng, 0.001)
}

func TestClassify_PlusCodeInPlaceSegment(t *testing.T) {
	q := Classify("https://www.google.com/maps/place/849VCWC8+R9")
	require.NotNil(t, q.Hint)
	assert.Equal(t, HintPlusCode, q.HintSource)
	assert.InDelta(t, 37.422, q.Hint.Lat, 0.001)
}

func TestClassify_ShortPlusCodeIgnored(t *testing.T) {
	q := Classify("CWC8+R9 Mountain View")
	assert.Nil(t, q.Hint)
}
