package places

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawPlace_LegacyShape(t *testing.T) {
	payload := `{
		"place_id":"ChIJlegacy","name":"Old Diner",
		"formatted_address":"5 Elm St, Springfield, IL 62701",
		"geometry":{"location":{"lat":39.78,"lng":-89.65}},
		"address_components":[{"long_name":"Springfield","short_name":"Springfield","types":["locality","political"]}],
		"photos":[{"photo_reference":"CmRaAAAA","width":400}],
		"user_ratings_total":"87","rating":4.1,"price_level":1,
		"opening_hours":{"weekday_text":["Monday: Closed"]},
		"website":"https://diner.example","formatted_phone_number":"(217) 555-0100"
	}`
	var raw RawPlace
	require.NoError(t, json.Unmarshal([]byte(payload), &raw))

	assert.Equal(t, "ChIJlegacy", raw.Identifier())
	assert.Equal(t, Text("Old Diner"), raw.LegacyName)
	assert.Empty(t, raw.ResourceName)
	require.NotNil(t, raw.Geometry)
	assert.Equal(t, 39.78, raw.Geometry.Location.Lat.Value)
	assert.Equal(t, "Springfield", raw.LegacyAddressComponents[0].Long())
	assert.Equal(t, "CmRaAAAA", raw.Photos[0].Reference())
	assert.Equal(t, 87, *raw.UserRatingsTotal.Int())
	assert.Equal(t, 1, *raw.LegacyPriceLevel.Ptr())
	assert.Equal(t, []string{"Monday: Closed"}, raw.OpeningHours.Lines())
}

func TestText_Shapes(t *testing.T) {
	cases := map[string]Text{
		`"plain"`:                          "plain",
		`{"text":"loc","languageCode":"x"}`: "loc",
		`null`:                             "",
		`42`:                               "",
	}
	for in, want := range cases {
		var got Text
		require.NoError(t, json.Unmarshal([]byte(in), &got), in)
		assert.Equal(t, want, got, in)
	}
}

func TestNumber_Coercion(t *testing.T) {
	var n Number
	require.NoError(t, json.Unmarshal([]byte(`"4.5"`), &n))
	assert.True(t, n.Valid)
	assert.Equal(t, 4.5, *n.Float())

	require.NoError(t, json.Unmarshal([]byte(`"n/a"`), &n))
	assert.False(t, n.Valid)
	assert.Nil(t, n.Float())
	assert.Nil(t, n.Int())

	require.NoError(t, json.Unmarshal([]byte(`null`), &n))
	assert.False(t, n.Valid)
}

func TestPriceLevel_Shapes(t *testing.T) {
	cases := map[string]*int{
		`"PRICE_LEVEL_VERY_EXPENSIVE"`: intp(4),
		`"PRICE_LEVEL_FREE"`:           intp(0),
		`3`:                            intp(3),
		`"PRICE_LEVEL_UNSPECIFIED"`:    nil,
		`9`:                            nil,
	}
	for in, want := range cases {
		var p PriceLevel
		require.NoError(t, json.Unmarshal([]byte(in), &p), in)
		assert.Equal(t, want, p.Ptr(), in)
	}
}

func TestOpeningHours_NilSafe(t *testing.T) {
	var o *OpeningHours
	assert.Nil(t, o.Lines())
}

func intp(i int) *int { return &i }
