package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const sydneyID = "ChIJN1t_tDeuEmsRUsoyG83frY4"

func TestExtractIdentifier(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"q place_id", "https://maps.google.com/?q=place_id:ABC123", "ABC123"},
		{"q place_id any case", "https://www.google.com/maps/place/?q=PLACE_ID:" + sydneyID, sydneyID},
		{"query_place_id", "https://www.google.com/maps/search/?api=1&query=Google&query_place_id=" + sydneyID, sydneyID},
		{"path data segment", "https://www.google.com/maps/place/Foo/@-33.86,151.19,17z/data=!4m6!3m5!1s" + sydneyID + "!8m2!3d-33.86!4d151.19", sydneyID},
		{"data query param", "https://www.google.com/maps?data=!4m2!3m1!1s" + sydneyID, sydneyID},
		{"hex feature id", "https://www.google.com/maps/place/Foo/data=!4m2!3m1!1s0x89c259a61c75684f:0x79d31adb123348d2", ""},
		{"short token in data", "https://www.google.com/maps/place/Foo/data=!1sen!2sus", ""},
		{"cid", "https://maps.google.com/?cid=1234567890", ""},
		{"bad q token", "https://maps.google.com/?q=place_id:a b", ""},
		{"no pattern", "https://www.google.com/maps/place/Cafe+Central/@48.21,16.36,17z", ""},
		{"empty", "", ""},
		{"garbage", "%%%zz", ""},
		{"text", "Cafe Central", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractIdentifier(tc.in)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, got, ExtractIdentifier(tc.in), "second call must agree")
		})
	}
}

func TestExtractIdentifier_QueryBeatsPath(t *testing.T) {
	in := "https://www.google.com/maps/place/Foo/data=!1sAAAAAAAAAAAAAAAAAAAA?q=place_id:" + sydneyID
	assert.Equal(t, sydneyID, ExtractIdentifier(in))
}
