package repo

import "testing"

func TestParseCityID(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{"bare string", `"3f1c"`, "3f1c", false},
		{"object", `{"id":"3f1c","name":"Wien"}`, "3f1c", false},
		{"array", `[{"id":"3f1c"}]`, "3f1c", false},
		{"empty", ``, "", true},
		{"null", `null`, "", true},
		{"postgrest error", `{"code":"42883","message":"function upsert_city does not exist"}`, "", true},
		{"empty array", `[]`, "", true},
		{"garbage", `<html>`, "", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseCityID(tc.body)
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
			if got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestNewSupabaseClient_RequiresCredentials(t *testing.T) {
	if _, err := NewSupabaseClient("", "key"); err == nil {
		t.Fatal("expected error without url")
	}
	if _, err := NewSupabaseClient("https://x.supabase.co", " "); err == nil {
		t.Fatal("expected error without key")
	}
}
