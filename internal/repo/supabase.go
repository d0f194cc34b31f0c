package repo

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/supabase-community/supabase-go"
)

// NewSupabaseClient builds a client for the project at url.
func NewSupabaseClient(url, anonKey string) (*supabase.Client, error) {
	if strings.TrimSpace(url) == "" || strings.TrimSpace(anonKey) == "" {
		return nil, eris.New("supabase: url and anon key are required")
	}
	c, err := supabase.NewClient(url, anonKey, &supabase.ClientOptions{})
	if err != nil {
		return nil, eris.Wrap(err, "supabase: init client")
	}
	return c, nil
}

// SupabaseCities resolves city names through a Postgres function exposed by
// PostgREST. The function takes {p_name, p_state, p_country} and returns the
// city id as a bare string, an object with "id", or a one-row array of such
// objects.
type SupabaseCities struct {
	Client *supabase.Client
	RPC    string
}

type cityRPCArgs struct {
	Name    string `json:"p_name"`
	State   string `json:"p_state"`
	Country string `json:"p_country"`
}

// ResolveCity implements the city resolver used by imports.
func (s SupabaseCities) ResolveCity(_ context.Context, name, state, country string) (string, error) {
	out := s.Client.Rpc(s.RPC, "", cityRPCArgs{Name: name, State: state, Country: country})
	id, err := parseCityID(out)
	if err != nil {
		return "", eris.Wrapf(err, "supabase: rpc %s", s.RPC)
	}
	return id, nil
}

func parseCityID(body string) (string, error) {
	body = strings.TrimSpace(body)
	if body == "" || body == "null" {
		return "", eris.New("empty response")
	}
	var asString string
	if err := json.Unmarshal([]byte(body), &asString); err == nil && asString != "" {
		return asString, nil
	}
	type row struct {
		ID   string `json:"id"`
		Code string `json:"code"`
		Msg  string `json:"message"`
	}
	var one row
	if err := json.Unmarshal([]byte(body), &one); err == nil {
		if one.ID != "" {
			return one.ID, nil
		}
		if one.Msg != "" {
			return "", eris.Errorf("%s %s", one.Code, one.Msg)
		}
	}
	var many []row
	if err := json.Unmarshal([]byte(body), &many); err == nil && len(many) > 0 && many[0].ID != "" {
		return many[0].ID, nil
	}
	return "", eris.Errorf("unexpected response %.80q", body)
}

// SupabaseUsers verifies bearer tokens against Supabase Auth.
type SupabaseUsers struct {
	Client *supabase.Client
}

// VerifyToken returns the user id the token was issued to.
func (s SupabaseUsers) VerifyToken(_ context.Context, token string) (string, error) {
	resp, err := s.Client.Auth.WithToken(token).GetUser()
	if err != nil {
		return "", eris.Wrap(err, "supabase: get user")
	}
	if resp == nil {
		return "", eris.New("supabase: empty user")
	}
	return resp.ID.String(), nil
}
