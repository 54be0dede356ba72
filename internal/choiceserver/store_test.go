package choiceserver

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func values(choices []Choice) []string {
	out := make([]string, len(choices))
	for i, c := range choices {
		out[i] = c.Value
	}
	return out
}

func TestSearchCountries(t *testing.T) {
	s := openTestStore(t)

	tests := []struct {
		name string
		q    string
		want []string
	}{
		{"Prefix", "fi", []string{"fj", "fi"}},
		{"CaseInsensitive", "FR", []string{"fr"}},
		{"Contains", "land", []string{"fi", "nl", "pl"}},
		{"PrefixFirst", "u", []string{"ug", "ua", "gb", "us", "be", "pt"}},
		{"WildcardsAreLiteral", "%", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.SearchCountries(context.Background(), tt.q, 0)
			if err != nil {
				t.Fatalf("SearchCountries: %v", err)
			}
			if diff := cmp.Diff(tt.want, values(got)); diff != "" {
				t.Fatalf("values mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSearchCities(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	got, err := s.SearchCities(ctx, "l", "fr", 3)
	if err != nil {
		t.Fatalf("SearchCities: %v", err)
	}
	if diff := cmp.Diff([]string{"Lens", "Lille", "Lorient"}, values(got)); diff != "" {
		t.Fatalf("narrowed mismatch (-want +got):\n%s", diff)
	}

	all, err := s.SearchCities(ctx, "lond", "", 0)
	if err != nil {
		t.Fatalf("SearchCities: %v", err)
	}
	if diff := cmp.Diff([]string{"London", "London"}, values(all)); diff != "" {
		t.Fatalf("unnarrowed mismatch (-want +got):\n%s", diff)
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "choices.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	ctx := context.Background()
	if err := s.AddCountry(ctx, "is", "Iceland"); err != nil {
		t.Fatalf("AddCountry: %v", err)
	}
	if err := s.AddCity(ctx, "is", "Reykjavík"); err != nil {
		t.Fatalf("AddCity: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	got, err := s.SearchCities(ctx, "reyk", "is", 0)
	if err != nil {
		t.Fatalf("SearchCities: %v", err)
	}
	if diff := cmp.Diff([]string{"Reykjavík"}, values(got)); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	countries, err := s.SearchCountries(ctx, "fr", 0)
	if err != nil {
		t.Fatalf("SearchCountries: %v", err)
	}
	if len(countries) != 1 {
		t.Fatalf("expected seed not duplicated, got %v", countries)
	}
}
