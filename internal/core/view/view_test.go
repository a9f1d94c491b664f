package view

import (
	"testing"
	"time"

	"github.com/pirates/party-console/internal/core/domain"
)

func TestPaginate(t *testing.T) {
	tests := []struct {
		name               string
		total, page, size  int
		wantPage, wantSize int
		wantPages          int
		wantPrev, wantNext bool
	}{
		{"defaults", 35, 0, 0, 0, 10, 4, false, true},
		{"middle", 35, 2, 10, 2, 10, 4, true, true},
		{"last", 35, 3, 10, 3, 10, 4, true, false},
		{"past end clamps", 35, 9, 10, 3, 10, 4, true, false},
		{"negative page", 35, -1, 10, 0, 10, 4, false, true},
		{"size capped", 500, 0, 1000, 0, 100, 5, false, true},
		{"empty", 0, 3, 10, 0, 10, 0, false, false},
		{"exact fit", 20, 1, 10, 1, 10, 2, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Paginate(tt.total, tt.page, tt.size)
			if got.Page != tt.wantPage || got.PageSize != tt.wantSize || got.TotalPages != tt.wantPages {
				t.Fatalf("got page=%d size=%d pages=%d", got.Page, got.PageSize, got.TotalPages)
			}
			if got.HasPrev != tt.wantPrev || got.HasNext != tt.wantNext {
				t.Fatalf("got prev=%v next=%v", got.HasPrev, got.HasNext)
			}
		})
	}
}

func TestGroupByTeam(t *testing.T) {
	team := func(n int) *int { return &n }
	members := []domain.PartyMember{
		{ID: 1, Name: "a", Team: team(2)},
		{ID: 2, Name: "b"},
		{ID: 3, Name: "c", Team: team(1)},
		{ID: 4, Name: "d", Team: team(2)},
		{ID: 5, Name: "e"},
	}

	groups := GroupByTeam(members)
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}
	if groups[0].Team != nil || len(groups[0].Members) != 2 || groups[0].Members[0].ID != 2 {
		t.Fatalf("unassigned group wrong: %+v", groups[0])
	}
	if *groups[1].Team != 1 || *groups[2].Team != 2 {
		t.Fatalf("teams out of order: %d, %d", *groups[1].Team, *groups[2].Team)
	}
	if groups[2].Members[0].ID != 1 || groups[2].Members[1].ID != 4 {
		t.Fatalf("member order not preserved: %+v", groups[2].Members)
	}
}

func TestGroupByTeam_AllAssigned(t *testing.T) {
	one := 1
	groups := GroupByTeam([]domain.PartyMember{{ID: 1, Team: &one}})
	if len(groups) != 1 || groups[0].Team == nil {
		t.Fatalf("expected a single team group, got %+v", groups)
	}
	if len(GroupByTeam(nil)) != 0 {
		t.Fatalf("expected no groups for no members")
	}
}

func TestNewCountdown(t *testing.T) {
	start := time.Date(2025, 1, 31, 21, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		started time.Time
		now     time.Time
		label   string
		expired bool
	}{
		{"not started", time.Time{}, start, "10:00", false},
		{"just started", start, start, "10:00", false},
		{"partway", start, start.Add(4*time.Minute + 30*time.Second), "05:30", false},
		{"rounds up", start, start.Add(9*time.Minute + 59*time.Second + 500*time.Millisecond), "00:01", false},
		{"over", start, start.Add(10 * time.Minute), "00:00", true},
		{"long over", start, start.Add(time.Hour), "00:00", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewCountdown(tt.started, 0, tt.now)
			if got.Label != tt.label || got.Expired != tt.expired {
				t.Fatalf("got %q expired=%v, want %q expired=%v", got.Label, got.Expired, tt.label, tt.expired)
			}
		})
	}
}

func TestFormatChatTime(t *testing.T) {
	day := func(h, m int) time.Time { return time.Date(2025, 1, 31, h, m, 11, 0, time.UTC) }
	tests := map[string]time.Time{
		"오전 12:00": day(0, 0),
		"오전 9:05":  day(9, 5),
		"오후 12:30": day(12, 30),
		"오후 4:05":  day(16, 5),
		"":         {},
	}
	for want, in := range tests {
		if got := FormatChatTime(in); got != want {
			t.Fatalf("FormatChatTime(%v) = %q, want %q", in, got, want)
		}
	}
}
