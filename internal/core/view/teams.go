package view

import (
	"sort"

	"github.com/pirates/party-console/internal/core/domain"
)

// TeamGroup is the members of one team. Team is nil for members the manager
// has not assigned yet.
type TeamGroup struct {
	Team    *int                 `json:"team"`
	Members []domain.PartyMember `json:"members"`
}

// GroupByTeam splits members into teams: the unassigned group first, then
// teams in ascending order. Member order within a group is preserved.
func GroupByTeam(members []domain.PartyMember) []TeamGroup {
	var unassigned []domain.PartyMember
	byTeam := make(map[int][]domain.PartyMember)
	for _, m := range members {
		if m.Team == nil {
			unassigned = append(unassigned, m)
			continue
		}
		byTeam[*m.Team] = append(byTeam[*m.Team], m)
	}

	teams := make([]int, 0, len(byTeam))
	for t := range byTeam {
		teams = append(teams, t)
	}
	sort.Ints(teams)

	groups := make([]TeamGroup, 0, len(teams)+1)
	if len(unassigned) > 0 {
		groups = append(groups, TeamGroup{Members: unassigned})
	}
	for _, t := range teams {
		team := t
		groups = append(groups, TeamGroup{Team: &team, Members: byTeam[t]})
	}
	return groups
}
