package memory

import (
	"time"

	"github.com/riskibarqy/league-standings/internal/domain/league"
	"github.com/riskibarqy/league-standings/internal/domain/match"
	"github.com/riskibarqy/league-standings/internal/domain/player"
	"github.com/riskibarqy/league-standings/internal/domain/team"
)

const (
	TeamIDAguilas  = "3f0e8f8a-1c55-4c36-9a3e-0a4b5b1f0001"
	TeamIDHalcones = "3f0e8f8a-1c55-4c36-9a3e-0a4b5b1f0002"
	TeamIDLeones   = "3f0e8f8a-1c55-4c36-9a3e-0a4b5b1f0003"
	TeamIDToros    = "3f0e8f8a-1c55-4c36-9a3e-0a4b5b1f0004"
	TeamIDPanteras = "3f0e8f8a-1c55-4c36-9a3e-0a4b5b1f0101"
	TeamIDGacelas  = "3f0e8f8a-1c55-4c36-9a3e-0a4b5b1f0102"
	TeamIDLobas    = "3f0e8f8a-1c55-4c36-9a3e-0a4b5b1f0103"
)

var seedCreatedAt = time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)

func SeedTeams() []team.Team {
	rows := []team.Team{
		{ID: TeamIDAguilas, Name: "Águilas", Category: league.CategoryMen, Manager: "Ramiro Díaz"},
		{ID: TeamIDHalcones, Name: "Halcones", Category: league.CategoryMen, Manager: "Julián Ortega"},
		{ID: TeamIDLeones, Name: "Leones", Category: league.CategoryMen, Manager: "Sergio Paredes"},
		{ID: TeamIDToros, Name: "Toros", Category: league.CategoryMen, Manager: "Esteban Ruiz"},
		{ID: TeamIDPanteras, Name: "Panteras", Category: league.CategoryWomen, Manager: "Lucía Romero"},
		{ID: TeamIDGacelas, Name: "Gacelas", Category: league.CategoryWomen, Manager: "Marina Vidal"},
		{ID: TeamIDLobas, Name: "Lobas", Category: league.CategoryWomen, Manager: "Carla Méndez"},
	}
	for i := range rows {
		rows[i].CreatedAt = seedCreatedAt
		rows[i].UpdatedAt = seedCreatedAt
	}
	return rows
}

func SeedMatches() []match.Match {
	day := func(d int) time.Time { return time.Date(2026, 2, d, 19, 0, 0, 0, time.UTC) }
	rows := []match.Match{
		{ID: "8c1d2e3f-0000-4000-8000-000000000001", HomeTeamID: TeamIDAguilas, AwayTeamID: TeamIDHalcones, HomeGoals: 3, AwayGoals: 1, PlayedAt: day(7)},
		{ID: "8c1d2e3f-0000-4000-8000-000000000002", HomeTeamID: TeamIDLeones, AwayTeamID: TeamIDToros, HomeGoals: 2, AwayGoals: 2, PlayedAt: day(7)},
		{ID: "8c1d2e3f-0000-4000-8000-000000000003", HomeTeamID: TeamIDHalcones, AwayTeamID: TeamIDLeones, HomeGoals: 0, AwayGoals: 1, PlayedAt: day(14)},
		{ID: "8c1d2e3f-0000-4000-8000-000000000004", HomeTeamID: TeamIDToros, AwayTeamID: TeamIDAguilas, HomeGoals: 1, AwayGoals: 1, PlayedAt: day(14)},
		{ID: "8c1d2e3f-0000-4000-8000-000000000101", HomeTeamID: TeamIDPanteras, AwayTeamID: TeamIDGacelas, HomeGoals: 2, AwayGoals: 0, PlayedAt: day(8)},
		{ID: "8c1d2e3f-0000-4000-8000-000000000102", HomeTeamID: TeamIDLobas, AwayTeamID: TeamIDPanteras, HomeGoals: 1, AwayGoals: 1, PlayedAt: day(15)},
	}
	for i := range rows {
		rows[i].CreatedAt = rows[i].PlayedAt
		rows[i].UpdatedAt = rows[i].PlayedAt
	}
	return rows
}

func SeedPlayers() []player.Player {
	rows := []player.Player{
		{ID: "b7a9c0d1-0000-4000-9000-000000000001", Name: "Diego Salas", TeamID: TeamIDAguilas, Goals: 2, YellowCards: 1},
		{ID: "b7a9c0d1-0000-4000-9000-000000000002", Name: "Tomás Vera", TeamID: TeamIDAguilas, Goals: 2},
		{ID: "b7a9c0d1-0000-4000-9000-000000000003", Name: "Hugo Ibarra", TeamID: TeamIDHalcones, Goals: 1, YellowCards: 2},
		{ID: "b7a9c0d1-0000-4000-9000-000000000004", Name: "Mateo Ríos", TeamID: TeamIDLeones, Goals: 3, RedCards: 1},
		{ID: "b7a9c0d1-0000-4000-9000-000000000005", Name: "Bruno Celis", TeamID: TeamIDToros, Goals: 3, YellowCards: 1},
		{ID: "b7a9c0d1-0000-4000-9000-000000000101", Name: "Ana Quiroga", TeamID: TeamIDPanteras, Goals: 3},
		{ID: "b7a9c0d1-0000-4000-9000-000000000102", Name: "Sofía Lagos", TeamID: TeamIDGacelas, YellowCards: 1},
		{ID: "b7a9c0d1-0000-4000-9000-000000000103", Name: "Valeria Soto", TeamID: TeamIDLobas, Goals: 1, YellowCards: 1},
	}
	for i := range rows {
		rows[i].CreatedAt = seedCreatedAt
		rows[i].UpdatedAt = seedCreatedAt
	}
	return rows
}
