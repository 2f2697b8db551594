package leaderboard

import "sort"

// Entry is one leaderboard row as served to clients.
type Entry struct {
	Name string `json:"name"`
	Exp  int    `json:"exp"`
}

// Competitor is the minimal view of a user the ranker needs. Callers supply
// competitors in a stable enumeration order; ties keep that order.
type Competitor struct {
	ID   int64
	Name string
	Exp  int
}

// TopN returns the first n competitors by descending XP. Ties preserve the
// input order, so equal callers always see the same board.
func TopN(competitors []Competitor, n int) []Entry {
	if n <= 0 {
		return []Entry{}
	}

	ranked := make([]Competitor, len(competitors))
	copy(ranked, competitors)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Exp > ranked[j].Exp
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}

	top := make([]Entry, 0, len(ranked))
	for _, c := range ranked {
		top = append(top, Entry{Name: c.Name, Exp: c.Exp})
	}
	return top
}

// RankOf returns the 1-based position of id in the full descending-XP
// ordering, or nil when id is absent.
func RankOf(competitors []Competitor, id int64) *int {
	ranked := make([]Competitor, len(competitors))
	copy(ranked, competitors)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Exp > ranked[j].Exp
	})

	for i, c := range ranked {
		if c.ID == id {
			rank := i + 1
			return &rank
		}
	}
	return nil
}
