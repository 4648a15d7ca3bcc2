package grid

import "github.com/shopspring/decimal"

// Summary aggregates a set of day states.
type Summary struct {
	Days    int             `json:"days"`
	Missing int             `json:"missing"`
	Unrated int             `json:"unrated"`
	Rated   int             `json:"rated"`
	ByScore [6]int          `json:"byScore"`
	Mean    decimal.Decimal `json:"mean"`
}

// Logged is the number of days with a record.
func (s Summary) Logged() int { return s.Unrated + s.Rated }

// Summarize counts states by kind and averages the ratings, rounded to two places.
func Summarize(states []DayState) Summary {
	s := Summary{Days: len(states)}
	total := 0
	for _, st := range states {
		switch st.Kind {
		case Missing:
			s.Missing++
		case Unrated:
			s.Unrated++
		case Rated:
			s.Rated++
			s.ByScore[st.Rating]++
			total += st.Rating
		}
	}
	if s.Rated > 0 {
		s.Mean = decimal.NewFromInt(int64(total)).
			DivRound(decimal.NewFromInt(int64(s.Rated)), 2)
	}
	return s
}

// Flatten concatenates month rows.
func Flatten(months [][]DayState) []DayState {
	var out []DayState
	for _, m := range months {
		out = append(out, m...)
	}
	return out
}
