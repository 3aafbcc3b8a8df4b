package entity

type AstronomyShow struct {
	Base
	Title       string      `db:"title"`
	Description string      `db:"description"`
	Image       *string     `db:"image"`
	Themes      []ShowTheme `db:"-"`
}

func (s AstronomyShow) ThemeNames() []string {
	names := make([]string, 0, len(s.Themes))
	for _, t := range s.Themes {
		names = append(names, t.Name)
	}
	return names
}

// AstronomyShowFilter: zero values add no condition.
type AstronomyShowFilter struct {
	Title    string
	ThemeIDs []int64
}
