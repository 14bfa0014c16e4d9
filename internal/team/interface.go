package team

// Entity defines the operations a team entity answers. It exists so the
// game entity and the HTTP layer can be tested against mock teams.
type Entity interface {
	AddPlayer(username, country string) (string, error)
	RecordClick(username string) error
	Stats() ([]PlayerStat, error)
	CountryStats() ([]CountryStat, error)
	TotalClicks() (int, error)
	PlayerCount() (int, error)
	Roster() ([]Member, error)
	SetName(name string)
	Name() string
	Attach(v *Viewer)
	Detach(v *Viewer)
	Refresh(v *Viewer)
}

// Directory hands out team entities by id, creating them lazily.
type Directory interface {
	Team(id string) (Entity, error)
}
