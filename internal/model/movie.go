package model

// MovieMeta is what the metadata API gives us about a movie. Only the
// fields the app actually renders are kept.
type MovieMeta struct {
	ID          int64
	Title       string
	PosterPath  string
	Tagline     string
	ReleaseDate string
	Overview    string
	Genres      []string
	Budget      int64
	Revenue     int64
}

type CastMember struct {
	Name      string
	Character string
}

type Credits struct {
	Director string
	Cast     []CastMember
}

type Video struct {
	Key  string
	Site string
	Type string
}

// StreamingOffer is a single provider offer in a single region.
type StreamingOffer struct {
	Provider string
	Region   string
	Link     string
}
