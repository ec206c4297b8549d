// Package enrich suggests categorization metadata (genre, mood, style,
// decade) for songs using local pattern tables, with no external API.
// Suggestions are heuristics for pre-filling admin forms; the metadata
// library records what admins actually chose and takes precedence.
package enrich

import (
	"fmt"
	"strconv"
	"strings"
)

// Suggestion is the result of enriching one song. Empty fields mean no
// pattern matched; they are suggestions, never authoritative.
type Suggestion struct {
	Genre  string   `json:"genre,omitempty"`
	Mood   string   `json:"mood,omitempty"`
	Style  string   `json:"style,omitempty"`
	Decade string   `json:"decade,omitempty"`
	Tags   []string `json:"tags,omitempty"`
}

// artistGenres maps known artists to genres. Lowercase keys.
var artistGenres = map[string]string{
	// Rock
	"queen":              "Rock",
	"led zeppelin":       "Rock",
	"the beatles":        "Rock",
	"the rolling stones": "Rock",
	"pink floyd":         "Rock",
	"u2":                 "Rock",
	"foo fighters":       "Rock",
	"nirvana":            "Rock",
	"guns n' roses":      "Rock",
	"eagles":             "Rock",

	// Pop
	"madonna":         "Pop",
	"michael jackson": "Pop",
	"britney spears":  "Pop",
	"taylor swift":    "Pop",
	"ariana grande":   "Pop",
	"ed sheeran":      "Pop",
	"a-ha":            "Pop",

	// Hip Hop
	"drake":            "Hip Hop",
	"kendrick lamar":   "Hip Hop",
	"kanye west":       "Hip Hop",
	"jay-z":            "Hip Hop",
	"eminem":           "Hip Hop",
	"tupac":            "Hip Hop",
	"notorious b.i.g.": "Hip Hop",

	// R&B
	"beyonce":         "R&B",
	"usher":           "R&B",
	"alicia keys":     "R&B",
	"john legend":     "R&B",
	"marvin gaye":     "R&B",
	"stevie wonder":   "R&B",
	"aretha franklin": "R&B",

	// Electronic
	"daft punk":        "Electronic",
	"deadmau5":         "Electronic",
	"calvin harris":    "Electronic",
	"the chainsmokers": "Electronic",
	"avicii":           "Electronic",

	// Country
	"johnny cash":  "Country",
	"dolly parton": "Country",
	"garth brooks": "Country",
	"shania twain": "Country",
	"luke bryan":   "Country",

	// Jazz
	"miles davis":     "Jazz",
	"john coltrane":   "Jazz",
	"ella fitzgerald": "Jazz",
	"louis armstrong": "Jazz",
	"duke ellington":  "Jazz",

	// Reggae
	"bob marley": "Reggae",
	"peter tosh": "Reggae",
}

// genreKeywords catches genre hints inside artist names ("DJ ...",
// "... Quartet"). Checked in a fixed order so suggestions are
// deterministic.
var genreOrder = []string{"Rock", "Pop", "Hip Hop", "Electronic", "Country", "Jazz", "Classical", "R&B"}

var genreKeywords = map[string][]string{
	"Rock":       {"rock", "metal", "punk"},
	"Pop":        {"pop", "boy band", "girl group"},
	"Hip Hop":    {"hip hop", "rapper", "mc"},
	"Electronic": {"electronic", "techno", "house", "edm", "dj"},
	"Country":    {"country", "bluegrass"},
	"Jazz":       {"jazz", "swing", "big band"},
	"Classical":  {"orchestra", "philharmonic", "symphony", "quartet"},
	"R&B":        {"r&b", "soul", "funk"},
}

// moodKeywords maps title keywords to moods. Checked in a fixed order
// so suggestions are deterministic.
var moodOrder = []string{"Upbeat", "Happy", "Sad", "Romantic", "Energetic", "Chill", "Party", "Melancholic"}

var moodKeywords = map[string][]string{
	"Upbeat":      {"party", "celebrate", "dance", "fun", "yeah", "tonight", "shake"},
	"Happy":       {"happy", "joy", "smile", "sunshine", "good time", "great"},
	"Sad":         {"goodbye", "miss you", "broken", "empty", "lost you"},
	"Romantic":    {"love", "heart", "baby", "kiss", "beautiful", "forever", "you and me"},
	"Energetic":   {"power", "energy", "fire", "electric", "wild", "crazy", "go"},
	"Chill":       {"easy", "slow", "mellow", "calm", "peace", "relax", "breeze"},
	"Party":       {"party", "club", "night out", "weekend", "get down"},
	"Melancholic": {"rain", "dark", "cold", "alone"},
}

// upbeatExceptions are songs that read sad but play upbeat.
var upbeatExceptions = []string{
	"tears of a clown",
	"dancing on my own",
	"everybody hurts",
}

// Enrich suggests metadata for a song. releaseYear of 0 means unknown.
// The function is pure: same inputs, same suggestion.
func Enrich(artist, track string, releaseYear int) Suggestion {
	artistLower := strings.ToLower(artist)
	trackLower := strings.ToLower(track)

	s := Suggestion{
		Genre:  genreFor(artistLower),
		Mood:   moodFor(trackLower),
		Style:  styleFor(releaseYear),
		Decade: DecadeFor(releaseYear),
	}

	for _, tag := range []string{s.Genre, s.Mood, s.Style, s.Decade} {
		if tag != "" {
			s.Tags = append(s.Tags, strings.ToLower(tag))
		}
	}
	if len(s.Tags) > 5 {
		s.Tags = s.Tags[:5]
	}
	return s
}

// DecadeFor formats a year as its decade label ("1980s"), or empty for
// unknown years.
func DecadeFor(year int) string {
	if year <= 0 {
		return ""
	}
	return fmt.Sprintf("%ds", (year/10)*10)
}

// YearFromReleaseDate parses the leading four-digit year of an ISO-like
// date string, returning 0 for "Unknown" or malformed values.
func YearFromReleaseDate(releaseDate string) int {
	if len(releaseDate) < 4 {
		return 0
	}
	year, err := strconv.Atoi(releaseDate[:4])
	if err != nil {
		return 0
	}
	return year
}

func genreFor(artistLower string) string {
	if genre, ok := artistGenres[artistLower]; ok {
		return genre
	}
	for _, genre := range genreOrder {
		for _, kw := range genreKeywords[genre] {
			if strings.Contains(artistLower, kw) {
				return genre
			}
		}
	}
	return ""
}

func moodFor(trackLower string) string {
	// Exceptions first: some songs sound sad on paper but play upbeat.
	for _, exception := range upbeatExceptions {
		if strings.Contains(trackLower, exception) {
			return "Upbeat"
		}
	}
	for _, mood := range moodOrder {
		for _, kw := range moodKeywords[mood] {
			if strings.Contains(trackLower, kw) {
				return mood
			}
		}
	}
	return ""
}

func styleFor(releaseYear int) string {
	switch {
	case releaseYear <= 0:
		return ""
	case releaseYear < 1990:
		return "Classic"
	case releaseYear < 2010:
		return "Modern"
	default:
		return "Contemporary"
	}
}
