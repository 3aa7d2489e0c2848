package server

import (
	"github.com/poiesic/facsearch/core"
	"github.com/poiesic/facsearch/normalize"
)

// notProvided is rendered in place of empty or placeholder fields so
// API consumers see a uniform marker for missing data.
const notProvided = "Not provided"

// publicationLimit caps the publications text in search results; the
// full text stays available through the faculty lookup endpoint.
const publicationLimit = 500

type resultView struct {
	Name           string  `json:"name"`
	Specialization string  `json:"specialization"`
	Biography      string  `json:"biography"`
	Publications   string  `json:"publications"`
	Education      string  `json:"education"`
	Email          string  `json:"email"`
	Number         string  `json:"number"`
	Address        string  `json:"address"`
	SemanticScore  float32 `json:"semantic_score"`
	KeywordScore   float32 `json:"keyword_score"`
	BoostApplied   float32 `json:"boost_applied"`
	FinalScore     float32 `json:"final_score"`
	Rank           int     `json:"rank"`
}

type recordView struct {
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	Biography      string `json:"biography"`
	Publications   string `json:"publications"`
	Education      string `json:"education"`
	Email          string `json:"email"`
	Number         string `json:"number"`
	Address        string `json:"address"`
}

// present returns the cleaned field text, or the missing-data marker.
func present(text string) string {
	cleaned := normalize.Clean(text)
	if !normalize.IsPresent(cleaned) {
		return notProvided
	}
	return cleaned
}

func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	return text[:limit] + "..."
}

func renderResults(results []*core.SearchResult) []resultView {
	views := make([]resultView, len(results))
	for i, r := range results {
		views[i] = resultView{
			Name:           present(r.Faculty.Name),
			Specialization: present(r.Faculty.Specialization),
			Biography:      present(r.Faculty.Biography),
			Publications:   truncate(present(r.Faculty.Publications), publicationLimit),
			Education:      present(r.Faculty.Education),
			Email:          present(r.Faculty.Email),
			Number:         present(r.Faculty.Phone),
			Address:        present(r.Faculty.Address),
			SemanticScore:  r.Score.Semantic,
			KeywordScore:   r.Score.Keyword,
			BoostApplied:   r.Score.Boost,
			FinalScore:     r.Score.Final,
			Rank:           r.Score.Rank,
		}
	}
	return views
}

func renderRecord(record *core.FacultyRecord) recordView {
	return recordView{
		Name:           present(record.Name),
		Specialization: present(record.Specialization),
		Biography:      present(record.Biography),
		Publications:   present(record.Publications),
		Education:      present(record.Education),
		Email:          present(record.Email),
		Number:         present(record.Phone),
		Address:        present(record.Address),
	}
}
