package service

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"sitedesk/internal/domain"
	"sitedesk/internal/repository"

	"go.uber.org/zap"
)

const searchResultLimit = 20

// Result kinds.
const (
	SearchKindSite  = "site"
	SearchKindStaff = "staff"
)

// SearchResult is one ranked match. Exactly one of Site/Staff is set,
// according to Kind. Related carries the precomputed joined names of the
// other side (assigned staff for a site, assigned sites for a staff member).
type SearchResult struct {
	Kind    string        `json:"kind"`
	Site    *domain.Site  `json:"site,omitempty"`
	Staff   *domain.Staff `json:"staff,omitempty"`
	Related string        `json:"related,omitempty"`
	Score   int           `json:"score"`
}

// SearchResponse distinguishes a blank query (Hidden: close the panel) from
// a query with zero matches (panel shown, empty list).
type SearchResponse struct {
	Hidden  bool           `json:"hidden"`
	Query   string         `json:"query"`
	Tokens  []string       `json:"tokens,omitempty"`
	Results []SearchResult `json:"results"`
}

// indexEntry is one searchable record: its lower-cased full-text blob plus
// the fields needed for ranking and display.
type indexEntry struct {
	result   SearchResult
	name     string
	fullText string
}

// SearchService builds a denormalized index across sites and staff and runs
// multi-token substring queries against it. The index is rebuilt per query;
// at tens to low hundreds of records that is cheaper than keeping an
// inverted index consistent across mutations.
type SearchService struct {
	store  *repository.Store
	logger *zap.Logger
}

func NewSearchService(store *repository.Store, logger *zap.Logger) *SearchService {
	return &SearchService{store: store, logger: logger}
}

// Tokenize lower-cases and splits the query on whitespace runs.
func Tokenize(query string) []string {
	return strings.Fields(strings.ToLower(strings.TrimSpace(query)))
}

// Search ranks records matching every token. A record matches iff each token
// is a substring of its blob; each matching token scores +1, plus +10 when
// it also hits the record's name. Ties keep index order (sites before staff,
// insertion order within each), so the sort must be stable.
func (s *SearchService) Search(ctx context.Context, query string) SearchResponse {
	tokens := Tokenize(query)
	if len(tokens) == 0 {
		return SearchResponse{Hidden: true, Query: query, Results: []SearchResult{}}
	}

	var matches []SearchResult
	for _, entry := range s.buildIndex(ctx) {
		score, ok := scoreEntry(entry, tokens)
		if !ok {
			continue
		}
		r := entry.result
		r.Score = score
		matches = append(matches, r)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > searchResultLimit {
		matches = matches[:searchResultLimit]
	}
	if matches == nil {
		matches = []SearchResult{}
	}
	return SearchResponse{Query: query, Tokens: tokens, Results: matches}
}

func scoreEntry(entry indexEntry, tokens []string) (int, bool) {
	for _, t := range tokens {
		if !strings.Contains(entry.fullText, t) {
			return 0, false
		}
	}
	score := 0
	for _, t := range tokens {
		if strings.Contains(entry.name, t) {
			score += 10
		}
		score++ // every token is a substring of the blob here
	}
	return score, true
}

// buildIndex snapshots both collections with joined related-entity names.
func (s *SearchService) buildIndex(ctx context.Context) []indexEntry {
	sites := s.store.Sites.GetAll(ctx)
	staff := s.store.Staff.GetAll(ctx)
	assigns := s.store.Assignments.GetAll(ctx)

	staffByID := make(map[string]*domain.Staff, len(staff))
	for i := range staff {
		staffByID[staff[i].ID] = &staff[i]
	}
	siteByID := make(map[string]*domain.Site, len(sites))
	for i := range sites {
		siteByID[sites[i].ID] = &sites[i]
	}

	entries := make([]indexEntry, 0, len(sites)+len(staff))

	for i := range sites {
		site := &sites[i]
		var names []string
		for _, a := range assigns {
			if a.SiteID != site.ID {
				continue
			}
			if st := staffByID[a.StaffID]; st != nil {
				names = append(names, st.Name+" "+st.Role)
			}
		}
		related := strings.Join(names, " ")
		entries = append(entries, indexEntry{
			result:   SearchResult{Kind: SearchKindSite, Site: site, Related: related},
			name:     strings.ToLower(site.Name),
			fullText: joinBlob(site.Name, site.Location, site.Client, site.Architect, site.Special, site.Note, site.Status, related),
		})
	}

	for i := range staff {
		st := &staff[i]
		var names []string
		for _, a := range assigns {
			if a.StaffID != st.ID {
				continue
			}
			if site := siteByID[a.SiteID]; site != nil {
				names = append(names, site.Name)
			}
		}
		related := strings.Join(names, " ")
		entries = append(entries, indexEntry{
			result:   SearchResult{Kind: SearchKindStaff, Staff: st, Related: related},
			name:     strings.ToLower(st.Name),
			fullText: joinBlob(st.Name, st.Role, st.Phone, st.Cert, st.Status, related),
		})
	}

	return entries
}

// joinBlob concatenates non-empty fields, lower-cased, space separated.
func joinBlob(fields ...string) string {
	kept := fields[:0]
	for _, f := range fields {
		if f != "" {
			kept = append(kept, f)
		}
	}
	return strings.ToLower(strings.Join(kept, " "))
}

// Highlight wraps every case-insensitive occurrence of each token in
// <mark> tags. Regex metacharacters in tokens are escaped; tokens are
// applied in order over the accumulating text.
func Highlight(text string, tokens []string) string {
	if text == "" {
		return text
	}
	for _, t := range tokens {
		if t == "" {
			continue
		}
		re := regexp.MustCompile(`(?i)(` + regexp.QuoteMeta(t) + `)`)
		text = re.ReplaceAllString(text, "<mark>$1</mark>")
	}
	return text
}
