package httpapi

import (
	"encoding/xml"
	"net/http"
)

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// handleSitemap renders the site root and every published post as a sitemap.
// Drafts never appear here.
func (s *Server) handleSitemap(w http.ResponseWriter, r *http.Request) {
	posts, err := s.posts.List(r.Context(), true)
	if err != nil {
		http.Error(w, "sitemap unavailable", http.StatusInternalServerError)
		return
	}

	set := sitemapURLSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  []sitemapURL{{Loc: s.siteURL}},
	}
	for _, p := range posts {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:     s.siteURL + "/posts/" + p.Slug,
			LastMod: p.UpdatedAt.Format("2006-01-02"),
		})
	}

	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(xml.Header))
	_ = xml.NewEncoder(w).Encode(set)
}
