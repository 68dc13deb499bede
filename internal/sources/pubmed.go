// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sgalonska/another-doctor-app/internal/httputil"
	"github.com/sgalonska/another-doctor-app/pkg/types"
)

// pubmedAPIBase is the NCBI Entrez E-utilities endpoint. Declared as a var
// so tests can substitute an httptest server.
var pubmedAPIBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

// pubmedFetchMax caps the number of PMIDs per efetch request.
const pubmedFetchMax = 200

// PubMed queries the NCBI Entrez API for biomedical publications. A search
// is two-phased: esearch returns matching PMIDs, efetch returns article XML
// for those PMIDs.
type PubMed struct {
	Client    *http.Client
	APIKey    string
	UserAgent string
}

// Name returns the source identifier.
func (s *PubMed) Name() string { return types.SourcePubMed }

// Search queries PubMed and returns normalized publication records.
func (s *PubMed) Search(ctx context.Context, query string, limit int) ([]types.ResearchResult, error) {
	limit = clampLimit(limit, 25, pubmedFetchMax)

	pmids, err := s.searchIDs(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	if len(pmids) == 0 {
		return nil, nil
	}
	return s.fetchDetails(ctx, pmids)
}

// searchIDs runs esearch and returns matching PMIDs.
func (s *PubMed) searchIDs(ctx context.Context, query string, limit int) ([]string, error) {
	params := url.Values{
		"db":      {"pubmed"},
		"retmode": {"json"},
		"retmax":  {strconv.Itoa(limit)},
		"sort":    {"pub_date"},
		"term":    {query},
	}
	if s.APIKey != "" {
		params.Set("api_key", s.APIKey)
	}

	reqURL := pubmedAPIBase + "/esearch.fcgi?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, unavailable(s.Name(), fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("User-Agent", s.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, s.Client, req, 0)
	if err != nil {
		return nil, unavailable(s.Name(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, httpStatusError(s.Name(), resp.StatusCode)
	}

	var er esearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
		return nil, malformed(s.Name(), fmt.Errorf("parsing esearch response: %w", err))
	}
	return er.ESearchResult.IDList, nil
}

// fetchDetails runs efetch for the given PMIDs and parses the article XML.
// Individual articles that fail to parse are skipped.
func (s *PubMed) fetchDetails(ctx context.Context, pmids []string) ([]types.ResearchResult, error) {
	if len(pmids) > pubmedFetchMax {
		pmids = pmids[:pubmedFetchMax]
	}

	params := url.Values{
		"db":      {"pubmed"},
		"retmode": {"xml"},
		"id":      {strings.Join(pmids, ",")},
	}
	if s.APIKey != "" {
		params.Set("api_key", s.APIKey)
	}

	reqURL := pubmedAPIBase + "/efetch.fcgi?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, unavailable(s.Name(), fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("User-Agent", s.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, s.Client, req, 0)
	if err != nil {
		return nil, unavailable(s.Name(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, httpStatusError(s.Name(), resp.StatusCode)
	}

	var set pubmedArticleSet
	if err := xml.NewDecoder(resp.Body).Decode(&set); err != nil {
		return nil, malformed(s.Name(), fmt.Errorf("parsing efetch response: %w", err))
	}

	var results []types.ResearchResult
	for _, article := range set.Articles {
		r, err := parsePubMedArticle(article)
		if err != nil {
			continue
		}
		results = append(results, r)
	}
	return results, nil
}

// parsePubMedArticle normalizes one PubmedArticle element. It fails only
// when the article lacks a PMID or title; all other fields are optional.
func parsePubMedArticle(a pubmedArticle) (types.ResearchResult, error) {
	pmid := strings.TrimSpace(a.MedlineCitation.PMID)
	title := strings.TrimSpace(a.MedlineCitation.Article.ArticleTitle)
	if pmid == "" || title == "" {
		return types.ResearchResult{}, fmt.Errorf("article missing PMID or title")
	}

	var authors []string
	for _, au := range a.MedlineCitation.Article.AuthorList.Authors {
		if au.ForeName != "" && au.LastName != "" {
			authors = append(authors, au.ForeName+" "+au.LastName)
		}
	}

	var meshTerms []string
	for _, mh := range a.MedlineCitation.MeshHeadingList.Headings {
		if mh.DescriptorName != "" {
			meshTerms = append(meshTerms, mh.DescriptorName)
		}
	}

	var doi string
	for _, id := range a.PubmedData.ArticleIDList.IDs {
		if id.IDType == "doi" {
			doi = id.Value
			break
		}
	}

	year := 0
	if y := a.MedlineCitation.Article.Journal.JournalIssue.PubDate.Year; y != "" {
		if n, err := strconv.Atoi(y); err == nil {
			year = n
		}
	}

	return types.ResearchResult{
		Source:    types.SourcePubMed,
		SourceKey: pmid,
		Title:     title,
		Abstract:  strings.TrimSpace(a.MedlineCitation.Article.Abstract.AbstractText),
		Year:      year,
		Authors:   authors,
		URL:       "https://pubmed.ncbi.nlm.nih.gov/" + pmid + "/",
		Extra: map[string]any{
			"mesh_terms": meshTerms,
			"journal":    a.MedlineCitation.Article.Journal.Title,
			"doi":        doi,
		},
	}, nil
}

// Entrez esearch JSON structure.
type esearchResponse struct {
	ESearchResult struct {
		IDList []string `json:"idlist"`
	} `json:"esearchresult"`
}

// Entrez efetch XML structures.
type pubmedArticleSet struct {
	XMLName  xml.Name        `xml:"PubmedArticleSet"`
	Articles []pubmedArticle `xml:"PubmedArticle"`
}

type pubmedArticle struct {
	MedlineCitation struct {
		PMID    string `xml:"PMID"`
		Article struct {
			ArticleTitle string `xml:"ArticleTitle"`
			Abstract     struct {
				AbstractText string `xml:"AbstractText"`
			} `xml:"Abstract"`
			Journal struct {
				Title        string `xml:"Title"`
				JournalIssue struct {
					PubDate struct {
						Year string `xml:"Year"`
					} `xml:"PubDate"`
				} `xml:"JournalIssue"`
			} `xml:"Journal"`
			AuthorList struct {
				Authors []struct {
					LastName string `xml:"LastName"`
					ForeName string `xml:"ForeName"`
				} `xml:"Author"`
			} `xml:"AuthorList"`
		} `xml:"Article"`
		MeshHeadingList struct {
			Headings []struct {
				DescriptorName string `xml:"DescriptorName"`
			} `xml:"MeshHeading"`
		} `xml:"MeshHeadingList"`
	} `xml:"MedlineCitation"`
	PubmedData struct {
		ArticleIDList struct {
			IDs []struct {
				IDType string `xml:"IdType,attr"`
				Value  string `xml:",chardata"`
			} `xml:"ArticleId"`
		} `xml:"ArticleIdList"`
	} `xml:"PubmedData"`
}
