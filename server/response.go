package server

import "github.com/poiesic/maamar/core"

// previewRunes is how much of the article text the preview field carries.
const previewRunes = 300

// noResultsAnswer is the Hebrew answer injected when a search finds nothing.
const noResultsAnswer = "לא נמצאו מאמרים תואמים."

type searchResult struct {
	Name        string `json:"name"`
	Score       int    `json:"score"`
	TextPreview string `json:"text_preview"`
	FullText    string `json:"full_text"`
	Filename    string `json:"filename"`
	Year        string `json:"year"`
}

type searchResponse struct {
	Count   int            `json:"count"`
	Results []searchResult `json:"results"`
}

func buildResponse(results []*core.ScoredResult) searchResponse {
	payload := make([]searchResult, 0, len(results))
	for _, r := range results {
		payload = append(payload, searchResult{
			Name:        r.Article.Name,
			Score:       r.Score,
			TextPreview: makePreview(r.Article.Text),
			FullText:    r.Article.Text,
			Filename:    r.Article.Filename,
			Year:        r.Article.Year,
		})
	}
	return searchResponse{Count: len(payload), Results: payload}
}

// makePreview truncates text to the preview length. The ellipsis is always
// appended; the platform's renderer relies on it.
func makePreview(text string) string {
	runes := []rune(text)
	if len(runes) > previewRunes {
		runes = runes[:previewRunes]
	}
	return string(runes) + "..."
}

// answerText is the value injected into a conversation: the best full text,
// or the fixed no-results notice.
func answerText(resp searchResponse) string {
	if len(resp.Results) > 0 {
		return resp.Results[0].FullText
	}
	return noResultsAnswer
}
