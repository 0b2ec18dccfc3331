// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ingestion

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/poiesic/maamar/core"
)

// metaKey marks the corpus entry that carries table-wide metadata instead
// of an article.
const metaKey = "__meta__"

// Corpus is a decoded corpus file: the articles keyed by filename plus the
// abbreviation table from the metadata entry.
type Corpus struct {
	Articles      []*core.Article
	Abbreviations map[string]string
}

type corpusRecord struct {
	Name      string    `json:"name"`
	Text      string    `json:"text"`
	Year      string    `json:"year"`
	Keywords  []string  `json:"keywords_all"`
	Embedding []float32 `json:"embedding"`
}

type corpusMeta struct {
	Abbreviations map[string]string `json:"abbreviations"`
}

// LoadCorpus reads a corpus file from disk.
func LoadCorpus(path string) (*Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCorpus(f)
}

// ReadCorpus decodes a JSON corpus: an object mapping filenames to article
// records, with an optional __meta__ entry holding the abbreviation table.
// Articles come out sorted by filename so ingestion order is stable.
func ReadCorpus(r io.Reader) (*Corpus, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("invalid corpus: %w", err)
	}

	corpus := &Corpus{}
	filenames := make([]string, 0, len(raw))
	for filename := range raw {
		if filename == metaKey {
			continue
		}
		filenames = append(filenames, filename)
	}
	sort.Strings(filenames)

	if meta, ok := raw[metaKey]; ok {
		var m corpusMeta
		if err := json.Unmarshal(meta, &m); err != nil {
			return nil, fmt.Errorf("invalid corpus metadata: %w", err)
		}
		corpus.Abbreviations = m.Abbreviations
	}

	for _, filename := range filenames {
		var rec corpusRecord
		if err := json.Unmarshal(raw[filename], &rec); err != nil {
			return nil, fmt.Errorf("invalid corpus record %q: %w", filename, err)
		}
		corpus.Articles = append(corpus.Articles, &core.Article{
			Name:     rec.Name,
			Text:     rec.Text,
			Filename: filename,
			Year:     rec.Year,
			Keywords: rec.Keywords,
			Vector:   rec.Embedding,
		})
	}

	if len(corpus.Articles) == 0 {
		return nil, ErrEmptyCorpus
	}
	return corpus, nil
}
