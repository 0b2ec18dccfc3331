package badger

import (
	"bytes"
	"context"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/maamar/core"
	"github.com/poiesic/maamar/storage"
)

// ArticleRepository implements storage.ArticleRepository for BadgerDB.
type ArticleRepository struct {
	backend *Backend
}

var _ storage.ArticleRepository = (*ArticleRepository)(nil)

// NewRepository opens a snapshot directory and returns an article repository
// over it. The caller owns the repository and must close it.
func NewRepository(path string) (storage.ArticleRepository, error) {
	backend, err := OpenBackend(path, BackendOptions{})
	if err != nil {
		return nil, err
	}
	return &ArticleRepository{backend: backend}, nil
}

// NewReadOnlyRepository opens an existing snapshot for reading only.
func NewReadOnlyRepository(path string) (storage.ArticleRepository, error) {
	backend, err := OpenBackend(path, BackendOptions{ReadOnly: true})
	if err != nil {
		return nil, err
	}
	return &ArticleRepository{backend: backend}, nil
}

// NewArticleRepository creates an ArticleRepository over an existing backend.
func NewArticleRepository(backend *Backend) (*ArticleRepository, error) {
	return &ArticleRepository{backend: backend}, nil
}

// Close closes the underlying backend.
func (r *ArticleRepository) Close() error {
	return r.backend.Close()
}

// WithTransaction delegates to the backend.
func (r *ArticleRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddArticles adds one or more articles to storage.
func (r *ArticleRepository) AddArticles(ctx context.Context, articles ...*core.Article) ([]*core.Article, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, article := range articles {
			if err := article.Validate(); err != nil {
				return err
			}

			// The filename is the stable identity of an article across
			// re-ingestions; names are not guaranteed unique.
			if article.Id == 0 {
				article.Id = core.IDFromContent(article.Filename)
			}

			key := makeArticleKey(article.Id)
			value := storage.MarshalArticle(article)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			nameKey := makeArticleNameKey(article.Name)
			if err := tx.Set(nameKey, storage.MarshalID(article.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return articles, err
}

// GetArticle retrieves a single article by ID.
func (r *ArticleRepository) GetArticle(ctx context.Context, id core.ID) (*core.Article, error) {
	var result *core.Article
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readArticle(tx, makeArticleKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetArticleByName retrieves an article by its exact stored name.
func (r *ArticleRepository) GetArticleByName(ctx context.Context, name string) (*core.Article, error) {
	var result *core.Article
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeArticleNameKey(name))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}

		var id core.ID
		err = item.Value(func(val []byte) error {
			id, err = storage.UnmarshalID(val)
			return err
		})
		if err != nil {
			return err
		}

		result, err = readArticle(tx, makeArticleKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// ListArticles retrieves every article in the snapshot.
func (r *ArticleRepository) ListArticles(ctx context.Context) ([]*core.Article, error) {
	var results []*core.Article
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		prefix := []byte(articlePrefix + ":")
		opts.Prefix = prefix
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Seek(prefix); iter.Valid(); iter.Next() {
			item := iter.Item()
			if !bytes.HasPrefix(item.Key(), prefix) {
				break
			}

			var article *core.Article
			err := item.Value(func(val []byte) error {
				var err error
				article, err = storage.UnmarshalArticle(val)
				return err
			})
			if err != nil {
				return err
			}
			if article != nil {
				results = append(results, article)
			}
		}
		return nil
	}, false)

	return results, err
}

// CountArticles reports the number of articles in the snapshot.
func (r *ArticleRepository) CountArticles(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		prefix := []byte(articlePrefix + ":")
		opts.Prefix = prefix
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Seek(prefix); iter.Valid(); iter.Next() {
			if !bytes.HasPrefix(iter.Item().Key(), prefix) {
				break
			}
			count++
		}
		return nil
	}, false)
	return count, err
}

// PutAbbreviations stores the abbreviation table.
func (r *ArticleRepository) PutAbbreviations(ctx context.Context, table map[string]string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for abbr, meaning := range table {
			if abbr == "" {
				continue
			}
			if err := tx.Set(makeAbbrevKey(abbr), []byte(meaning)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetAbbreviations retrieves the stored abbreviation table.
func (r *ArticleRepository) GetAbbreviations(ctx context.Context) (map[string]string, error) {
	table := make(map[string]string)
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		prefix := []byte(abbrevPrefix + ":")
		opts.Prefix = prefix
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Seek(prefix); iter.Valid(); iter.Next() {
			item := iter.Item()
			key := item.Key()
			if !bytes.HasPrefix(key, prefix) {
				break
			}
			abbr := string(key[len(prefix):])
			err := item.Value(func(val []byte) error {
				table[abbr] = string(val)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	return table, err
}

// readArticle reads an article from the transaction.
// Returns nil without error when the key does not exist.
func readArticle(tx *badger.Txn, key []byte) (*core.Article, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var article *core.Article
	err = item.Value(func(val []byte) error {
		var err error
		article, err = storage.UnmarshalArticle(val)
		return err
	})
	return article, err
}
