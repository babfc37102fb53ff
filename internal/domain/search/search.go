package search

import (
	"context"
	"errors"
	"path"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/creatorhq/backend/internal/entity"
	"github.com/creatorhq/backend/pkg/logger"
	"github.com/creatorhq/backend/pkg/xcontext"
	"github.com/puzpuzpuz/xsync"
)

const QuestDoc = "quest"

type QuestData struct {
	Title       string
	GameName    string
	Description string
	Cadence     string
}

type Indexer interface {
	IndexQuest(quest *entity.Quest) error
	SearchQuest(query string, offset, limit int) ([]string, error)
	Close()
}

type bleveIndex struct {
	logger   logger.Logger
	indexDir string
	mutex    sync.Mutex
	indexes  *xsync.MapOf[string, bleve.Index]
}

// NewBleveIndex keeps the indexes in memory if no index directory is
// configured.
func NewBleveIndex(ctx context.Context) *bleveIndex {
	return &bleveIndex{
		logger:   xcontext.Logger(ctx),
		indexDir: xcontext.Configs(ctx).SearchServer.IndexDir,
		indexes:  xsync.NewMapOf[bleve.Index](),
	}
}

func (i *bleveIndex) IndexQuest(quest *entity.Quest) error {
	return i.index(QuestDoc, quest.ID, QuestData{
		Title:       quest.Title,
		GameName:    quest.GameName,
		Description: quest.Description,
		Cadence:     string(quest.Cadence),
	})
}

func (i *bleveIndex) SearchQuest(query string, offset, limit int) ([]string, error) {
	return i.search(QuestDoc, query, offset, limit)
}

func (i *bleveIndex) index(document, id string, data any) error {
	index, err := i.getIndexByDocument(document)
	if err != nil {
		return err
	}

	record, err := index.Document(id)
	if err != nil {
		return err
	}

	// Delete if the record existed.
	if record != nil {
		if err := index.Delete(id); err != nil {
			return err
		}
	}

	return index.Index(id, data)
}

func (i *bleveIndex) search(document, query string, offset, limit int) ([]string, error) {
	index, err := i.getIndexByDocument(document)
	if err != nil {
		return nil, err
	}

	req := bleve.NewSearchRequestOptions(bleve.NewMatchQuery(query), limit, offset, false)
	searchResults, err := index.Search(req)
	if err != nil {
		return nil, err
	}

	ids := []string{}
	for _, match := range searchResults.Hits {
		ids = append(ids, match.ID)
	}

	return ids, nil
}

func (i *bleveIndex) Close() {
	i.logger.Infof("Closing all indexers...")

	i.indexes.Range(func(document string, index bleve.Index) bool {
		if err := index.Close(); err != nil {
			i.logger.Errorf("Cannot close indexer %s: %v", document, err)
		}

		return true
	})

	i.logger.Infof("Closing all indexers...done")
}

func (i *bleveIndex) getIndexByDocument(document string) (bleve.Index, error) {
	if index, ok := i.indexes.Load(document); ok {
		return index, nil
	}

	i.mutex.Lock()
	defer i.mutex.Unlock()

	if index, ok := i.indexes.Load(document); ok {
		return index, nil
	}

	i.logger.Infof("A new document index is added: %s", document)
	index, err := i.openIndex(document)
	if err != nil {
		return nil, err
	}

	i.indexes.Store(document, index)
	return index, nil
}

func (i *bleveIndex) openIndex(document string) (bleve.Index, error) {
	if i.indexDir == "" {
		return bleve.NewMemOnly(bleve.NewIndexMapping())
	}

	indexPath := path.Join(i.indexDir, document)
	index, err := bleve.New(indexPath, bleve.NewIndexMapping())
	if err != nil {
		if !errors.Is(err, bleve.ErrorIndexPathExists) {
			return nil, err
		}

		return bleve.Open(indexPath)
	}

	return index, nil
}
