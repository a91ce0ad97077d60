package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/sirupsen/logrus"

	"keyword-crawler/pkg/log"
	"keyword-crawler/pkg/models"
	"keyword-crawler/pkg/utils"
)

const (
	runKeyPrefix = "run:" // Prefix for run keys in DB
	historyDBDir = "runs" // Subdirectory name within stateDir for Badger DB files
)

// BadgerStore implements the RunStore interface using BadgerDB.
type BadgerStore struct {
	db  *badger.DB
	log *logrus.Entry
}

// NewBadgerStore opens (or creates) the run history database under stateDir.
func NewBadgerStore(stateDir string, logger *logrus.Entry) (*BadgerStore, error) {
	dbPath := filepath.Join(stateDir, historyDBDir)

	if err := os.MkdirAll(dbPath, 0755); err != nil {
		return nil, fmt.Errorf("%w: cannot create state directory %s: %w", utils.ErrFilesystem, dbPath, err)
	}

	logger.Debugf("Opening run history database at: %s", dbPath)

	badgerLogger := log.NewBadgerLogrusAdapter(logger.WithField("component", "badgerdb"))
	opts := badger.DefaultOptions(dbPath).
		WithLogger(badgerLogger).
		WithNumVersionsToKeep(1) // Runs are immutable once written

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: opening badger database at %s: %w", utils.ErrDatabase, dbPath, err)
	}

	return &BadgerStore{db: db, log: logger}, nil
}

// SaveRun implements the RunStore interface.
func (s *BadgerStore) SaveRun(run *models.CrawlRun) error {
	if s.db == nil {
		return errors.New("run history DB not initialized")
	}

	value, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("marshaling run '%s': %w", run.ID, err)
	}
	key := []byte(runKeyPrefix + run.ID)

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
	if err != nil {
		s.log.WithField("key", string(key)).Errorf("DB update error in SaveRun: %v", err)
		return fmt.Errorf("%w: saving run '%s': %w", utils.ErrDatabase, run.ID, err)
	}

	s.log.WithFields(logrus.Fields{"run_id": run.ID, "results": len(run.Results)}).Debug("Run archived")
	return nil
}

// GetRun implements the RunStore interface.
func (s *BadgerStore) GetRun(id string) (*models.CrawlRun, error) {
	if s.db == nil {
		return nil, errors.New("run history DB not initialized")
	}

	var run models.CrawlRun
	key := []byte(runKeyPrefix + id)

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: '%s'", utils.ErrRunNotFound, id)
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &run)
		})
	})
	if err != nil {
		if errors.Is(err, utils.ErrRunNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: reading run '%s': %w", utils.ErrDatabase, id, err)
	}

	return &run, nil
}

// ListRuns implements the RunStore interface.
func (s *BadgerStore) ListRuns() ([]models.RunSummary, error) {
	if s.db == nil {
		return nil, errors.New("run history DB not initialized")
	}

	var summaries []models.RunSummary
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(runKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var run models.CrawlRun
				if err := json.Unmarshal(val, &run); err != nil {
					// Skip unreadable entries rather than failing the listing
					s.log.Warnf("Skipping undecodable run entry '%s': %v", it.Item().Key(), err)
					return nil
				}
				summaries = append(summaries, models.RunSummary{
					ID:          run.ID,
					Keyword:     run.Keyword,
					CreatedAt:   run.CreatedAt,
					ResultCount: len(run.Results),
				})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: listing runs: %w", utils.ErrDatabase, err)
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
	})
	return summaries, nil
}

// Close implements the RunStore interface.
func (s *BadgerStore) Close() error {
	if s.db == nil {
		return nil
	}
	s.log.Debug("Closing run history database")
	err := s.db.Close()
	s.db = nil
	return err
}
