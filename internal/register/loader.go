package register

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/nordlink/regsync/internal/fetcher"
	"github.com/nordlink/regsync/internal/model"
	"github.com/nordlink/regsync/internal/resilience"
	"github.com/nordlink/regsync/internal/store"
)

const (
	defaultBatchSize = 1000
	progressEvery    = 10000
)

// Loader downloads the registry feed and replaces the local snapshot cache
// with its contents.
type Loader struct {
	fetcher   fetcher.Fetcher
	store     store.Store
	batchSize int
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithBatchSize overrides the upsert batch size.
func WithBatchSize(n int) LoaderOption {
	return func(l *Loader) {
		if n > 0 {
			l.batchSize = n
		}
	}
}

func NewLoader(f fetcher.Fetcher, s store.Store, opts ...LoaderOption) *Loader {
	l := &Loader{fetcher: f, store: s, batchSize: defaultBatchSize}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load downloads the ZIP-packed JSON feed, streams it into the cache, and
// stamps the load time. The existing cache is cleared only after the feed
// file has downloaded and extracted, so a failed download never leaves the
// cache empty.
func (l *Loader) Load(ctx context.Context, feedURL string) (int64, error) {
	// The registry republishes the feed daily. An unchanged ETag over a
	// non-empty cache means there is nothing new to import.
	etag, etagErr := l.fetcher.HeadETag(ctx, feedURL)
	if etagErr == nil && etag != "" {
		stored, err := l.store.ETag(ctx)
		if err == nil && stored == etag {
			if n, err := l.store.CompanyCount(ctx); err == nil && n > 0 {
				if err := l.store.SetLoadedAt(ctx, time.Now().UTC()); err != nil {
					return 0, err
				}
				zap.L().Info("feed unchanged, skipping reload", zap.String("etag", etag))
				return n, nil
			}
		}
	}

	dir, err := os.MkdirTemp("", "regsync-feed-*")
	if err != nil {
		return 0, eris.Wrap(err, "register: create temp dir")
	}
	defer os.RemoveAll(dir)

	zipPath := dir + "/feed.zip"
	retryCfg := resilience.DefaultRetryConfig()
	retryCfg.OnRetry = resilience.RetryLogger("register", "download feed")
	size, err := resilience.DoVal(ctx, retryCfg, func(ctx context.Context) (int64, error) {
		return l.fetcher.DownloadToFile(ctx, feedURL, zipPath)
	})
	if err != nil {
		return 0, eris.Wrapf(err, "register: download feed %s", feedURL)
	}
	zap.L().Info("feed downloaded", zap.String("url", feedURL), zap.Int64("bytes", size))

	jsonPath, err := fetcher.ExtractZIPSingle(zipPath, dir)
	if err != nil {
		return 0, eris.Wrap(err, "register: extract feed")
	}

	f, err := os.Open(jsonPath)
	if err != nil {
		return 0, eris.Wrap(err, "register: open feed file")
	}
	defer f.Close()

	if err := l.store.DeleteAll(ctx); err != nil {
		return 0, err
	}

	items, errs := fetcher.DecodeJSONArray[feedCompany](ctx, f)
	batch := make([]model.Company, 0, l.batchSize)
	var total int64

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := l.store.UpsertCompanies(ctx, batch)
		if err != nil {
			return err
		}
		total += n
		batch = batch[:0]
		return nil
	}

	for fc := range items {
		c := fc.toCompany()
		if c.Regcode == "" {
			continue
		}
		batch = append(batch, c)
		if len(batch) >= l.batchSize {
			if err := flush(); err != nil {
				return total, err
			}
			if total%progressEvery == 0 {
				zap.L().Info("loading feed", zap.Int64("companies", total))
			}
		}
	}
	if err := <-errs; err != nil {
		return total, eris.Wrap(err, "register: decode feed")
	}
	if err := flush(); err != nil {
		return total, err
	}

	if err := l.store.SetLoadedAt(ctx, time.Now().UTC()); err != nil {
		return total, err
	}
	if etag != "" {
		if err := l.store.SetETag(ctx, etag); err != nil {
			return total, err
		}
	}
	zap.L().Info("feed loaded", zap.Int64("companies", total))
	return total, nil
}

// LoadCSV ingests the registry's simplified CSV feed. It carries only the
// basic company card, so it is a fallback for environments that cannot take
// the full JSON feed.
func (l *Loader) LoadCSV(ctx context.Context, csvURL string) (int64, error) {
	dir, err := os.MkdirTemp("", "regsync-feed-*")
	if err != nil {
		return 0, eris.Wrap(err, "register: create temp dir")
	}
	defer os.RemoveAll(dir)

	path := dir + "/feed.csv"
	if strings.HasSuffix(csvURL, ".zip") {
		zipPath := dir + "/feed.csv.zip"
		if _, err := l.fetcher.DownloadToFile(ctx, csvURL, zipPath); err != nil {
			return 0, eris.Wrapf(err, "register: download feed %s", csvURL)
		}
		path, err = fetcher.ExtractZIPSingle(zipPath, dir)
		if err != nil {
			return 0, eris.Wrap(err, "register: extract feed")
		}
	} else {
		if _, err := l.fetcher.DownloadToFile(ctx, csvURL, path); err != nil {
			return 0, eris.Wrapf(err, "register: download feed %s", csvURL)
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, eris.Wrap(err, "register: open feed file")
	}
	defer f.Close()

	if err := l.store.DeleteAll(ctx); err != nil {
		return 0, err
	}

	headerCh := make(chan []string, 1)
	rows, errs := fetcher.StreamCSV(ctx, f, fetcher.CSVOptions{
		Delimiter: ';',
		HasHeader: true,
		HeaderCh:  headerCh,
		TrimSpace: true,
	})

	var regcodeCol, nameCol, addressCol int
	select {
	case header := <-headerCh:
		regcodeCol, nameCol, addressCol = csvColumns(header)
	case <-ctx.Done():
		return 0, eris.Wrap(ctx.Err(), "register: read csv header")
	}
	if regcodeCol < 0 || nameCol < 0 {
		return 0, eris.New("register: csv feed missing ariregistri_kood or nimi column")
	}

	batch := make([]model.Company, 0, l.batchSize)
	var total int64
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := l.store.UpsertCompanies(ctx, batch)
		if err != nil {
			return err
		}
		total += n
		batch = batch[:0]
		return nil
	}

	for row := range rows {
		if regcodeCol >= len(row) || nameCol >= len(row) || row[regcodeCol] == "" {
			continue
		}
		c := model.Company{Regcode: row[regcodeCol], Name: row[nameCol]}
		if addressCol >= 0 && addressCol < len(row) && row[addressCol] != "" {
			c.Addresses = []model.Address{{Full: row[addressCol]}}
		}
		batch = append(batch, c)
		if len(batch) >= l.batchSize {
			if err := flush(); err != nil {
				return total, err
			}
		}
	}
	if err := <-errs; err != nil {
		return total, eris.Wrap(err, "register: read csv feed")
	}
	if err := flush(); err != nil {
		return total, err
	}

	if err := l.store.SetLoadedAt(ctx, time.Now().UTC()); err != nil {
		return total, err
	}
	zap.L().Info("csv feed loaded", zap.Int64("companies", total))
	return total, nil
}

// csvColumns locates the needed columns in the CSV header. The address
// column name varies between feed versions, so any column mentioning
// "aadress" is accepted.
func csvColumns(header []string) (regcode, name, address int) {
	regcode, name, address = -1, -1, -1
	for i, col := range header {
		c := strings.ToLower(strings.TrimSpace(col))
		switch {
		case c == "ariregistri_kood":
			regcode = i
		case c == "nimi":
			name = i
		case address < 0 && strings.Contains(c, "aadress"):
			address = i
		}
	}
	return regcode, name, address
}
