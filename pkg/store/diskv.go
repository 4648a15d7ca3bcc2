package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/wins/pkg/daykey"
	"tableflip.dev/wins/pkg/journal"
)

const (
	journalBucket = "journal"
	itemBucket    = "item"
)

// OpenDiskv returns a Persistence that keeps one JSON file per record under
// basePath/journal/YYYY/MM/DD/<id> and one per item under basePath/item/<id>.
func OpenDiskv(basePath string) Persistence {
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}
}

type persistence struct {
	mu       sync.Mutex
	d        *diskv.Diskv
	basePath string
}

func (p *persistence) readRecord(key string) (journal.Record, error) {
	val, err := p.d.Read(key)
	if err != nil {
		return journal.Record{}, fmt.Errorf("%w: read %s: %v", journal.ErrTransport, key, err)
	}
	var r journal.Record
	if err := json.Unmarshal(val, &r); err != nil {
		return journal.Record{}, fmt.Errorf("%w: %s: %v", journal.ErrParse, key, err)
	}
	pk := keyToPathTransform(key)
	id, err := strconv.ParseInt(pk.FileName, 10, 64)
	if err != nil {
		return journal.Record{}, fmt.Errorf("%w: %s: bad id: %v", journal.ErrParse, key, err)
	}
	r.ID = id
	if r.Day == "" {
		r.Day = dayFromPath(pk.Path)
	}
	return r, nil
}

func (p *persistence) readItem(key string) (journal.Item, error) {
	val, err := p.d.Read(key)
	if err != nil {
		return journal.Item{}, fmt.Errorf("%w: read %s: %v", journal.ErrTransport, key, err)
	}
	var it journal.Item
	if err := json.Unmarshal(val, &it); err != nil {
		return journal.Item{}, fmt.Errorf("%w: %s: %v", journal.ErrParse, key, err)
	}
	id, err := strconv.ParseInt(keyToPathTransform(key).FileName, 10, 64)
	if err != nil {
		return journal.Item{}, fmt.Errorf("%w: %s: bad id: %v", journal.ErrParse, key, err)
	}
	it.ID = id
	return it, nil
}

// keys lists every key in bucket.
func (p *persistence) keys(ctx context.Context, bucket string) []string {
	var out []string
	for key := range p.d.Keys(ctx.Done()) {
		if pk := keyToPathTransform(key); len(pk.Path) > 0 && pk.Path[0] == bucket {
			out = append(out, key)
		}
	}
	return out
}

func (p *persistence) JournalByDay(ctx context.Context, day daykey.Key) (*journal.Record, error) {
	prefix := journalPrefix(day)
	var found []journal.Record
	for _, key := range p.keys(ctx, journalBucket) {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		r, err := p.readRecord(key)
		if err != nil {
			return nil, fmt.Errorf("store: journal %s: %w", day, err)
		}
		found = append(found, r)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", journal.ErrTransport, err)
	}
	if len(found) == 0 {
		return nil, nil
	}
	sortRecords(found, Ascending)
	r := found[0]
	return &r, nil
}

func (p *persistence) JournalsInRange(ctx context.Context, start, end time.Time, order SortOrder, limit int) ([]journal.Record, error) {
	all := make([]journal.Record, 0)
	for _, key := range p.keys(ctx, journalBucket) {
		day := dayFromPath(keyToPathTransform(key).Path)
		if !day.Valid() || !inRange(day, start, end) {
			continue
		}
		r, err := p.readRecord(key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "store: %s: %v\n", key, err)
			continue
		}
		all = append(all, r)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", journal.ErrTransport, err)
	}
	sortRecords(all, order)
	return limitRecords(all, limit), nil
}

func (p *persistence) Items(ctx context.Context, activeOnly bool, order SortOrder) ([]journal.Item, error) {
	all := make([]journal.Item, 0)
	for _, key := range p.keys(ctx, itemBucket) {
		it, err := p.readItem(key)
		if err != nil {
			return nil, fmt.Errorf("store: items: %w", err)
		}
		if activeOnly && !it.Active {
			continue
		}
		all = append(all, it)
	}
	sortItems(all, order)
	return all, nil
}

func (p *persistence) SaveJournal(ctx context.Context, r journal.Record, update bool) (journal.Record, error) {
	if err := validateSave(r, update); err != nil {
		return journal.Record{}, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	keys := p.keys(ctx, journalBucket)
	if update {
		// A record moved to another day leaves its old file behind otherwise.
		suffix := "-" + strconv.FormatInt(r.ID, 10)
		for _, key := range keys {
			if strings.HasSuffix(key, suffix) && !strings.HasPrefix(key, journalPrefix(r.Day)) {
				if err := p.d.Erase(key); err != nil {
					return journal.Record{}, fmt.Errorf("%w: erase %s: %v", journal.ErrTransport, key, err)
				}
			}
		}
	} else {
		r.ID = nextID(keys)
	}

	r = r.Clone()
	data, err := json.Marshal(r)
	if err != nil {
		return journal.Record{}, fmt.Errorf("%w: %v", journal.ErrParse, err)
	}
	key := journalPrefix(r.Day) + strconv.FormatInt(r.ID, 10)
	if err := p.d.Write(key, data); err != nil {
		return journal.Record{}, fmt.Errorf("%w: write %s: %v", journal.ErrTransport, key, err)
	}
	return r, nil
}

func (p *persistence) SaveItem(ctx context.Context, it journal.Item) (journal.Item, error) {
	it.Name = strings.TrimSpace(it.Name)
	if it.Name == "" {
		return journal.Item{}, fmt.Errorf("%w: item name required", journal.ErrValidation)
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if it.ID == 0 {
		it.ID = nextID(p.keys(ctx, itemBucket))
	}
	data, err := json.Marshal(it)
	if err != nil {
		return journal.Item{}, fmt.Errorf("%w: %v", journal.ErrParse, err)
	}
	key := itemBucket + "-" + strconv.FormatInt(it.ID, 10)
	if err := p.d.Write(key, data); err != nil {
		return journal.Item{}, fmt.Errorf("%w: write %s: %v", journal.ErrTransport, key, err)
	}
	return it, nil
}

func (p *persistence) Close() error { return nil }

func nextID(keys []string) int64 {
	var highest int64
	for _, key := range keys {
		if id, err := strconv.ParseInt(keyToPathTransform(key).FileName, 10, 64); err == nil && id > highest {
			highest = id
		}
	}
	return highest + 1
}

// journalPrefix makes `journal-YYYY-MM-DD-`.
func journalPrefix(day daykey.Key) string {
	return fmt.Sprintf("%s-%s-", journalBucket, day)
}

// dayFromPath rebuilds the day from a [journal YYYY MM DD] path.
func dayFromPath(path []string) daykey.Key {
	if len(path) != 4 {
		return ""
	}
	return daykey.Key(strings.Join(path[1:], "-"))
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}
