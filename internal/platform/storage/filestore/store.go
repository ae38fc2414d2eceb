// Package filestore persists the in-memory backend as one JSON document per
// collection inside a data directory.
package filestore

import (
	"context"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/pkg/errors"

	"github.com/Apurer/plant-nursery-api/internal/platform/storage/memory"
)

var collectionOrder = []memory.Collection{
	memory.CollectionProducts,
	memory.CollectionInventory,
	memory.CollectionOrders,
	memory.CollectionUsers,
	memory.CollectionMessages,
}

var fileNames = map[memory.Collection]string{
	memory.CollectionProducts:  "products.json",
	memory.CollectionInventory: "inventory.json",
	memory.CollectionOrders:    "orders.json",
	memory.CollectionUsers:     "users.json",
	memory.CollectionMessages:  "messages.json",
}

var _ memory.Persister = (*Store)(nil)

// Store reads and writes collection documents under Dir.
type Store struct {
	Dir string
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create data dir")
	}
	return &Store{Dir: dir}, nil
}

// Load reads every collection. Missing documents load as empty; empty
// reports whether no document existed at all.
func (s *Store) Load() (snapshot memory.Snapshot, empty bool, err error) {
	empty = true
	var products []productRecord
	found, err := s.read(memory.CollectionProducts, &products)
	if err != nil {
		return snapshot, false, err
	}
	empty = empty && !found
	for _, r := range products {
		snapshot.Products = append(snapshot.Products, r.toDomain())
	}

	var ledger []transactionRecord
	if found, err = s.read(memory.CollectionInventory, &ledger); err != nil {
		return snapshot, false, err
	}
	empty = empty && !found
	for _, r := range ledger {
		snapshot.Ledger = append(snapshot.Ledger, r.toDomain())
	}

	var orders []orderRecord
	if found, err = s.read(memory.CollectionOrders, &orders); err != nil {
		return snapshot, false, err
	}
	empty = empty && !found
	for _, r := range orders {
		snapshot.Orders = append(snapshot.Orders, r.toDomain())
	}

	var users []userRecord
	if found, err = s.read(memory.CollectionUsers, &users); err != nil {
		return snapshot, false, err
	}
	empty = empty && !found
	for _, r := range users {
		snapshot.Users = append(snapshot.Users, r.toDomain())
	}

	var messages []messageRecord
	if found, err = s.read(memory.CollectionMessages, &messages); err != nil {
		return snapshot, false, err
	}
	empty = empty && !found
	for _, r := range messages {
		snapshot.Messages = append(snapshot.Messages, r.toDomain())
	}
	return snapshot, empty, nil
}

func (s *Store) read(collection memory.Collection, into any) (bool, error) {
	raw, err := os.ReadFile(filepath.Join(s.Dir, fileNames[collection]))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "read %s", collection)
	}
	if err := json.Unmarshal(raw, into); err != nil {
		return false, errors.Wrapf(err, "decode %s", collection)
	}
	return true, nil
}

// rename is swapped in tests to fail a commit part way through.
var rename = os.Rename

type stagedFile struct {
	tmp, target, prev string
	hadPrev           bool
	committed         bool
}

// Persist writes every dirty collection to a temporary file, then renames
// them into place in a fixed collection order. The document each rename
// replaces is kept as a hard link until the last rename succeeded, so a
// failed rename restores every document already replaced.
func (s *Store) Persist(ctx context.Context, snapshot memory.Snapshot, dirty []memory.Collection) error {
	staged := make([]*stagedFile, 0, len(dirty))
	cleanup := func() {
		for _, f := range staged {
			_ = os.Remove(f.tmp)
			if f.hadPrev {
				_ = os.Remove(f.prev)
			}
		}
	}
	for _, collection := range commitOrder(dirty) {
		if err := ctx.Err(); err != nil {
			cleanup()
			return err
		}
		raw, err := json.MarshalIndent(documentFor(snapshot, collection), "", "  ")
		if err != nil {
			cleanup()
			return errors.Wrapf(err, "encode %s", collection)
		}
		tmp, err := s.writeTemp(collection, raw)
		if err != nil {
			cleanup()
			return err
		}
		f := &stagedFile{tmp: tmp, target: filepath.Join(s.Dir, fileNames[collection])}
		f.prev = tmp + ".prev"
		staged = append(staged, f)
		switch err := os.Link(f.target, f.prev); {
		case err == nil:
			f.hadPrev = true
		case !errors.Is(err, fs.ErrNotExist):
			cleanup()
			return errors.Wrapf(err, "keep previous %s", collection)
		}
	}
	for _, f := range staged {
		if err := rename(f.tmp, f.target); err != nil {
			rollback(staged)
			cleanup()
			return errors.Wrapf(err, "replace %s", filepath.Base(f.target))
		}
		f.committed = true
	}
	for _, f := range staged {
		if f.hadPrev {
			_ = os.Remove(f.prev)
		}
	}
	return nil
}

// rollback puts back the documents replaced before a failed rename.
// Collections that did not exist before the commit are removed again.
func rollback(staged []*stagedFile) {
	for _, f := range staged {
		if !f.committed {
			continue
		}
		if f.hadPrev {
			if err := os.Rename(f.prev, f.target); err == nil {
				f.hadPrev = false
			}
			continue
		}
		_ = os.Remove(f.target)
	}
}

// commitOrder sorts dirty into collectionOrder.
func commitOrder(dirty []memory.Collection) []memory.Collection {
	out := slices.Clone(dirty)
	slices.SortStableFunc(out, func(a, b memory.Collection) int {
		return slices.Index(collectionOrder, a) - slices.Index(collectionOrder, b)
	})
	return slices.Compact(out)
}

func (s *Store) writeTemp(collection memory.Collection, raw []byte) (string, error) {
	f, err := os.CreateTemp(s.Dir, fileNames[collection]+".*.tmp")
	if err != nil {
		return "", errors.Wrapf(err, "stage %s", collection)
	}
	name := f.Name()
	if _, err := f.Write(raw); err != nil {
		_ = f.Close()
		_ = os.Remove(name)
		return "", errors.Wrapf(err, "write %s", collection)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(name)
		return "", errors.Wrapf(err, "sync %s", collection)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(name)
		return "", errors.Wrapf(err, "close %s", collection)
	}
	return name, nil
}

func documentFor(snapshot memory.Snapshot, collection memory.Collection) any {
	switch collection {
	case memory.CollectionProducts:
		out := make([]productRecord, 0, len(snapshot.Products))
		for _, p := range snapshot.Products {
			out = append(out, toProductRecord(p))
		}
		return out
	case memory.CollectionInventory:
		out := make([]transactionRecord, 0, len(snapshot.Ledger))
		for _, tx := range snapshot.Ledger {
			out = append(out, toTransactionRecord(tx))
		}
		return out
	case memory.CollectionOrders:
		out := make([]orderRecord, 0, len(snapshot.Orders))
		for _, o := range snapshot.Orders {
			out = append(out, toOrderRecord(o))
		}
		return out
	case memory.CollectionUsers:
		out := make([]userRecord, 0, len(snapshot.Users))
		for _, u := range snapshot.Users {
			out = append(out, toUserRecord(u))
		}
		return out
	case memory.CollectionMessages:
		out := make([]messageRecord, 0, len(snapshot.Messages))
		for _, m := range snapshot.Messages {
			out = append(out, toMessageRecord(m))
		}
		return out
	default:
		return []any{}
	}
}
