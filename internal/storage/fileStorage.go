package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	opEnsureUser    = "ensure_user"
	opRenameUser    = "rename_user"
	opDeleteUser    = "delete_user"
	opBind          = "bind_subdomain"
	opUnbind        = "unbind_subdomain"
	opCreateLink    = "create_link"
	opUpdateLink    = "update_link"
	opDeleteLink    = "delete_link"
	opDeleteExpired = "delete_expired"
	opAppendClicks  = "append_clicks"
)

// journalEntry is one line of the journal file.
type journalEntry struct {
	Op   string          `json:"op"`
	Data json.RawMessage `json:"data"`
}

type userName struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type linkPatch struct {
	ID          string  `json:"id"`
	ShortCode   *string `json:"short_code,omitempty"`
	OriginalURL *string `json:"original_url,omitempty"`
}

// FileStorage is a MemoryStorage whose successful mutations are appended to a
// JSON-lines journal and replayed on open. Reads are served from memory.
type FileStorage struct {
	*MemoryStorage

	mu     sync.Mutex
	file   *os.File
	logger *zap.Logger
}

func NewFileStorage(p string, logger *zap.Logger) (*FileStorage, error) {
	if err := os.MkdirAll(filepath.Dir(p), 0770); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(p, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0660)
	if err != nil {
		return nil, err
	}

	mem, _ := CreateMemoryStorage()
	fs := &FileStorage{
		MemoryStorage: mem,
		file:          file,
		logger:        logger,
	}

	if err := fs.replay(); err != nil {
		file.Close()
		return nil, err
	}

	return fs, nil
}

func (fs *FileStorage) replay() error {
	ctx := context.Background()
	scanner := bufio.NewScanner(fs.file)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	n := 0
	for scanner.Scan() {
		var e journalEntry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			return fmt.Errorf("failed to parse journal line %d: %w", n+1, err)
		}
		if err := fs.apply(ctx, e); err != nil {
			fs.logger.Warn("skipping journal entry", zap.Int("line", n+1), zap.String("op", e.Op), zap.Error(err))
		}
		n++
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading journal: %w", err)
	}

	fs.logger.Info("journal replayed", zap.Int("entries", n))
	return nil
}

func (fs *FileStorage) apply(ctx context.Context, e journalEntry) error {
	m := fs.MemoryStorage

	switch e.Op {
	case opEnsureUser:
		var u User
		if err := json.Unmarshal(e.Data, &u); err != nil {
			return err
		}
		_, err := m.EnsureUser(ctx, u)
		return err
	case opRenameUser:
		var un userName
		if err := json.Unmarshal(e.Data, &un); err != nil {
			return err
		}
		_, err := m.UpdateUserName(ctx, un.ID, un.Name)
		return err
	case opDeleteUser:
		var id string
		if err := json.Unmarshal(e.Data, &id); err != nil {
			return err
		}
		return m.DeleteUser(ctx, id)
	case opBind:
		var sd Subdomain
		if err := json.Unmarshal(e.Data, &sd); err != nil {
			return err
		}
		_, err := m.BindSubdomain(ctx, sd)
		return err
	case opUnbind:
		var owner string
		if err := json.Unmarshal(e.Data, &owner); err != nil {
			return err
		}
		return m.UnbindSubdomain(ctx, owner)
	case opCreateLink:
		var l Link
		if err := json.Unmarshal(e.Data, &l); err != nil {
			return err
		}
		_, err := m.CreateLink(ctx, l)
		return err
	case opUpdateLink:
		var p linkPatch
		if err := json.Unmarshal(e.Data, &p); err != nil {
			return err
		}
		_, err := m.UpdateLink(ctx, p.ID, LinkUpdate{ShortCode: p.ShortCode, OriginalURL: p.OriginalURL})
		return err
	case opDeleteLink:
		var id string
		if err := json.Unmarshal(e.Data, &id); err != nil {
			return err
		}
		return m.DeleteLink(ctx, id)
	case opDeleteExpired:
		var now time.Time
		if err := json.Unmarshal(e.Data, &now); err != nil {
			return err
		}
		_, err := m.DeleteExpired(ctx, now)
		return err
	case opAppendClicks:
		var events []ClickEvent
		if err := json.Unmarshal(e.Data, &events); err != nil {
			return err
		}
		_, err := m.AppendClicks(ctx, events)
		return err
	}

	return fmt.Errorf("unknown journal op %q", e.Op)
}

// write appends one entry. Callers hold fs.mu.
func (fs *FileStorage) write(op string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	b, err := json.Marshal(journalEntry{Op: op, Data: data})
	if err != nil {
		return err
	}

	_, err = fs.file.Write(append(b, '\n'))
	return err
}

func (fs *FileStorage) EnsureUser(ctx context.Context, u User) (*User, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if existing, err := fs.MemoryStorage.FindUser(ctx, u.ID); err == nil {
		return existing, nil
	}

	res, err := fs.MemoryStorage.EnsureUser(ctx, u)
	if err != nil {
		return nil, err
	}
	return res, fs.write(opEnsureUser, res)
}

func (fs *FileStorage) UpdateUserName(ctx context.Context, id, name string) (*User, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	res, err := fs.MemoryStorage.UpdateUserName(ctx, id, name)
	if err != nil {
		return nil, err
	}
	return res, fs.write(opRenameUser, userName{ID: id, Name: name})
}

func (fs *FileStorage) DeleteUser(ctx context.Context, id string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := fs.MemoryStorage.DeleteUser(ctx, id); err != nil {
		return err
	}
	return fs.write(opDeleteUser, id)
}

func (fs *FileStorage) BindSubdomain(ctx context.Context, sd Subdomain) (*Subdomain, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	res, err := fs.MemoryStorage.BindSubdomain(ctx, sd)
	if err != nil {
		return nil, err
	}
	return res, fs.write(opBind, res)
}

func (fs *FileStorage) UnbindSubdomain(ctx context.Context, ownerID string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := fs.MemoryStorage.UnbindSubdomain(ctx, ownerID); err != nil {
		return err
	}
	return fs.write(opUnbind, ownerID)
}

func (fs *FileStorage) CreateLink(ctx context.Context, l Link) (*Link, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	res, err := fs.MemoryStorage.CreateLink(ctx, l)
	if err != nil {
		return nil, err
	}
	return res, fs.write(opCreateLink, res)
}

func (fs *FileStorage) UpdateLink(ctx context.Context, id string, upd LinkUpdate) (*Link, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	res, err := fs.MemoryStorage.UpdateLink(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	return res, fs.write(opUpdateLink, linkPatch{ID: id, ShortCode: upd.ShortCode, OriginalURL: upd.OriginalURL})
}

func (fs *FileStorage) DeleteLink(ctx context.Context, id string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := fs.MemoryStorage.DeleteLink(ctx, id); err != nil {
		return err
	}
	return fs.write(opDeleteLink, id)
}

func (fs *FileStorage) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	n, err := fs.MemoryStorage.DeleteExpired(ctx, now)
	if err != nil || n == 0 {
		return n, err
	}
	return n, fs.write(opDeleteExpired, now)
}

func (fs *FileStorage) AppendClicks(ctx context.Context, events []ClickEvent) (int, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	n, err := fs.MemoryStorage.AppendClicks(ctx, events)
	if err != nil || n == 0 {
		return n, err
	}
	return n, fs.write(opAppendClicks, events)
}

// PingContext checks that the journal file is still usable.
func (fs *FileStorage) PingContext(_ context.Context) error {
	_, err := fs.file.Stat()
	return err
}

func (fs *FileStorage) Close() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := fs.file.Sync(); err != nil {
		fs.logger.Warn("journal sync failed", zap.Error(err))
	}
	return fs.file.Close()
}
