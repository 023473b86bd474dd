package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"regexp"

	"go.uber.org/zap"

	"github.com/atinyakov/shortlink-registry/internal/storage"
)

const (
	// AliasLength is the length of generated aliases. 62^7 codes keep the
	// collision rate negligible well past millions of links per namespace.
	AliasLength = 7
	// AliasRetries bounds how many generated aliases are tried before giving up.
	AliasRetries = 5

	minAliasLength = 3
	maxAliasLength = 50
)

const alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// bytes at or above this value are rejected to keep the draw uniform
const alphabetCutoff = 256 - 256%len(alphabet)

var aliasPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// reservedAliases shadow API routes served on the same hosts.
var reservedAliases = map[string]struct{}{
	"admin":    {},
	"domain":   {},
	"internal": {},
	"links":    {},
	"long-url": {},
	"ping":     {},
	"user":     {},
}

// Allocator hands out short codes that are unique within a namespace. Every
// claim is a single conditional insert in the store, never a read followed by
// a write.
type Allocator struct {
	store   LinkStore
	logger  *zap.Logger
	entropy io.Reader
	length  int
	retries int
}

func NewAllocator(store LinkStore, logger *zap.Logger, opts ...Option) *Allocator {
	o := applyOptions(opts)
	entropy := o.entropy
	if entropy == nil {
		entropy = rand.Reader
	}

	return &Allocator{
		store:   store,
		logger:  logger,
		entropy: entropy,
		length:  AliasLength,
		retries: AliasRetries,
	}
}

// ValidateAlias checks a caller supplied alias.
func ValidateAlias(alias string) error {
	if len(alias) < minAliasLength || len(alias) > maxAliasLength {
		return invalid("custom_alias", fmt.Sprintf("must be %d to %d characters long", minAliasLength, maxAliasLength))
	}
	if !aliasPattern.MatchString(alias) {
		return invalid("custom_alias", "may only contain letters, digits, hyphens and underscores")
	}
	if _, ok := reservedAliases[alias]; ok {
		return invalid("custom_alias", "is reserved")
	}
	return nil
}

// Generate draws a random base62 alias.
func (a *Allocator) Generate() (string, error) {
	code := make([]byte, 0, a.length)
	buf := make([]byte, a.length*2)

	for len(code) < a.length {
		if _, err := io.ReadFull(a.entropy, buf); err != nil {
			return "", fmt.Errorf("read entropy: %w", err)
		}
		for _, b := range buf {
			if int(b) >= alphabetCutoff {
				continue
			}
			code = append(code, alphabet[int(b)%len(alphabet)])
			if len(code) == a.length {
				break
			}
		}
	}

	return string(code), nil
}

// Claim stores l under the requested alias, or under a generated one when
// requested is empty. A taken custom alias fails with ErrAliasTaken and is
// never suffixed. Generated aliases are retried a bounded number of times.
func (a *Allocator) Claim(ctx context.Context, l storage.Link, requested string) (*storage.Link, error) {
	if requested != "" {
		if err := ValidateAlias(requested); err != nil {
			return nil, err
		}

		l.ShortCode = requested
		created, err := a.store.CreateLink(ctx, l)
		if errors.Is(err, storage.ErrConflict) {
			return nil, ErrAliasTaken
		}
		if err != nil {
			return nil, fmt.Errorf("claim alias: %w", err)
		}
		return created, nil
	}

	for attempt := 1; attempt <= a.retries; attempt++ {
		code, err := a.Generate()
		if err != nil {
			return nil, err
		}

		l.ShortCode = code
		created, err := a.store.CreateLink(ctx, l)
		if errors.Is(err, storage.ErrConflict) {
			a.logger.Debug("generated alias collided", zap.String("namespace", l.Namespace), zap.Int("attempt", attempt))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("claim alias: %w", err)
		}
		return created, nil
	}

	a.logger.Error("alias space exhausted",
		zap.String("namespace", l.Namespace),
		zap.Int("retries", a.retries),
	)
	return nil, ErrAllocationExhausted
}

// Apply writes a link update. A new short code is validated and claimed in
// the same store operation as the other fields: either everything changes or
// the old code stays bound.
func (a *Allocator) Apply(ctx context.Context, id string, upd storage.LinkUpdate) (*storage.Link, error) {
	if upd.ShortCode != nil {
		if err := ValidateAlias(*upd.ShortCode); err != nil {
			var ve *ValidationError
			if errors.As(err, &ve) {
				ve.Field = "short_code"
			}
			return nil, err
		}
	}

	l, err := a.store.UpdateLink(ctx, id, upd)
	switch {
	case errors.Is(err, storage.ErrConflict):
		return nil, ErrAliasTaken
	case errors.Is(err, storage.ErrNotFound):
		return nil, ErrNotFound
	case err != nil:
		return nil, fmt.Errorf("update link: %w", err)
	}

	return l, nil
}
