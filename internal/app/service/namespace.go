package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/atinyakov/shortlink-registry/internal/storage"
)

const maxLabelLength = 63

var labelPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)

// reservedLabels cannot be claimed by users.
var reservedLabels = map[string]struct{}{
	"admin": {},
	"api":   {},
	"app":   {},
	"mail":  {},
	"www":   {},
}

// NamespaceService binds subdomain labels to their owners.
type NamespaceService struct {
	store  NamespaceStore
	logger *zap.Logger
	now    Clock
}

func NewNamespaceService(store NamespaceStore, logger *zap.Logger, opts ...Option) *NamespaceService {
	o := applyOptions(opts)
	return &NamespaceService{
		store:  store,
		logger: logger,
		now:    o.clock,
	}
}

// NormalizeLabel lowercases and trims a label. DNS labels are case-insensitive.
func NormalizeLabel(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

// ValidateLabel checks a normalized label.
func ValidateLabel(label string) error {
	if label == "" || len(label) > maxLabelLength {
		return invalid("subdomain", fmt.Sprintf("must be 1 to %d characters long", maxLabelLength))
	}
	if !labelPattern.MatchString(label) {
		return invalid("subdomain", "may only contain lowercase letters, digits and inner hyphens")
	}
	if _, ok := reservedLabels[label]; ok {
		return invalid("subdomain", "is reserved")
	}
	return nil
}

// Bind claims label for the owner, replacing the owner's previous label if any.
// A label held by someone else fails with ErrLabelTaken.
func (s *NamespaceService) Bind(ctx context.Context, ownerID, label string) (*storage.Subdomain, error) {
	label = NormalizeLabel(label)
	if err := ValidateLabel(label); err != nil {
		return nil, err
	}

	sd, err := s.store.BindSubdomain(ctx, storage.Subdomain{
		OwnerID:   ownerID,
		Label:     label,
		CreatedAt: s.now().UTC(),
	})
	if errors.Is(err, storage.ErrConflict) {
		return nil, ErrLabelTaken
	}
	if err != nil {
		return nil, fmt.Errorf("bind subdomain: %w", err)
	}

	s.logger.Info("subdomain bound", zap.String("owner_id", ownerID), zap.String("label", sd.Label))
	return sd, nil
}

// Unbind releases the owner's label. Links that lived under it are orphaned
// for good.
func (s *NamespaceService) Unbind(ctx context.Context, ownerID string) error {
	err := s.store.UnbindSubdomain(ctx, ownerID)
	if errors.Is(err, storage.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("unbind subdomain: %w", err)
	}

	s.logger.Info("subdomain released", zap.String("owner_id", ownerID))
	return nil
}

func (s *NamespaceService) Current(ctx context.Context, ownerID string) (*storage.Subdomain, error) {
	sd, err := s.store.FindSubdomainByOwner(ctx, ownerID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotFound
	}
	return sd, err
}

// Resolve returns the owner of label. The root namespace has no owner.
func (s *NamespaceService) Resolve(ctx context.Context, label string) (string, error) {
	if label == storage.RootNamespace {
		return "", nil
	}

	sd, err := s.store.FindSubdomainByLabel(ctx, NormalizeLabel(label))
	if errors.Is(err, storage.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return sd.OwnerID, nil
}

// namespaceOf is the namespace new links of the owner are created in.
func (s *NamespaceService) namespaceOf(ctx context.Context, ownerID string) (string, error) {
	if ownerID == "" {
		return storage.RootNamespace, nil
	}

	sd, err := s.store.FindSubdomainByOwner(ctx, ownerID)
	if errors.Is(err, storage.ErrNotFound) {
		return storage.RootNamespace, nil
	}
	if err != nil {
		return "", err
	}
	return sd.Label, nil
}
