package api

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/techcloud/pkg/cache"
	"github.com/matzehuels/techcloud/pkg/core/cloud"
	"github.com/matzehuels/techcloud/pkg/errors"
	"github.com/matzehuels/techcloud/pkg/render/sink"
)

// DefaultLayoutTTL is how long a layout stays retrievable by id.
const DefaultLayoutTTL = 24 * time.Hour

const layoutKeyPrefix = "layoutid:"

// LayoutStore keeps placed clouds under the ids handed out by the layout
// endpoint, so they can be fetched and rendered later without recomputing.
type LayoutStore struct {
	cache cache.Cache
	ttl   time.Duration
}

// NewLayoutStore stores layouts in c. A zero ttl uses [DefaultLayoutTTL].
func NewLayoutStore(c cache.Cache, ttl time.Duration) *LayoutStore {
	if ttl <= 0 {
		ttl = DefaultLayoutTTL
	}
	return &LayoutStore{cache: c, ttl: ttl}
}

// Put assigns a new id to res and stores its JSON document. It returns the
// id and the stored document.
func (s *LayoutStore) Put(ctx context.Context, res cloud.Result, meta ...sink.JSONOption) (string, []byte, error) {
	id := uuid.NewString()
	data, err := sink.RenderJSON(res, append(meta, sink.WithJSONID(id))...)
	if err != nil {
		return "", nil, errors.Wrap(errors.ErrCodeInternal, err, "encode layout")
	}
	if err := s.cache.Set(ctx, layoutKeyPrefix+id, data, s.ttl); err != nil {
		return "", nil, errors.Wrap(errors.ErrCodeInternal, err, "store layout")
	}
	return id, data, nil
}

// Get returns the stored layout and its document. Unknown or expired ids
// fail with NOT_FOUND; malformed ids with INVALID_INPUT.
func (s *LayoutStore) Get(ctx context.Context, id string) (cloud.Result, sink.Document, error) {
	if _, err := uuid.Parse(id); err != nil {
		return cloud.Result{}, sink.Document{}, errors.New(errors.ErrCodeInvalidInput, "invalid layout id %q", id)
	}
	data, ok, err := s.cache.Get(ctx, layoutKeyPrefix+id)
	if err != nil {
		return cloud.Result{}, sink.Document{}, errors.Wrap(errors.ErrCodeInternal, err, "load layout")
	}
	if !ok {
		return cloud.Result{}, sink.Document{}, errors.New(errors.ErrCodeNotFound, "layout %s not found", id)
	}
	res, doc, err := sink.ReadJSON(data)
	if err != nil {
		return cloud.Result{}, sink.Document{}, errors.Wrap(errors.ErrCodeInternal, err, "decode layout")
	}
	return res, doc, nil
}
