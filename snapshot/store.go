package snapshot

import (
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/vecbuf"
	"github.com/hupe1980/vecbuf/blobstore"
	"github.com/hupe1980/vecbuf/resource"
)

// Extension is appended to snapshot names to form blob names.
const Extension = ".vbuf"

// Store saves and loads vectors by name.
type Store struct {
	blobs      blobstore.BlobStore
	rc         *resource.Controller
	logger     *vecbuf.Logger
	encodeOpts []vecbuf.EncodeOption
}

// Option configures a Store.
type Option func(*Store)

// WithResourceController throttles snapshot IO and bounds SaveAll
// concurrency with rc.
func WithResourceController(rc *resource.Controller) Option {
	return func(s *Store) {
		s.rc = rc
	}
}

// WithLogger sets the logger. If nil is passed, NoopLogger is used.
func WithLogger(l *vecbuf.Logger) Option {
	return func(s *Store) {
		if l == nil {
			l = vecbuf.NoopLogger()
		}
		s.logger = l
	}
}

// WithEncodeOptions sets the default encode options used by Save.
func WithEncodeOptions(opts ...vecbuf.EncodeOption) Option {
	return func(s *Store) {
		s.encodeOpts = opts
	}
}

// New returns a snapshot store writing to blobs.
func New(blobs blobstore.BlobStore, opts ...Option) *Store {
	s := &Store{
		blobs:  blobs,
		logger: vecbuf.NoopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func blobName(name string) string {
	return name + Extension
}

// Save encodes v and writes it under name. Encode options passed here are
// applied after the store defaults.
func (s *Store) Save(ctx context.Context, name string, v *vecbuf.Vector, opts ...vecbuf.EncodeOption) error {
	encOpts := append(append([]vecbuf.EncodeOption(nil), s.encodeOpts...), opts...)

	data, err := v.Encode(encOpts...)
	if err != nil {
		return fmt.Errorf("snapshot %q: %w", name, err)
	}

	if err := s.rc.AcquireIO(ctx, len(data)); err != nil {
		return err
	}

	if err := s.blobs.Put(ctx, blobName(name), data); err != nil {
		return fmt.Errorf("snapshot %q: %w", name, err)
	}

	s.logger.Debug("snapshot saved",
		"name", name,
		"type", v.ElementType(),
		"length", v.Len(),
		"bytes", len(data),
	)
	return nil
}

// Load reads and decodes the snapshot stored under name. Vector options
// configure the decoded vector.
func (s *Store) Load(ctx context.Context, name string, opts ...vecbuf.Option) (*vecbuf.Vector, error) {
	blob, err := s.blobs.Open(ctx, blobName(name))
	if err != nil {
		return nil, fmt.Errorf("snapshot %q: %w", name, err)
	}
	defer blob.Close()

	rc, err := blob.ReadRange(ctx, 0, blob.Size())
	if err != nil {
		return nil, fmt.Errorf("snapshot %q: %w", name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(resource.NewRateLimitedReader(ctx, rc, s.rc))
	if err != nil {
		return nil, fmt.Errorf("snapshot %q: %w", name, err)
	}

	v, err := vecbuf.Decode(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("snapshot %q: %w", name, err)
	}

	s.logger.Debug("snapshot loaded",
		"name", name,
		"type", v.ElementType(),
		"length", v.Len(),
		"bytes", len(data),
	)
	return v, nil
}

// SaveAll saves every vector in vectors concurrently. At most
// MaxBackgroundWorkers saves run at once when a resource controller is set.
// The first error cancels the remaining saves.
func (s *Store) SaveAll(ctx context.Context, vectors map[string]*vecbuf.Vector, opts ...vecbuf.EncodeOption) error {
	g, ctx := errgroup.WithContext(ctx)

	for name, v := range vectors {
		if err := s.rc.AcquireBackground(ctx); err != nil {
			if werr := g.Wait(); werr != nil {
				return werr
			}
			return err
		}
		g.Go(func() error {
			defer s.rc.ReleaseBackground()
			return s.Save(ctx, name, v, opts...)
		})
	}

	return g.Wait()
}

// List returns the sorted names of snapshots starting with prefix.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	blobs, err := s.blobs.List(ctx, prefix)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(blobs))
	for _, b := range blobs {
		if name, ok := strings.CutSuffix(b, Extension); ok {
			names = append(names, name)
		}
	}
	return names, nil
}

// Delete removes the snapshot stored under name.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := s.blobs.Delete(ctx, blobName(name)); err != nil {
		return fmt.Errorf("snapshot %q: %w", name, err)
	}
	s.logger.Debug("snapshot deleted", "name", name)
	return nil
}
