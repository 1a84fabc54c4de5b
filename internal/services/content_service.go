package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/anuragch/folio/internal/models"
)

// ErrMalformedDocument is returned by Write when the payload is not a JSON
// object. The schema itself is not validated; missing or extra fields pass.
var ErrMalformedDocument = errors.New("malformed content document")

// readSource is one entry of the read fallback chain: a name for logging and
// a uniform tryRead contract. Sources are tried in order until one yields a
// well-formed document.
type readSource struct {
	name string
	read func(ctx context.Context) ([]byte, error)
}

// ContentService is the read/write facade used by both the public site and
// the admin panel. Reads prefer the mirror and degrade through the local
// store to the compiled-in defaults; writes commit locally and mirror
// best-effort.
type ContentService struct {
	local  *LocalStore
	mirror *Mirror
	chain  []readSource
}

// NewContentService builds the service around an open local store and an
// optional mirror (pass a Mirror around a nil handle when unconfigured).
func NewContentService(local *LocalStore, mirror *Mirror) *ContentService {
	s := &ContentService{local: local, mirror: mirror}
	s.chain = []readSource{
		{
			name: "mirror",
			read: func(ctx context.Context) ([]byte, error) {
				return mirror.TryGet(ctx, models.ContentKey)
			},
		},
		{
			name: "local",
			read: func(ctx context.Context) ([]byte, error) {
				return local.Get(models.ContentKey)
			},
		},
		{
			name: "defaults",
			read: func(ctx context.Context) ([]byte, error) {
				return models.DefaultJSON(), nil
			},
		},
	}
	return s
}

// Read returns the current content document. It walks the fallback chain and
// never fails outward: the compiled-in defaults terminate the chain.
func (s *ContentService) Read(ctx context.Context) []byte {
	for _, src := range s.chain {
		doc, err := src.read(ctx)
		if err != nil {
			switch {
			case errors.Is(err, ErrMirrorNotConfigured):
				// nothing to log, fall through
			case errors.Is(err, ErrAbsent):
				log.Printf("Content read: %s has no document, falling through", src.name)
			default:
				log.Printf("Content read: %s failed (%v), falling through", src.name, err)
			}
			continue
		}
		if !json.Valid(doc) {
			log.Printf("Content read: %s returned a malformed document, falling through", src.name)
			continue
		}
		return doc
	}

	// unreachable, the defaults source cannot fail
	return models.DefaultJSON()
}

// Write replaces the content document wholesale. The local store commit is
// the durability point and the only hard error; the mirror upsert that
// follows is best-effort and only logged.
func (s *ContentService) Write(ctx context.Context, doc []byte) error {
	var shaped map[string]interface{}
	if err := json.Unmarshal(doc, &shaped); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	if err := s.local.Put(models.ContentKey, doc); err != nil {
		return err
	}

	if s.mirror.Configured() {
		if err := s.mirror.Upsert(ctx, models.ContentKey, doc); err != nil {
			log.Printf("Mirror update failed (write already durable): %v", err)
		}
	}

	return nil
}

// SyncToMirror force-pushes the local store document to the mirror. Unlike
// the write path, failures here are surfaced: this is an explicit operator
// action whose entire purpose is to talk to the mirror.
func (s *ContentService) SyncToMirror(ctx context.Context) error {
	if !s.mirror.Configured() {
		return ErrMirrorNotConfigured
	}

	doc, err := s.local.Get(models.ContentKey)
	if err != nil {
		return fmt.Errorf("cannot read local document for sync: %w", err)
	}

	if err := s.mirror.Upsert(ctx, models.ContentKey, doc); err != nil {
		return err
	}

	return nil
}

// MirrorStatus reports whether the mirror is usable, for operator visibility
type MirrorStatus struct {
	Configured   bool   `json:"configured"`
	EndpointHint string `json:"endpointHint,omitempty"`
}

// MirrorStatus returns the mirror's configuration state
func (s *ContentService) MirrorStatus() MirrorStatus {
	return MirrorStatus{
		Configured:   s.mirror.Configured(),
		EndpointHint: s.mirror.EndpointHint(),
	}
}
