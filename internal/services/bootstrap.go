package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/anuragch/folio/internal/models"
)

// backfillPaths are the schema additions reconciled into older stored
// documents: each is set from the defaults when absent or falsy. Additive
// only, user edits are never overwritten.
var backfillPaths = []string{
	"hero.profileImage",
	"hero.intro",
	"hero.primaryBtnUrl",
	"hero.secondaryBtnUrl",
	"navbar.resumeUrl",
	"socials",
}

// overridePaths are always reset to the compiled-in defaults on every boot,
// regardless of prior value. A deliberate repair for known-bad contact data;
// edits to these two fields through the admin panel do not survive a restart.
var overridePaths = []string{
	"contact.email",
	"contact.phone",
}

// Bootstrap seeds or reconciles the stored content document against the
// current schema. Must run to completion before the service accepts requests.
// The mirror is never touched here.
func Bootstrap(local *LocalStore) error {
	n, err := local.Count()
	if err != nil {
		return fmt.Errorf("bootstrap: cannot inspect local store: %w", err)
	}

	if n == 0 {
		if err := local.Put(models.ContentKey, models.DefaultJSON()); err != nil {
			return fmt.Errorf("bootstrap: seeding defaults failed: %w", err)
		}
		log.Printf("Bootstrap: seeded default content under %q", models.ContentKey)
		return nil
	}

	raw, err := local.Get(models.ContentKey)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			// rows exist under other keys but not ours, seed just the document
			if err := local.Put(models.ContentKey, models.DefaultJSON()); err != nil {
				return fmt.Errorf("bootstrap: seeding defaults failed: %w", err)
			}
			return nil
		}
		return fmt.Errorf("bootstrap: cannot load stored document: %w", err)
	}

	// Work on the generic map so unknown legacy fields survive reconciliation.
	var doc map[string]interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		log.Printf("Bootstrap: stored document is malformed, replacing with defaults: %v", err)
		return local.Put(models.ContentKey, models.DefaultJSON())
	}

	defaults := models.DefaultDocument()

	changed := false
	for _, path := range backfillPaths {
		if isFalsy(getPath(doc, path)) {
			setPath(doc, path, getPath(defaults, path))
			changed = true
			log.Printf("Bootstrap: backfilled %s from defaults", path)
		}
	}

	for _, path := range overridePaths {
		want, _ := getPath(defaults, path).(string)
		if cur, ok := getPath(doc, path).(string); !ok || cur != want {
			setPath(doc, path, want)
			changed = true
		}
	}

	if !changed {
		return nil
	}

	reconciled, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("bootstrap: cannot serialize reconciled document: %w", err)
	}
	if err := local.Put(models.ContentKey, reconciled); err != nil {
		return fmt.Errorf("bootstrap: persisting reconciled document failed: %w", err)
	}

	return nil
}

// isFalsy mirrors the truthiness the stored documents were written against:
// nil, empty string, false and numeric zero all count as absent.
func isFalsy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case bool:
		return !t
	case float64:
		return t == 0
	}
	return false
}

// getPath walks a dot-separated path through nested JSON objects
func getPath(doc map[string]interface{}, path string) interface{} {
	parts := strings.Split(path, ".")
	var cur interface{} = doc
	for _, part := range parts {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil
		}
		cur = m[part]
	}
	return cur
}

// setPath sets a dot-separated path, creating intermediate objects as needed
func setPath(doc map[string]interface{}, path string, value interface{}) {
	parts := strings.Split(path, ".")
	cur := doc
	for _, part := range parts[:len(parts)-1] {
		next, ok := cur[part].(map[string]interface{})
		if !ok {
			next = make(map[string]interface{})
			cur[part] = next
		}
		cur = next
	}
	cur[parts[len(parts)-1]] = value
}
