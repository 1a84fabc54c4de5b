package models

import (
	"encoding/json"
	"log"

	"github.com/anuragch/folio/data"
)

var defaultContent SiteContent

func init() {
	if err := json.Unmarshal(data.DefaultsJSON, &defaultContent); err != nil {
		log.Fatalf("Embedded defaults.json is invalid: %v", err)
	}
}

// DefaultContent returns the compiled-in default document as a typed value.
func DefaultContent() SiteContent {
	return defaultContent
}

// DefaultJSON returns the compiled-in default document as serialized JSON.
// Callers get a copy since slices written to fasthttp responses may be retained.
func DefaultJSON() []byte {
	out := make([]byte, len(data.DefaultsJSON))
	copy(out, data.DefaultsJSON)
	return out
}

// DefaultDocument returns the compiled-in default document as a generic map,
// the form the bootstrap reconciler reads default values from.
func DefaultDocument() map[string]interface{} {
	var doc map[string]interface{}
	// cannot fail, validated at init
	_ = json.Unmarshal(data.DefaultsJSON, &doc)
	return doc
}
