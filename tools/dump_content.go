package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/anuragch/folio/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Dumps the stored content document from a local sqlite store, pretty-printed.
// Usage: go run tools/dump_content.go [path-to-db]
func main() {
	path := "portfolio.db"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		log.Fatal(err)
	}

	var row models.ContentRow
	if err := db.Where("key = ?", models.ContentKey).First(&row).Error; err != nil {
		log.Fatalf("No content row in %s: %v", path, err)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, []byte(row.Value.JSON), "", "  "); err != nil {
		log.Fatalf("Stored document is not valid JSON: %v", err)
	}

	fmt.Printf("=== %s (updated %s) ===\n", models.ContentKey, row.UpdatedAt.Format("2006-01-02 15:04:05"))
	fmt.Println(pretty.String())
}
