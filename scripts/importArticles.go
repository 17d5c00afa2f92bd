package main

import (
	"encoding/csv"
	"log"
	"os"
	"strconv"
	"strings"
	"tfoc/config"
	"tfoc/database"
	"tfoc/models"
)

// Imports the article library from Articles.csv. Rows are upserted by slug
// so the script can be re-run after content edits.
func main() {
	// Load config and connect to database
	config.LoadConfig()
	database.ConnectDb()

	// Open CSV file
	file, err := os.Open("Articles.csv")
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	// Create CSV reader
	reader := csv.NewReader(file)

	// Read all records
	records, err := reader.ReadAll()
	if err != nil {
		log.Fatalf("Failed to read CSV: %v", err)
	}

	if len(records) < 2 {
		log.Fatal("CSV file is empty or has only headers")
	}

	// Skip header row
	header := records[0]
	log.Printf("CSV Headers: %v", header)
	log.Printf("Total rows to import: %d", len(records)-1)

	// Map header indices
	headerIndex := make(map[string]int)
	for i, h := range header {
		headerIndex[strings.TrimSpace(h)] = i
	}

	inserted := 0
	updated := 0
	skipped := 0

	for _, row := range records[1:] {
		article := models.Article{
			Title:            getField(row, headerIndex, "title"),
			Slug:             getField(row, headerIndex, "slug"),
			Summary:          getField(row, headerIndex, "summary"),
			Body:             getField(row, headerIndex, "body"),
			EstimatedMinutes: parseInt(getField(row, headerIndex, "estimatedMinutes")),
			OrderIndex:       parseInt(getField(row, headerIndex, "orderIndex")),
			IsPublished:      getField(row, headerIndex, "published") == "true",
			IsDeleted:        false,
		}

		// Skip if no slug or title
		if article.Slug == "" || article.Title == "" {
			skipped++
			continue
		}

		// Check if article exists by slug
		var existing models.Article
		result := database.Database.Db.Where("slug = ?", article.Slug).First(&existing)

		if result.Error != nil {
			// Insert new article
			if err := database.Database.Db.Create(&article).Error; err != nil {
				log.Printf("Error inserting article %s: %v", article.Slug, err)
				continue
			}
			inserted++
		} else {
			// Update existing article
			existing.Title = article.Title
			existing.Summary = article.Summary
			existing.Body = article.Body
			existing.EstimatedMinutes = article.EstimatedMinutes
			existing.OrderIndex = article.OrderIndex
			existing.IsPublished = article.IsPublished

			if err := database.Database.Db.Save(&existing).Error; err != nil {
				log.Printf("Error updating article %s: %v", article.Slug, err)
				continue
			}
			updated++
		}
	}

	log.Printf("=== Import Complete ===")
	log.Printf("Inserted: %d", inserted)
	log.Printf("Updated: %d", updated)
	log.Printf("Skipped: %d", skipped)
}

func getField(row []string, headerIndex map[string]int, name string) string {
	idx, ok := headerIndex[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseInt(s string) int {
	if s == "" {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}
