// Seeds the tour catalog from a YAML fixture file. Safe to re-run: tours
// are matched by name and updated in place.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goccy/go-yaml"
	"gorm.io/gorm/clause"

	"github.com/WildTrails/WT-Backend/internal/config"
	"github.com/WildTrails/WT-Backend/internal/db"
	"github.com/WildTrails/WT-Backend/internal/tours"
)

type tourFixture struct {
	Name         string   `yaml:"name"`
	Duration     int      `yaml:"duration"`
	MaxGroupSize int      `yaml:"max_group_size"`
	Difficulty   string   `yaml:"difficulty"`
	Price        float64  `yaml:"price"`
	Summary      string   `yaml:"summary"`
	Description  string   `yaml:"description"`
	ImageCover   string   `yaml:"image_cover"`
	Images       []string `yaml:"images"`
	StartDates   []string `yaml:"start_dates"`
}

type fixture struct {
	Tours []tourFixture `yaml:"tours"`
}

func main() {
	path := flag.String("file", "dev-data/tours.yaml", "path to the tour fixture file")
	flag.Parse()

	cfg := config.MustLoad()
	db.Connect(cfg.DatabaseURL)
	tours.Init()

	raw, err := os.ReadFile(*path)
	if err != nil {
		log.Fatal("Failed to read fixture file: ", err)
	}

	var data fixture
	if err := yaml.Unmarshal(raw, &data); err != nil {
		log.Fatal("Failed to parse fixture file: ", err)
	}

	for _, f := range data.Tours {
		tour := tours.Tour{
			Name:         f.Name,
			Duration:     f.Duration,
			MaxGroupSize: f.MaxGroupSize,
			Difficulty:   f.Difficulty,
			Price:        f.Price,
			Summary:      f.Summary,
			Description:  f.Description,
			ImageCover:   f.ImageCover,
			Images:       f.Images,
			StartDates:   f.StartDates,
		}
		err := db.DB.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"duration", "max_group_size", "difficulty", "price",
				"summary", "description", "image_cover", "images", "start_dates",
			}),
		}).Create(&tour).Error
		if err != nil {
			log.Fatalf("Failed to seed tour %q: %v", tour.Name, err)
		}
	}

	fmt.Printf("Seeded %d tours\n", len(data.Tours))
}
