package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/vkuzmenko/techstore-backend/internal/catalog"
	"github.com/vkuzmenko/techstore-backend/pkg/config"
	"github.com/vkuzmenko/techstore-backend/pkg/db"
	"github.com/vkuzmenko/techstore-backend/pkg/db/models"
	"github.com/vkuzmenko/techstore-backend/pkg/logger"
	"github.com/vkuzmenko/techstore-backend/pkg/migrate"
)

type notebookSeed struct {
	title             string
	slug              string
	price             string
	diagonal          string
	displayType       string
	processorFreq     string
	ram               string
	video             string
	timeWithoutCharge string
}

type smartphoneSeed struct {
	title       string
	slug        string
	price       string
	diagonal    string
	displayType string
	resolution  string
	accumVolume string
	ram         string
	sd          bool
	sdVolume    string
	mainCam     string
	frontCam    string
}

var notebookSeeds = []notebookSeed{
	{"Lenovo ThinkPad X1 Carbon", "lenovo-thinkpad-x1-carbon", "129990", "14\"", "IPS", "2.8 ГГц", "16 ГБ", "Intel Iris Xe", "15 ч"},
	{"ASUS ZenBook 14", "asus-zenbook-14", "89990", "14\"", "OLED", "2.5 ГГц", "16 ГБ", "Intel Iris Xe", "12 ч"},
	{"Apple MacBook Air M2", "apple-macbook-air-m2", "119990", "13.6\"", "Retina", "3.5 ГГц", "8 ГБ", "Apple M2", "18 ч"},
}

var smartphoneSeeds = []smartphoneSeed{
	{"Samsung Galaxy S23", "samsung-galaxy-s23", "74990", "6.1\"", "AMOLED", "2340x1080", "3900 мАч", "8 ГБ", true, "1 ТБ", "50", "12"},
	{"Apple iPhone 15", "apple-iphone-15", "89990", "6.1\"", "OLED", "2556x1179", "3349 мАч", "6 ГБ", false, "", "48", "12"},
}

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	requireResource(ctx, logg, "database", err)
	defer dbClient.Close()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		requireResource(ctx, logg, "migrations", err)
	}

	repo := catalog.NewRepository(dbClient.DB())
	images := catalog.NewImageStore(cfg.Media.Dir, cfg.Media.MaxImageBytes)
	svc, err := catalog.NewService(repo, images)
	requireResource(ctx, logg, "catalog service", err)

	notebooks, err := ensureCategory(ctx, repo, svc, "Ноутбуки", "notebooks")
	requireResource(ctx, logg, "notebooks category", err)

	smartphones, err := ensureCategory(ctx, repo, svc, "Смартфоны", "smartphones")
	requireResource(ctx, logg, "smartphones category", err)

	for _, seed := range notebookSeeds {
		if _, err := repo.FindNotebookBySlug(ctx, seed.slug); err == nil {
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			requireResource(ctx, logg, "notebook lookup", err)
		}

		_, err := svc.CreateNotebook(ctx, catalog.CreateNotebookInput{
			CategoryID:        notebooks.ID,
			Title:             seed.title,
			Slug:              seed.slug,
			Price:             decimal.RequireFromString(seed.price),
			Diagonal:          seed.diagonal,
			DisplayType:       seed.displayType,
			ProcessorFreq:     seed.processorFreq,
			RAM:               seed.ram,
			Video:             seed.video,
			TimeWithoutCharge: seed.timeWithoutCharge,
			Image: &catalog.ImageUpload{
				Filename: seed.slug + ".png",
				Data:     placeholderPNG(),
			},
		})
		requireResource(ctx, logg, "notebook "+seed.slug, err)
		logg.Info(logg.WithFields(ctx, map[string]any{"slug": seed.slug}), "seeded notebook")
	}

	for _, seed := range smartphoneSeeds {
		if _, err := repo.FindSmartphoneBySlug(ctx, seed.slug); err == nil {
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			requireResource(ctx, logg, "smartphone lookup", err)
		}

		input := catalog.CreateSmartphoneInput{
			CategoryID:  smartphones.ID,
			Title:       seed.title,
			Slug:        seed.slug,
			Price:       decimal.RequireFromString(seed.price),
			Diagonal:    seed.diagonal,
			DisplayType: seed.displayType,
			Resolution:  seed.resolution,
			AccumVolume: seed.accumVolume,
			RAM:         seed.ram,
			SD:          seed.sd,
			MainCam:     seed.mainCam,
			FrontCam:    seed.frontCam,
			Image: &catalog.ImageUpload{
				Filename: seed.slug + ".png",
				Data:     placeholderPNG(),
			},
		}
		if seed.sd {
			input.SDVolume = &seed.sdVolume
		}

		_, err := svc.CreateSmartphone(ctx, input)
		requireResource(ctx, logg, "smartphone "+seed.slug, err)
		logg.Info(logg.WithFields(ctx, map[string]any{"slug": seed.slug}), "seeded smartphone")
	}

	logg.Info(ctx, "seed complete")
}

func ensureCategory(ctx context.Context, repo *catalog.Repository, svc catalog.Service, name, slug string) (*models.Category, error) {
	category, err := repo.FindCategoryBySlug(ctx, slug)
	if err == nil {
		return category, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return svc.CreateCategory(ctx, catalog.CreateCategoryInput{Name: name, Slug: slug})
}

// placeholderPNG renders a solid 600x600 image that clears the upload bounds.
func placeholderPNG() []byte {
	img := image.NewRGBA(image.Rect(0, 0, 600, 600))
	for y := 0; y < 600; y++ {
		for x := 0; x < 600; x++ {
			img.Set(x, y, color.RGBA{R: 0xE8, G: 0xEA, B: 0xED, A: 0xFF})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
