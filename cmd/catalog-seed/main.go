// Command catalog-seed loads an exercise catalog from YAML and upserts it by name.
package main

import (
	"alcyxob/adaptive-coach/internal/catalog"
	"alcyxob/adaptive-coach/internal/config"
	"alcyxob/adaptive-coach/internal/logging"
	"alcyxob/adaptive-coach/internal/repository/mongo"
	"alcyxob/adaptive-coach/internal/service"
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

func main() {
	exitCode := 0
	defer func() { os.Exit(exitCode) }()

	configDir := flag.String("config", ".", "directory containing config.yaml")
	file := flag.String("file", "", "path to the exercise catalog YAML")
	dryRun := flag.Bool("dry-run", false, "parse and validate only")
	flag.Parse()

	if *file == "" {
		fmt.Fprintf(os.Stderr, "Usage: catalog-seed -file exercises.yaml [-config dir] [-dry-run]\n")
		os.Exit(2)
	}

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		logrus.Fatalf("could not load config: %s", err)
	}
	logging.Setup(logging.SetupParams{LogLevel: cfg.Log.Level, LogFormatJSON: cfg.Log.JSON})

	exercises, err := catalog.Load(*file)
	if err != nil {
		logrus.Fatal(err)
	}
	logrus.WithField("exercises", len(exercises)).Info("catalog parsed")
	if *dryRun {
		return
	}

	client, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		logrus.Fatalf("could not connect to MongoDB: %s", err)
	}
	defer func() {
		if err := mongo.DisconnectDB(client); err != nil {
			logrus.Errorf("failed to disconnect MongoDB: %s", err)
		}
	}()
	db := client.Database(cfg.Database.Name)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	mongo.EnsureIndexes(ctx, db)

	svc := service.NewExerciseService(mongo.NewMongoExerciseRepository(db), nil)
	res, err := svc.SeedCatalog(ctx, exercises)
	if err != nil {
		logrus.Errorf("seed failed: %s", err)
		exitCode = 1
		return
	}
	fmt.Printf("created %d, updated %d exercises\n", res.Created, res.Updated)
}
