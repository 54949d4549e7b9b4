// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

//go:build integration

package store

import (
	"context"
	"testing"
	"time"

	"github.com/tomtom215/mcutracker/internal/config"
	"github.com/tomtom215/mcutracker/internal/testinfra"
)

func TestMongoStore_Integration(t *testing.T) {
	testinfra.SkipIfNoDocker(t)

	ctx := context.Background()
	container, err := testinfra.NewMongoContainer(ctx)
	if err != nil {
		t.Fatalf("NewMongoContainer() error = %v", err)
	}
	defer testinfra.CleanupContainer(t, ctx, container)

	st, err := OpenMongo(ctx, config.StoreConfig{
		Driver:        "mongo",
		MongoURI:      container.URI,
		MongoDatabase: "mcutracker_test",
		Timeout:       10 * time.Second,
	})
	if err != nil {
		t.Fatalf("OpenMongo() error = %v", err)
	}
	defer st.Close()

	if st.Backend() != "mongo" {
		t.Errorf("Backend() = %q", st.Backend())
	}
	runStoreSuite(t, st)
}
