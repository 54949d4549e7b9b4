// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

// Package testinfra provides test infrastructure for integration testing with containers.
//
// This package uses testcontainers-go to run a real MongoDB for the store
// integration tests:
//
//	func TestMongoStore(t *testing.T) {
//	    testinfra.SkipIfNoDocker(t)
//	    ctx := context.Background()
//	    mongo, err := testinfra.NewMongoContainer(ctx)
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    defer testinfra.CleanupContainer(t, ctx, mongo)
//
//	    st, err := store.OpenMongo(ctx, config.StoreConfig{
//	        MongoURI:      mongo.URI,
//	        MongoDatabase: "mcutracker_test",
//	    })
//	    // ...
//	}
//
// # CI Considerations
//
// These tests require Docker and network access and only build with the
// integration tag. They are skipped when Docker is unavailable.
package testinfra
