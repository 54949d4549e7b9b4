// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

// Package config loads MCU Tracker configuration with Koanf v2.
//
// Sources are layered, later layers winning:
//
//  1. Built-in defaults (defaultConfig)
//  2. An optional YAML file: $CONFIG_PATH, ./config.yaml, ./config.yml or /etc/mcutracker/config.yaml
//  3. Environment variables, mapped explicitly by envTransformFunc
//
// Example config.yaml:
//
//	server:
//	  port: 3000
//	security:
//	  jwt_secret: "use-openssl-rand-base64-32-output-here"
//	  cors_origins: ["https://mcu.example.com"]
//	store:
//	  driver: mongo
//	  mongo_uri: mongodb://localhost:27017
//	catalog:
//	  minutes_per_episode: 45
//
// Every loaded Config is validated; errors name the environment variable to fix.
package config
