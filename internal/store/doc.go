// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

/*
Package store persists user accounts and admin overrides.

Two backends implement Store:

  - BadgerStore: embedded BadgerDB, the default. Users live under "user:<id>"
    with a unique "user_email:<email>" index; overrides under "override:<itemId>".
  - MongoStore: a MongoDB database with the collections "users" and "mcuitems",
    each with a unique index (email, itemId).

Every write is a single atomic operation on one document: a Badger
transaction or a Mongo upsert. Concurrent writers to the same document are
last-write-wins.

Errors:
  - ErrNotFound when a user or override does not exist
  - ErrDuplicateEmail when registration hits the unique email index
  - anything else is classified apperr.StoreUnavailable
*/
package store
