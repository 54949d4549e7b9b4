// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

/*
Package authz provides role-based authorization using Casbin.

The model and policy are embedded (model.conf, policy.csv):

	g, admin, user
	p, user,  /api/user/*,  (read)|(write)
	p, admin, /api/admin/*, (read)|(write)

A request's role comes from the stored account, not from the token: the
middleware re-reads the user on every protected request so that revoking
isAdmin takes effect immediately. The check order is fixed:

 1. no authenticated claims: 401
 2. the account no longer exists: 404
 3. the role may not perform the action on the path: 403

Usage:

	enforcer, err := authz.NewEnforcer()
	if err != nil {
	    return err
	}
	mw := authz.NewMiddleware(enforcer, store, writeError)
	r.With(authMW.Authenticate, mw.Authorize).Route("/api/admin", ...)
*/
package authz
