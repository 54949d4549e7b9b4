// MCU Tracker - Marvel Cinematic Universe Watch Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mcutracker

// Package docs holds the OpenAPI document served under /swagger/. It is
// regenerated from the handler annotations with:
//
//	swag init -g cmd/server/docs.go -o docs --outputTypes go
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "GitHub Repository",
            "url": "https://github.com/tomtom215/mcutracker/issues"
        },
        "license": {
            "name": "AGPL-3.0-or-later",
            "url": "https://www.gnu.org/licenses/agpl-3.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/register": {
            "post": {
                "tags": ["Auth"],
                "summary": "Create an account",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/account.RegisterRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "400": {"description": "Validation failed or email taken", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "429": {"description": "Too many requests", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Log in",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/account.LoginRequest"}}],
                "responses": {
                    "200": {"description": "Token and user; also sets the token cookie", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "401": {"description": "Bad credentials", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "429": {"description": "Too many requests", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["Auth"],
                "summary": "Clear the token cookie",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.APIResponse"}}}
            }
        },
        "/user/progress": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["User"],
                "summary": "Watched item ids",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["User"],
                "summary": "Replace the watched set",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/account.ProgressRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/user/progress/toggle": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["User"],
                "summary": "Flip one item",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/account.ToggleRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.APIResponse"}}}
            }
        },
        "/user/preferences": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["User"],
                "summary": "UI preferences",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.APIResponse"}}}
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["User"],
                "summary": "Update some preferences",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/models.PreferencesPatch"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "400": {"description": "No recognized field", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/user/stats": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["User"],
                "summary": "Watch statistics",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.APIResponse"}}}
            }
        },
        "/user/achievements": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["User"],
                "summary": "Achievement status",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.APIResponse"}}}
            }
        },
        "/user/share": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["User"],
                "summary": "Shareable progress summary",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.APIResponse"}}}
            }
        },
        "/mcu": {
            "get": {
                "tags": ["Catalog"],
                "summary": "Override field sets by item id",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.APIResponse"}}}
            }
        },
        "/catalog": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List titles",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "enum": ["all", "movie", "series"], "name": "type", "in": "query"},
                    {"type": "integer", "name": "phase", "in": "query"},
                    {"type": "string", "description": "Comma-separated years", "name": "year", "in": "query"},
                    {"type": "string", "description": "Comma-separated directors or creators", "name": "director", "in": "query"},
                    {"type": "string", "name": "q", "in": "query"},
                    {"type": "string", "enum": ["chronological", "release"], "name": "order", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "400": {"description": "Bad filter", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/catalog/timeline": {
            "get": {
                "tags": ["Catalog"],
                "summary": "Titles grouped by phase",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.APIResponse"}}}
            }
        },
        "/catalog/facets": {
            "get": {
                "tags": ["Catalog"],
                "summary": "Distinct years and directors",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.APIResponse"}}}
            }
        },
        "/catalog/{id}": {
            "get": {
                "tags": ["Catalog"],
                "summary": "One effective title",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "404": {"description": "Unknown title", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/admin/mcu-items": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Admin"],
                "summary": "Every override record",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "403": {"description": "Not an administrator", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Admin"],
                "summary": "Create or replace an override",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/admin.UpsertRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/admin/mcu-items/purge-dead-images": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Admin"],
                "summary": "Clear denylisted image URLs",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.APIResponse"}}}
            }
        },
        "/health/live": {
            "get": {
                "tags": ["Health"],
                "summary": "Liveness",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.APIResponse"}}}
            }
        },
        "/health/ready": {
            "get": {
                "tags": ["Health"],
                "summary": "Readiness",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "503": {"description": "Store unreachable", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        }
    },
    "definitions": {
        "api.APIResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {},
                "error": {"$ref": "#/definitions/api.APIError"},
                "meta": {"$ref": "#/definitions/api.APIMeta"}
            }
        },
        "api.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string", "example": "VALIDATION_FAILED"},
                "message": {"type": "string"},
                "details": {},
                "request_id": {"type": "string"}
            }
        },
        "api.APIMeta": {
            "type": "object",
            "properties": {
                "request_id": {"type": "string"},
                "timestamp": {"type": "string", "format": "date-time"},
                "duration_ms": {"type": "integer"}
            }
        },
        "account.RegisterRequest": {
            "type": "object",
            "required": ["name", "email", "password"],
            "properties": {
                "name": {"type": "string", "minLength": 2, "maxLength": 100},
                "email": {"type": "string", "maxLength": 254},
                "password": {"type": "string", "minLength": 6, "maxLength": 100}
            }
        },
        "account.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "account.ProgressRequest": {
            "type": "object",
            "properties": {
                "watchedItems": {"type": "array", "maxItems": 200, "items": {"type": "string"}}
            }
        },
        "account.ToggleRequest": {
            "type": "object",
            "required": ["itemId"],
            "properties": {
                "itemId": {"type": "string"}
            }
        },
        "models.PreferencesPatch": {
            "type": "object",
            "properties": {
                "hideWhatsNew": {"type": "boolean"},
                "hideOnboarding": {"type": "boolean"},
                "hideSpoilerWarning": {"type": "boolean"},
                "lastSeenVersion": {"type": "string"}
            }
        },
        "admin.UpsertRequest": {
            "type": "object",
            "required": ["itemId"],
            "properties": {
                "itemId": {"type": "string"},
                "trailerUrl": {"type": "string"},
                "trailerUrlDublado": {"type": "string"},
                "trailerUrlLegendado": {"type": "string"},
                "customDescription": {"type": "string"},
                "customSynopsis": {"type": "string"},
                "customImageUrl": {"type": "string"},
                "customBackdropUrl": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "\"Bearer <token>\", or the token cookie set by /api/auth/login.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "tags": [
        {"description": "Registration, login and logout", "name": "Auth"},
        {"description": "Watch progress, preferences and derived views of the signed-in user", "name": "User"},
        {"description": "Effective catalog with admin overrides applied", "name": "Catalog"},
        {"description": "Override editing for administrators", "name": "Admin"},
        {"description": "Liveness and readiness probes", "name": "Health"}
    ]
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:3000",
	BasePath:         "/api",
	Schemes:          []string{"http", "https"},
	Title:            "MCU Tracker API",
	Description:      "Watch-progress tracker for the Marvel Cinematic Universe catalog.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
