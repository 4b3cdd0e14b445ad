// Package docs holds the OpenAPI description served at /swagger. It follows
// the swag layout and mirrors the handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/nearby": {
            "get": {
                "summary": "Nearest place of one category",
                "parameters": [
                    {"type": "number", "description": "latitude", "name": "lat", "in": "query", "required": true},
                    {"type": "number", "description": "longitude", "name": "lon", "in": "query", "required": true},
                    {"type": "string", "description": "school, bus_stop or mall", "name": "category", "in": "query", "required": true},
                    {"type": "number", "description": "search radius", "name": "radius_km", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ResolvedPlace"}}
                }
            }
        },
        "/nearby/all": {
            "get": {
                "summary": "Nearest place of every category",
                "parameters": [
                    {"type": "number", "description": "latitude", "name": "lat", "in": "query", "required": true},
                    {"type": "number", "description": "longitude", "name": "lon", "in": "query", "required": true},
                    {"type": "number", "description": "search radius", "name": "radius_km", "in": "query"}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "object", "additionalProperties": {"$ref": "#/definitions/models.ResolvedPlace"}}
                    }
                }
            }
        },
        "/places": {
            "get": {
                "summary": "Search imported places by name",
                "parameters": [
                    {"type": "string", "description": "name fragment", "name": "q", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Place"}}}
                }
            }
        },
        "/places/{id}": {
            "get": {
                "summary": "Imported place by id",
                "parameters": [
                    {"type": "integer", "description": "place id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Place"}}
                }
            }
        },
        "/reverse-geocode": {
            "get": {
                "summary": "Address of a coordinate",
                "parameters": [
                    {"type": "number", "description": "latitude", "name": "lat", "in": "query", "required": true},
                    {"type": "number", "description": "longitude", "name": "lon", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Address"}}
                }
            }
        },
        "/sessions": {
            "post": {
                "summary": "Open a map session",
                "responses": {
                    "201": {"description": "Created", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/sessions/{id}": {
            "get": {
                "summary": "Current state of a map session",
                "parameters": [
                    {"type": "string", "description": "session id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Snapshot"}}
                }
            },
            "delete": {
                "summary": "Close a map session",
                "parameters": [
                    {"type": "string", "description": "session id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/sessions/{id}/location": {
            "put": {
                "summary": "Move the user marker and refresh nearby places",
                "parameters": [
                    {"type": "string", "description": "session id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Snapshot"}}
                }
            }
        }
    },
    "definitions": {
        "models.Address": {
            "type": "object",
            "properties": {
                "display_name": {"type": "string"},
                "location": {"$ref": "#/definitions/models.Coordinate"}
            }
        },
        "models.Coordinate": {
            "type": "object",
            "properties": {
                "lat": {"type": "number"},
                "lon": {"type": "number"}
            }
        },
        "models.Place": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "id": {"type": "integer"},
                "latitude": {"type": "number"},
                "longitude": {"type": "number"},
                "name": {"type": "string"}
            }
        },
        "models.ResolvedPlace": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "distance_km": {"type": "number"},
                "fallback_reason": {"type": "string"},
                "location": {"$ref": "#/definitions/models.Coordinate"},
                "name": {"type": "string"},
                "source": {"type": "string"},
                "synthetic": {"type": "boolean"}
            }
        },
        "models.Snapshot": {
            "type": "object",
            "properties": {
                "address": {"type": "string"},
                "origin": {"$ref": "#/definitions/models.Coordinate"},
                "places": {"type": "object", "additionalProperties": {"$ref": "#/definitions/models.ResolvedPlace"}},
                "sequence": {"type": "object", "additionalProperties": {"type": "integer"}},
                "session_id": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "SMV Nearby API",
	Description:      "Nearest school, bus stop and mall for the SMV e-rickshaw map widget.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
