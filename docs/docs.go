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
        "/api/v1/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["System"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/api/v1/places/map": {
            "get": {
                "description": "Один эндпоинт, три режима: mode=regions, city=<slug>, lat+lng+radius. Некорректный или пустой запрос возвращает пустой массив.",
                "produces": ["application/json"],
                "tags": ["Map"],
                "summary": "Данные для карты",
                "parameters": [
                    {"type": "string", "description": "regions", "name": "mode", "in": "query"},
                    {"type": "string", "description": "Slug региона", "name": "city", "in": "query"},
                    {"type": "number", "description": "Широта центра", "name": "lat", "in": "query"},
                    {"type": "number", "description": "Долгота центра", "name": "lng", "in": "query"},
                    {"type": "number", "description": "Радиус, км", "name": "radius", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.PlaceItem"}}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.CityRefDTO": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "slug": {"type": "string"}
            }
        },
        "dto.PlaceItem": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "city": {"$ref": "#/definitions/dto.CityRefDTO"},
                "distanceKm": {"type": "number"},
                "featured": {"type": "boolean"},
                "id": {"type": "string"},
                "images": {"type": "array", "items": {"type": "string"}},
                "lat": {"type": "number"},
                "lng": {"type": "number"},
                "mainImage": {"type": "string"},
                "name": {"type": "string"},
                "ratingAvg": {"type": "number"},
                "shortDescription": {"type": "string"},
                "slug": {"type": "string"}
            }
        },
        "dto.RegionItem": {
            "type": "object",
            "properties": {
                "bbox": {"type": "array", "items": {"type": "number"}},
                "count": {"type": "integer"},
                "id": {"type": "string"},
                "lat": {"type": "number"},
                "lng": {"type": "number"},
                "name": {"type": "string"},
                "slug": {"type": "string"}
            }
        },
        "errors.AppError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "details": {"type": "object", "additionalProperties": true},
                "message": {"type": "string"}
            }
        },
        "utils.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/errors.AppError"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Tourist Map API",
	Description:      "Геоданные для карты туристических мест",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
