// Package docs is generated by swag from the handler annotations.
// Regenerate with: swag init -g cmd/server/main.go -o docs
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "Showroom Backend",
            "email": "backend@showroom.example.com"
        },
        "license": {
            "name": "Apache 2.0",
            "url": "http://www.apache.org/licenses/LICENSE-2.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "description": "Returns 200 when the database answers a ping, 503 otherwise",
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "operationId": "getHealth",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.Response"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/dto.Response"}}
                }
            }
        },
        "/labels/preview": {
            "post": {
                "description": "Render a label as PNG without storing it",
                "consumes": ["application/json"],
                "produces": ["image/png"],
                "tags": ["labels"],
                "summary": "Preview a label",
                "operationId": "previewLabel",
                "parameters": [
                    {"description": "Label fields", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/labeling.PreviewLabelRequest"}}
                ],
                "responses": {
                    "200": {"description": "PNG label", "schema": {"type": "file"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/labels/generate": {
            "post": {
                "description": "Render the label of a product, store the PNG and record it in the history",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["labels"],
                "summary": "Generate a product label",
                "operationId": "generateLabel",
                "parameters": [
                    {"description": "Product", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/labeling.GenerateLabelRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/labels/generate-multiple": {
            "post": {
                "description": "Generate and store labels for a small batch. Items fail independently and are reported in request order.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["labels"],
                "summary": "Generate labels for several products",
                "operationId": "generateLabels",
                "parameters": [
                    {"description": "Products", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/labeling.GenerateLabelsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/labels/print-sheet": {
            "post": {
                "description": "Lay out product labels on a printable page as HTML or PDF",
                "consumes": ["application/json"],
                "produces": ["text/html", "application/pdf"],
                "tags": ["labels"],
                "summary": "Build a print sheet",
                "operationId": "printLabelSheet",
                "parameters": [
                    {"description": "Products and format", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/labeling.PrintSheetRequest"}}
                ],
                "responses": {
                    "200": {"description": "Sheet document", "schema": {"type": "file"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/labels/history": {
            "get": {
                "description": "List stored labels, newest first",
                "produces": ["application/json"],
                "tags": ["labels"],
                "summary": "List label history",
                "operationId": "listLabelHistory",
                "parameters": [
                    {"type": "integer", "default": 1, "description": "Page number", "name": "page", "in": "query"},
                    {"type": "integer", "default": 10, "maximum": 100, "description": "Items per page", "name": "limit", "in": "query"},
                    {"type": "string", "description": "SKU substring", "name": "search", "in": "query"},
                    {"type": "string", "description": "Filter by product ID", "name": "product_id", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/labels/history/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["labels"],
                "summary": "Get a label history entry",
                "operationId": "getLabelHistory",
                "parameters": [
                    {"type": "string", "format": "uuid", "description": "History entry ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/labels/delete-multiple": {
            "post": {
                "description": "Delete every stored label of the given products, including the stored images",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["labels"],
                "summary": "Delete labels",
                "operationId": "deleteLabels",
                "parameters": [
                    {"description": "Products", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/labeling.DeleteLabelsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/magento/products/{sku}": {
            "get": {
                "description": "Find a storefront product by SKU and the URL its label would encode",
                "produces": ["application/json"],
                "tags": ["magento"],
                "summary": "Look up a storefront product",
                "operationId": "getMagentoProduct",
                "parameters": [
                    {"type": "string", "description": "Product SKU", "name": "sku", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.ErrorInfo": {
            "type": "object",
            "properties": {
                "code": {"type": "string", "example": "ERR_NOT_FOUND"},
                "message": {"type": "string"},
                "request_id": {"type": "string"},
                "details": {"type": "array", "items": {"$ref": "#/definitions/dto.ValidationDetail"}}
            }
        },
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean", "example": false},
                "error": {"$ref": "#/definitions/dto.ErrorInfo"}
            }
        },
        "dto.Meta": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_pages": {"type": "integer"}
            }
        },
        "dto.Response": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {},
                "error": {"$ref": "#/definitions/dto.ErrorInfo"},
                "meta": {"$ref": "#/definitions/dto.Meta"}
            }
        },
        "dto.ValidationDetail": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "labeling.DeleteLabelsRequest": {
            "type": "object",
            "required": ["product_ids"],
            "properties": {
                "product_ids": {"type": "array", "minItems": 1, "items": {"type": "string", "format": "uuid"}}
            }
        },
        "labeling.GenerateLabelRequest": {
            "type": "object",
            "required": ["product_id"],
            "properties": {
                "product_id": {"type": "string", "format": "uuid"}
            }
        },
        "labeling.GenerateLabelsRequest": {
            "type": "object",
            "required": ["product_ids"],
            "properties": {
                "product_ids": {"type": "array", "minItems": 1, "items": {"type": "string", "format": "uuid"}}
            }
        },
        "labeling.PreviewLabelRequest": {
            "type": "object",
            "properties": {
                "product_id": {"type": "string", "format": "uuid"},
                "sku": {"type": "string", "maxLength": 100},
                "name": {"type": "string", "maxLength": 255},
                "brand": {"type": "string"},
                "url_key": {"type": "string"},
                "destination_url": {"type": "string"}
            }
        },
        "labeling.PrintSheetRequest": {
            "type": "object",
            "required": ["product_ids"],
            "properties": {
                "product_ids": {"type": "array", "minItems": 1, "items": {"type": "string", "format": "uuid"}},
                "format": {"type": "string", "example": "html"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Showroom Label API",
	Description:      "Generates QR product labels, printable label sheets and the label history.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
