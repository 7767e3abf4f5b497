// Package docs registers the OpenAPI description served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "Soporte Taller",
            "email": "soporte@taller.example.cl"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "Bearer": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/ping": {
            "get": {"tags": ["health"], "summary": "Liveness probe", "responses": {"200": {"description": "pong"}}}
        },
        "/autenticacion/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Log in with username and password",
                "consumes": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}],
                "responses": {"200": {"description": "token and employee"}, "401": {"description": "invalid credentials", "schema": {"$ref": "#/definitions/HTTPError"}}}
            }
        },
        "/autenticacion/logout": {
            "post": {"tags": ["auth"], "summary": "Revoke the current token", "security": [{"Bearer": []}], "responses": {"200": {"description": "ok"}}}
        },
        "/agenda/slots": {
            "get": {
                "tags": ["agenda"],
                "summary": "Hourly intake slots for a workshop and day",
                "security": [{"Bearer": []}],
                "parameters": [
                    {"in": "query", "name": "date", "type": "string", "required": true},
                    {"in": "query", "name": "location_id", "type": "integer", "required": true}
                ],
                "responses": {"200": {"description": "slots"}, "404": {"description": "unknown workshop", "schema": {"$ref": "#/definitions/HTTPError"}}}
            }
        },
        "/ingresos/create": {
            "post": {
                "tags": ["intake"],
                "summary": "Register a vehicle intake (creates a Pendiente work order)",
                "security": [{"Bearer": []}],
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"in": "formData", "name": "plate", "type": "string", "required": true},
                    {"in": "formData", "name": "date", "type": "string", "required": true},
                    {"in": "formData", "name": "time", "type": "string"},
                    {"in": "formData", "name": "location_id", "type": "integer", "required": true},
                    {"in": "formData", "name": "description", "type": "string"},
                    {"in": "formData", "name": "driver_rut", "type": "string"}
                ],
                "responses": {
                    "201": {"description": "status ok, order created"},
                    "200": {"description": "status nuevo_chofer or vehiculo_no_existe"},
                    "409": {"description": "active order or slot occupied", "schema": {"$ref": "#/definitions/HTTPError"}}
                }
            }
        },
        "/estado/cambiar": {
            "post": {
                "tags": ["work-orders"],
                "summary": "Change a work order status",
                "security": [{"Bearer": []}],
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"in": "formData", "name": "order_id", "type": "integer"},
                    {"in": "formData", "name": "plate", "type": "string"},
                    {"in": "formData", "name": "status", "type": "string", "required": true},
                    {"in": "formData", "name": "comment", "type": "string", "required": true}
                ],
                "responses": {"200": {"description": "updated order"}, "409": {"description": "transition not allowed", "schema": {"$ref": "#/definitions/HTTPError"}}}
            }
        },
        "/ordenes/{id}/asignar": {
            "post": {
                "tags": ["work-orders"],
                "summary": "Assign a mechanic (Pendiente to En Taller)",
                "security": [{"Bearer": []}],
                "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}],
                "responses": {"200": {"description": "updated order"}}
            }
        },
        "/ordenes/pendientes": {
            "get": {"tags": ["work-orders"], "summary": "Pending orders of the supervisor workshop", "security": [{"Bearer": []}], "responses": {"200": {"description": "items"}}}
        },
        "/ordenes/mecanico": {
            "get": {"tags": ["work-orders"], "summary": "Orders assigned to the calling mechanic", "security": [{"Bearer": []}], "responses": {"200": {"description": "items"}}}
        },
        "/ficha": {
            "get": {
                "tags": ["vehicles"],
                "summary": "Vehicle record with KPIs and current order",
                "security": [{"Bearer": []}],
                "parameters": [{"in": "query", "name": "plate", "type": "string", "required": true}],
                "responses": {"200": {"description": "ficha"}}
            }
        },
        "/ficha/ots": {
            "get": {
                "tags": ["vehicles"],
                "summary": "Work order history of a vehicle",
                "security": [{"Bearer": []}],
                "parameters": [
                    {"in": "query", "name": "plate", "type": "string", "required": true},
                    {"in": "query", "name": "from", "type": "string"},
                    {"in": "query", "name": "to", "type": "string"},
                    {"in": "query", "name": "status", "type": "string"},
                    {"in": "query", "name": "location", "type": "integer"}
                ],
                "responses": {"200": {"description": "items"}}
            }
        },
        "/documentos": {
            "get": {
                "tags": ["documents"],
                "summary": "Documents grouped as current, past and vehicle level",
                "security": [{"Bearer": []}],
                "parameters": [
                    {"in": "query", "name": "order_id", "type": "integer"},
                    {"in": "query", "name": "plate", "type": "string"}
                ],
                "responses": {"200": {"description": "grouped documents"}}
            }
        },
        "/documentos/upload": {
            "post": {
                "tags": ["documents"],
                "summary": "Upload a document",
                "security": [{"Bearer": []}],
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"in": "formData", "name": "file", "type": "file", "required": true},
                    {"in": "formData", "name": "title", "type": "string", "required": true},
                    {"in": "formData", "name": "type", "type": "string", "enum": ["FOTO", "INFORME", "OTRO"]},
                    {"in": "formData", "name": "order_id", "type": "integer"},
                    {"in": "formData", "name": "plate", "type": "string"}
                ],
                "responses": {"201": {"description": "document"}}
            }
        },
        "/reportes/api/summary": {"get": {"tags": ["reports"], "summary": "Dashboard KPIs", "security": [{"Bearer": []}], "responses": {"200": {"description": "summary"}}}},
        "/reportes/api/ots": {"get": {"tags": ["reports"], "summary": "Filtered order listing", "security": [{"Bearer": []}], "responses": {"200": {"description": "items"}}}},
        "/reportes/api/ots/export": {"get": {"tags": ["reports"], "summary": "Order listing as XLSX", "security": [{"Bearer": []}], "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"], "responses": {"200": {"description": "workbook"}}}},
        "/reportes/api/resumen": {"get": {"tags": ["reports"], "summary": "Orders by status", "security": [{"Bearer": []}], "responses": {"200": {"description": "summary"}}}},
        "/reportes/api/talleres": {"get": {"tags": ["reports"], "summary": "Per-workshop counters", "security": [{"Bearer": []}], "responses": {"200": {"description": "items"}}}},
        "/reportes/api/tiempos": {"get": {"tags": ["reports"], "summary": "Average days in workshop", "security": [{"Bearer": []}], "responses": {"200": {"description": "averages"}}}}
    },
    "definitions": {
        "HTTPError": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "LoginRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Taller Flota API",
	Description:      "Work orders, intake scheduling, vehicle records, documents and reports for the fleet workshops.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
