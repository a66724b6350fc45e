// Package docs holds the generated OpenAPI spec served at /swagger.
// Regenerate with: swag init -g cmd/api/main.go -o internal/docs
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
        "/categories": {
            "get": {
                "produces": ["application/json"],
                "tags": ["reference"],
                "summary": "List categories",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Category"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errors.ErrorBody"}}
                }
            }
        },
        "/categories/{type_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["reference"],
                "summary": "List categories of a type",
                "parameters": [
                    {"type": "integer", "description": "Transaction type ID", "name": "type_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Category"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorBody"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errors.ErrorBody"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/server.HealthResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/server.HealthResponse"}}
                }
            }
        },
        "/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Log in",
                "parameters": [
                    {"description": "Credentials", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CredentialsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.AuthResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorBody"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorBody"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errors.ErrorBody"}}
                }
            }
        },
        "/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a new user",
                "parameters": [
                    {"description": "Credentials", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CredentialsRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.AuthResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorBody"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errors.ErrorBody"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errors.ErrorBody"}}
                }
            }
        },
        "/transaction_types": {
            "get": {
                "produces": ["application/json"],
                "tags": ["reference"],
                "summary": "List transaction types",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.TransactionType"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errors.ErrorBody"}}
                }
            }
        },
        "/transactions": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Create a transaction",
                "description": "Record an income or expense. The category must belong to the given type.",
                "parameters": [
                    {"description": "Transaction data", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CreateTransactionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.TransactionView"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorBody"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errors.ErrorBody"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errors.ErrorBody"}}
                }
            }
        },
        "/transactions/count/{user_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Count transactions",
                "parameters": [
                    {"type": "integer", "description": "User ID", "name": "user_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.CountResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorBody"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errors.ErrorBody"}}
                }
            }
        },
        "/transactions/monthly-expenses/{user_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["reports"],
                "summary": "Monthly expense by category",
                "parameters": [
                    {"type": "integer", "description": "User ID", "name": "user_id", "in": "path", "required": true},
                    {"type": "string", "description": "Any date in the month, defaults to today", "name": "date", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.CategoryTotal"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorBody"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errors.ErrorBody"}}
                }
            }
        },
        "/transactions/monthly-incomes/{user_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["reports"],
                "summary": "Monthly income by category",
                "parameters": [
                    {"type": "integer", "description": "User ID", "name": "user_id", "in": "path", "required": true},
                    {"type": "string", "description": "Any date in the month, defaults to today", "name": "date", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.CategoryTotal"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorBody"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errors.ErrorBody"}}
                }
            }
        },
        "/transactions/monthly/{user_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["reports"],
                "summary": "Monthly totals by type",
                "parameters": [
                    {"type": "integer", "description": "User ID", "name": "user_id", "in": "path", "required": true},
                    {"type": "string", "description": "Any date in the month, defaults to today", "name": "date", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.TypeTotal"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorBody"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errors.ErrorBody"}}
                }
            }
        },
        "/transactions/paginated/{user_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["reports"],
                "summary": "Paginated transactions",
                "description": "totalCount is the user's total number of transactions, ignoring filters.",
                "parameters": [
                    {"type": "integer", "description": "User ID", "name": "user_id", "in": "path", "required": true},
                    {"type": "integer", "default": 1, "description": "Page number", "name": "page", "in": "query"},
                    {"type": "integer", "default": 8, "description": "Page size", "name": "limit", "in": "query"},
                    {"type": "string", "description": "Inclusive start date", "name": "startDate", "in": "query"},
                    {"type": "string", "description": "Inclusive end date", "name": "endDate", "in": "query"},
                    {"type": "string", "description": "Transaction type name", "name": "type", "in": "query"},
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "description": "Category names", "name": "categories", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.TransactionPage"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorBody"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errors.ErrorBody"}}
                }
            }
        },
        "/transactions/total/{user_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["reports"],
                "summary": "Balance",
                "parameters": [
                    {"type": "integer", "description": "User ID", "name": "user_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Balance"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorBody"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errors.ErrorBody"}}
                }
            }
        },
        "/transactions/{id}": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Update a transaction",
                "parameters": [
                    {"type": "integer", "description": "Transaction ID", "name": "id", "in": "path", "required": true},
                    {"description": "Transaction data", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.UpdateTransactionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.TransactionView"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorBody"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorBody"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errors.ErrorBody"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Delete a transaction",
                "parameters": [
                    {"type": "integer", "description": "Transaction ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.MessageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorBody"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errors.ErrorBody"}}
                }
            }
        },
        "/transactions/{user_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Recent transactions",
                "parameters": [
                    {"type": "integer", "description": "User ID", "name": "user_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.TransactionView"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorBody"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errors.ErrorBody"}}
                }
            }
        }
    },
    "definitions": {
        "errors.ErrorBody": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/errors.ErrorDetail"},
                "message": {"type": "string"}
            }
        },
        "errors.ErrorDetail": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "handlers.AuthResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "token": {"type": "string"},
                "userId": {"type": "integer"}
            }
        },
        "handlers.CountResponse": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"}
            }
        },
        "handlers.CreateTransactionRequest": {
            "type": "object",
            "required": ["amount", "category_id", "date", "type_id"],
            "properties": {
                "amount": {"type": "number"},
                "category_id": {"type": "integer"},
                "comment": {"type": "string"},
                "date": {"type": "string", "example": "2024-03-15"},
                "type_id": {"type": "integer"},
                "user_id": {"type": "integer"}
            }
        },
        "handlers.CredentialsRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string", "maxLength": 255},
                "password": {"type": "string", "maxLength": 128}
            }
        },
        "handlers.MessageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        },
        "handlers.UpdateTransactionRequest": {
            "type": "object",
            "required": ["amount", "category_id", "date", "type_id"],
            "properties": {
                "amount": {"type": "number"},
                "category_id": {"type": "integer"},
                "comment": {"type": "string"},
                "date": {"type": "string", "example": "2024-03-15"},
                "type_id": {"type": "integer"}
            }
        },
        "models.Balance": {
            "type": "object",
            "properties": {
                "total": {"type": "number"}
            }
        },
        "models.Category": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "type_id": {"type": "integer"}
            }
        },
        "models.CategoryTotal": {
            "type": "object",
            "properties": {
                "amount": {"type": "number"},
                "category": {"type": "string"},
                "color": {"type": "string"}
            }
        },
        "models.TransactionPage": {
            "type": "object",
            "properties": {
                "limit": {"type": "integer"},
                "page": {"type": "integer"},
                "totalCount": {"type": "integer"},
                "totalPages": {"type": "integer"},
                "transactions": {"type": "array", "items": {"$ref": "#/definitions/models.TransactionView"}}
            }
        },
        "models.TransactionType": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"}
            }
        },
        "models.TransactionView": {
            "type": "object",
            "properties": {
                "amount": {"type": "number"},
                "category": {"type": "string"},
                "category_id": {"type": "integer"},
                "comment": {"type": "string"},
                "date": {"type": "string"},
                "id": {"type": "integer"},
                "type": {"type": "string"},
                "type_id": {"type": "integer"}
            }
        },
        "models.TypeTotal": {
            "type": "object",
            "properties": {
                "amount": {"type": "number"},
                "type": {"type": "string"}
            }
        },
        "server.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:5000",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Fintrack API",
	Description:      "Personal income and expense tracker with monthly summaries.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
